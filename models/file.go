package models

import (
	"encoding/json"
	"time"
)

// FileCategory classifies an uploaded document.
type FileCategory string

const (
	CategoryResume          FileCategory = "resume"
	CategoryEducationCert   FileCategory = "education_certificate"
	CategoryExperienceLtr   FileCategory = "experience_letter"
	CategoryRelievingLtr    FileCategory = "relieving_letter"
	CategoryPayslip         FileCategory = "payslip"
	CategoryBankStatement   FileCategory = "bank_statement"
	CategoryOfferLetter     FileCategory = "offer_letter"
	CategoryKYCDocument     FileCategory = "kyc_document"
	CategoryPhoto           FileCategory = "photo"
	CategoryAgreement       FileCategory = "agreement"
	CategoryPolicyDocument  FileCategory = "policy_document"
	CategoryOther           FileCategory = "other"
)

// AccessLevel controls who may read a document beyond ownership rules.
type AccessLevel string

const (
	AccessPublic       AccessLevel = "public"
	AccessInternal     AccessLevel = "internal"
	AccessConfidential AccessLevel = "confidential"
	AccessRestricted   AccessLevel = "restricted"
)

// EntityType identifies the collection a document is attached to.
type EntityType string

const (
	EntityCandidate   EntityType = "Candidate"
	EntityClient      EntityType = "Client"
	EntityRequirement EntityType = "Requirement"
	EntityBGVVendor   EntityType = "BGVVendor"
	EntityAgency      EntityType = "Agency"
	EntityUser        EntityType = "User"
)

// ScanStatus tracks the async virus-scan outcome.
type ScanStatus string

const (
	ScanPending  ScanStatus = "pending"
	ScanClean    ScanStatus = "clean"
	ScanInfected ScanStatus = "infected"
	ScanError    ScanStatus = "error"
)

var validCategories = map[FileCategory]bool{
	CategoryResume: true, CategoryEducationCert: true, CategoryExperienceLtr: true,
	CategoryRelievingLtr: true, CategoryPayslip: true, CategoryBankStatement: true,
	CategoryOfferLetter: true, CategoryKYCDocument: true, CategoryPhoto: true,
	CategoryAgreement: true, CategoryPolicyDocument: true, CategoryOther: true,
}

var validAccessLevels = map[AccessLevel]bool{
	AccessPublic: true, AccessInternal: true, AccessConfidential: true, AccessRestricted: true,
}

var validEntityTypes = map[EntityType]bool{
	EntityCandidate: true, EntityClient: true, EntityRequirement: true,
	EntityBGVVendor: true, EntityAgency: true, EntityUser: true,
}

func (c FileCategory) Valid() bool { return validCategories[c] }
func (a AccessLevel) Valid() bool  { return validAccessLevels[a] }
func (e EntityType) Valid() bool   { return validEntityTypes[e] }

// FileDocument is the metadata row for one uploaded object.
type FileDocument struct {
	ID uint `json:"id" gorm:"primaryKey"`

	OriginalName string `json:"original_name" gorm:"type:varchar(255);not null"`
	StoredName   string `json:"stored_name" gorm:"type:varchar(255);uniqueIndex;not null"`
	MimeType     string `json:"mime_type" gorm:"type:varchar(100)"`
	SizeBytes    int64  `json:"size_bytes"`
	Extension    string `json:"extension" gorm:"type:varchar(20)"`

	// StorageKey encodes entityType/entityId/category/<unique suffix>.
	// Never reused, even after a purge.
	StorageKey string `json:"storage_key" gorm:"type:varchar(500);uniqueIndex;not null"`

	Category   FileCategory `json:"category" gorm:"type:varchar(40);default:'other';index"`
	EntityType EntityType   `json:"entity_type" gorm:"type:varchar(30);not null;index:idx_file_entity"`
	EntityID   uint         `json:"entity_id" gorm:"not null;index:idx_file_entity"`

	AccessLevel  AccessLevel `json:"access_level" gorm:"type:varchar(20);default:'internal'"`
	AllowedUsers string      `json:"-" gorm:"type:text"` // JSON array of user IDs

	IsVerified        bool       `json:"is_verified" gorm:"default:false"`
	VerifiedBy        uint       `json:"verified_by"`
	VerifiedAt        *time.Time `json:"verified_at"`
	VerificationNotes string     `json:"verification_notes" gorm:"type:text"`

	VirusScanStatus ScanStatus `json:"virus_scan_status" gorm:"type:varchar(20);default:'pending';index"`

	UploadedBy uint `json:"uploaded_by" gorm:"not null;index"`

	LastAccessedBy uint       `json:"last_accessed_by"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
	AccessCount    int64      `json:"access_count" gorm:"default:0"`

	IsDeleted bool       `json:"-" gorm:"default:false;index"`
	DeletedBy uint       `json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FileDocument) TableName() string {
	return "file_documents"
}

// AllowedUserIDs decodes the allow-list column.
func (f *FileDocument) AllowedUserIDs() []uint {
	if f.AllowedUsers == "" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(f.AllowedUsers), &ids); err != nil {
		return nil
	}
	return ids
}

// SetAllowedUserIDs encodes the allow-list column.
func (f *FileDocument) SetAllowedUserIDs(ids []uint) {
	if len(ids) == 0 {
		f.AllowedUsers = ""
		return
	}
	data, _ := json.Marshal(ids)
	f.AllowedUsers = string(data)
}

type UploadResponse struct {
	FileID      uint         `json:"file_id"`
	FileName    string       `json:"file_name"`
	StorageKey  string       `json:"storage_key"`
	Category    FileCategory `json:"category"`
	AccessLevel AccessLevel  `json:"access_level"`
	ScanStatus  ScanStatus   `json:"virus_scan_status"`
}

type DownloadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}
