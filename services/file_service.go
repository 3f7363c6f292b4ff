package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub-backend/config"
	"talenthub-backend/models"
	"talenthub-backend/storage"
)

// FileService is the only component that mutates file metadata or touches
// the blob store.
type FileService struct {
	db     *gorm.DB
	blobs  storage.BlobStore
	policy *AccessPolicy
	cfg    *config.Config
}

func NewFileService(db *gorm.DB, blobs storage.BlobStore, cfg *config.Config) *FileService {
	lookup := func(id uint) (*models.Candidate, error) {
		var candidate models.Candidate
		if err := db.First(&candidate, id).Error; err != nil {
			return nil, err
		}
		return &candidate, nil
	}
	return &FileService{
		db:     db,
		blobs:  blobs,
		policy: NewAccessPolicy(lookup),
		cfg:    cfg,
	}
}

// Policy exposes the access evaluator for handlers that need it directly.
func (s *FileService) Policy() *AccessPolicy {
	return s.policy
}

// UploadInput is one incoming file from a multipart form.
type UploadInput struct {
	FieldName   string
	FileName    string
	MimeType    string
	Data        []byte
	AccessLevel models.AccessLevel // empty means internal
}

// UploadSingle validates, classifies and stores one file. The blob is
// written before the metadata row; a failed blob write aborts the upload,
// while a failed metadata insert triggers a best-effort blob delete so the
// store does not accumulate orphans.
func (s *FileService) UploadSingle(ctx context.Context, in UploadInput, entityType models.EntityType, entityID uint, uploadedBy uint, category models.FileCategory) (*models.FileDocument, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, entityType)
	}
	if category == "" {
		category = ClassifyField(in.FieldName)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	accessLevel := in.AccessLevel
	if accessLevel == "" {
		accessLevel = models.AccessInternal
	}
	if !accessLevel.Valid() {
		return nil, fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, accessLevel)
	}
	if int64(len(in.Data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, s.cfg.MaxUploadBytes)
	}
	if !s.cfg.MimeAllowed(in.MimeType) {
		return nil, fmt.Errorf("%w: mime type %q not allowed", ErrInvalidInput, in.MimeType)
	}
	if !ValidateFileHeader(in.Data, in.MimeType) {
		return nil, fmt.Errorf("%w: file content does not match declared type %q", ErrInvalidInput, in.MimeType)
	}

	ext := strings.ToLower(filepath.Ext(in.FileName))
	storedName := uuid.New().String() + ext
	storageKey := fmt.Sprintf("%s/%d/%s/%s", entityType, entityID, category, storedName)

	if err := s.blobs.Put(ctx, storageKey, in.Data, in.MimeType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	doc := &models.FileDocument{
		OriginalName:    in.FileName,
		StoredName:      storedName,
		MimeType:        in.MimeType,
		SizeBytes:       int64(len(in.Data)),
		Extension:       ext,
		StorageKey:      storageKey,
		Category:        category,
		EntityType:      entityType,
		EntityID:        entityID,
		AccessLevel:     accessLevel,
		VirusScanStatus: models.ScanPending,
		UploadedBy:      uploadedBy,
	}

	if err := s.db.Create(doc).Error; err != nil {
		// compensate: no metadata row, so drop the blob
		if delErr := s.blobs.Delete(ctx, storageKey); delErr != nil {
			log.Printf("failed to remove orphan blob %s: %v", storageKey, delErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: storage key collision", ErrConflict)
		}
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return doc, nil
}

// FieldResult is the per-field outcome of a multi-file upload.
type FieldResult struct {
	Document *models.FileDocument
	Err      error
}

// UploadMultiple uploads each form field concurrently, classifying the
// category from the field name. Fields succeed or fail independently.
func (s *FileService) UploadMultiple(ctx context.Context, files map[string]UploadInput, entityType models.EntityType, entityID uint, uploadedBy uint) map[string]FieldResult {
	results := make(map[string]FieldResult, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for field, in := range files {
		wg.Add(1)
		go func(field string, in UploadInput) {
			defer wg.Done()
			doc, err := s.UploadSingle(ctx, in, entityType, entityID, uploadedBy, ClassifyField(field))
			mu.Lock()
			results[field] = FieldResult{Document: doc, Err: err}
			mu.Unlock()
		}(field, in)
	}

	wg.Wait()
	return results
}

// GetFile looks up a document, applies the read policy and records the
// access. Soft-deleted documents are indistinguishable from missing ones.
func (s *FileService) GetFile(ctx context.Context, id uint, p Principal) (*models.FileDocument, error) {
	var doc models.FileDocument
	if err := s.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: file %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return s.authorizeRead(&doc, p)
}

// GetFileByStorageKey is the lookup used by the serve path.
func (s *FileService) GetFileByStorageKey(ctx context.Context, key string, p Principal) (*models.FileDocument, error) {
	var doc models.FileDocument
	if err := s.db.Where("storage_key = ?", key).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: key %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return s.authorizeRead(&doc, p)
}

func (s *FileService) authorizeRead(doc *models.FileDocument, p Principal) (*models.FileDocument, error) {
	if doc.IsDeleted {
		return nil, fmt.Errorf("%w: file %d", ErrNotFound, doc.ID)
	}
	if !s.policy.CanRead(doc, p) {
		return nil, fmt.Errorf("%w: file %d", ErrForbidden, doc.ID)
	}
	s.trackAccess(doc, p)
	return doc, nil
}

// trackAccess bumps the audit counters. Last-write-wins; an undercount
// under heavy concurrent reads is acceptable.
func (s *FileService) trackAccess(doc *models.FileDocument, p Principal) {
	now := time.Now()
	updates := map[string]interface{}{
		"access_count":     gorm.Expr("access_count + 1"),
		"last_accessed_at": &now,
	}
	if !p.IsAnonymous() {
		updates["last_accessed_by"] = p.ID
	}
	if err := s.db.Model(doc).Updates(updates).Error; err != nil {
		log.Printf("failed to record access on file %d: %v", doc.ID, err)
	}
	doc.AccessCount++
	doc.LastAccessedAt = &now
	if !p.IsAnonymous() {
		doc.LastAccessedBy = p.ID
	}
}

// Download returns the document plus its bytes.
func (s *FileService) Download(ctx context.Context, id uint, p Principal) (*models.FileDocument, []byte, error) {
	doc, err := s.GetFile(ctx, id, p)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Get(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: blob for file %d", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return doc, data, nil
}

// DownloadByStorageKey backs the serve middleware.
func (s *FileService) DownloadByStorageKey(ctx context.Context, key string, p Principal) (*models.FileDocument, []byte, error) {
	doc, err := s.GetFileByStorageKey(ctx, key, p)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Get(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: blob for key %s", ErrNotFound, key)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return doc, data, nil
}

// PresignedURL returns a time-limited URL when the backend supports it.
func (s *FileService) PresignedURL(ctx context.Context, id uint, p Principal, expiration time.Duration) (*models.FileDocument, string, error) {
	doc, err := s.GetFile(ctx, id, p)
	if err != nil {
		return nil, "", err
	}
	url, err := s.blobs.PresignURL(ctx, doc.StorageKey, expiration)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return doc, url, nil
}

// DeleteFile soft-deletes. The blob stays until the grace period expires and
// the purge sweep removes it.
func (s *FileService) DeleteFile(ctx context.Context, id uint, p Principal) error {
	var doc models.FileDocument
	if err := s.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: file %d", ErrNotFound, id)
		}
		return fmt.Errorf("failed to load file: %w", err)
	}
	if doc.IsDeleted {
		return fmt.Errorf("%w: file %d", ErrNotFound, id)
	}
	if !s.policy.CanDelete(&doc, p) {
		return fmt.Errorf("%w: file %d", ErrForbidden, id)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_deleted": true,
		"deleted_by": p.ID,
		"deleted_at": &now,
	}
	if err := s.db.Model(&doc).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark file deleted: %w", err)
	}
	return nil
}

// VerifyDocument records the review outcome. Reviewer privilege is enforced
// by the route, not here.
func (s *FileService) VerifyDocument(ctx context.Context, id uint, p Principal, verified bool, notes string) (*models.FileDocument, error) {
	var doc models.FileDocument
	if err := s.db.Where("is_deleted = ?", false).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: file %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_verified":        verified,
		"verified_by":        p.ID,
		"verified_at":        &now,
		"verification_notes": notes,
	}
	if err := s.db.Model(&doc).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update verification: %w", err)
	}
	doc.IsVerified = verified
	doc.VerifiedBy = p.ID
	doc.VerifiedAt = &now
	doc.VerificationNotes = notes
	return &doc, nil
}

// BulkVerify marks a set of documents and reports the aggregate count.
func (s *FileService) BulkVerify(ctx context.Context, ids []uint, p Principal, verified bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := time.Now()
	result := s.db.Model(&models.FileDocument{}).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Updates(map[string]interface{}{
			"is_verified": verified,
			"verified_by": p.ID,
			"verified_at": &now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("bulk verify failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListByEntity returns the documents attached to an entity that the
// principal may read. Category is an optional filter.
func (s *FileService) ListByEntity(ctx context.Context, entityType models.EntityType, entityID uint, category models.FileCategory, p Principal) ([]models.FileDocument, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, entityType)
	}
	query := s.db.Where("entity_type = ? AND entity_id = ? AND is_deleted = ?", entityType, entityID, false)
	if category != "" {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		query = query.Where("category = ?", category)
	}

	var docs []models.FileDocument
	if err := query.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	visible := make([]models.FileDocument, 0, len(docs))
	for i := range docs {
		if s.policy.CanRead(&docs[i], p) {
			visible = append(visible, docs[i])
		}
	}
	return visible, nil
}

// CleanupDeletedFiles purges documents soft-deleted longer ago than the
// grace period: blob first, then the metadata row. A missing blob is fine
// and a failing item never aborts the sweep.
func (s *FileService) CleanupDeletedFiles(ctx context.Context) (string, error) {
	cutoff := time.Now().Add(-s.cfg.FileGracePeriod)

	var docs []models.FileDocument
	if err := s.db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).Find(&docs).Error; err != nil {
		return "", fmt.Errorf("failed to select purge candidates: %w", err)
	}

	purged, failed := 0, 0
	for i := range docs {
		doc := &docs[i]
		if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
			log.Printf("purge: failed to delete blob %s: %v", doc.StorageKey, err)
			failed++
			continue
		}
		if err := s.db.Unscoped().Delete(doc).Error; err != nil {
			log.Printf("purge: failed to delete row %d: %v", doc.ID, err)
			failed++
			continue
		}
		purged++
	}

	return fmt.Sprintf("purged %d of %d candidates (%d failed)", purged, len(docs), failed), nil
}

// ScanPendingFiles resolves pending scans. This is a placeholder scanner
// that marks anything older than the settle delay as clean; the sweep shape
// is what a real engine would plug into. Restart-safe because the pending
// status lives in the row, not in a timer.
func (s *FileService) ScanPendingFiles(ctx context.Context) (string, error) {
	cutoff := time.Now().Add(-s.cfg.ScanDelay)

	var docs []models.FileDocument
	if err := s.db.Where("virus_scan_status = ? AND created_at < ?", models.ScanPending, cutoff).Find(&docs).Error; err != nil {
		return "", fmt.Errorf("failed to select pending scans: %w", err)
	}

	scanned := 0
	for i := range docs {
		if err := s.db.Model(&docs[i]).Update("virus_scan_status", models.ScanClean).Error; err != nil {
			log.Printf("scan: failed to update file %d: %v", docs[i].ID, err)
			continue
		}
		scanned++
	}

	return fmt.Sprintf("scanned %d of %d pending files", scanned, len(docs)), nil
}

// magic-byte signatures for the types we can sniff
var fileSignatures = map[string][][]byte{
	"application/pdf": {[]byte("%PDF")},
	"image/jpeg":      {{0xFF, 0xD8, 0xFF}},
	"image/png":       {{0x89, 0x50, 0x4E, 0x47}},
	"image/gif":       {[]byte("GIF87a"), []byte("GIF89a")},
}

// ValidateFileHeader checks the leading bytes against known signatures for
// the declared MIME type. Types without a known signature pass; this is a
// best-effort sniff, not a security boundary.
func ValidateFileHeader(buffer []byte, declaredMimeType string) bool {
	signatures, ok := fileSignatures[strings.ToLower(declaredMimeType)]
	if !ok {
		return true
	}
	for _, sig := range signatures {
		if len(buffer) >= len(sig) && bytes.Equal(buffer[:len(sig)], sig) {
			return true
		}
	}
	return false
}
