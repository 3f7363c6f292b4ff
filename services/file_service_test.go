package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talenthub-backend/config"
	"talenthub-backend/models"
	"talenthub-backend/storage"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Candidate{},
		&models.FileDocument{},
		&models.JobExecution{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		MaxUploadBytes: 10 * 1024 * 1024,
		AllowedMimes: []string{
			"image/jpeg", "image/png", "image/gif",
			"application/pdf", "text/csv",
		},
		FileGracePeriod: 30 * 24 * time.Hour,
		ScanDelay:       0,
	}
}

func setupFileService(t *testing.T) (*FileService, *gorm.DB, storage.BlobStore) {
	t.Helper()
	db := setupDB(t)
	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return NewFileService(db, blobs, testConfig()), db, blobs
}

func pdfBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, "%PDF-1.4")
	return data
}

func uploadResume(t *testing.T, svc *FileService, entityID, uploadedBy uint) *models.FileDocument {
	t.Helper()
	doc, err := svc.UploadSingle(context.Background(), UploadInput{
		FieldName: "resume",
		FileName:  "john_doe.pdf",
		MimeType:  "application/pdf",
		Data:      pdfBytes(2 * 1024 * 1024),
	}, models.EntityCandidate, entityID, uploadedBy, "")
	require.NoError(t, err)
	return doc
}

func TestUploadSingle_Defaults(t *testing.T) {
	svc, _, blobs := setupFileService(t)

	doc := uploadResume(t, svc, 1, 10)

	assert.Equal(t, models.CategoryResume, doc.Category)
	assert.Equal(t, models.AccessInternal, doc.AccessLevel)
	assert.False(t, doc.IsVerified)
	assert.Equal(t, models.ScanPending, doc.VirusScanStatus)
	assert.Equal(t, uint(10), doc.UploadedBy)
	assert.Equal(t, ".pdf", doc.Extension)
	assert.Equal(t, int64(2*1024*1024), doc.SizeBytes)
	assert.Contains(t, doc.StorageKey, "Candidate/1/resume/")

	exists, err := blobs.Exists(context.Background(), doc.StorageKey)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadSingle_IdenticalNamesNeverCollide(t *testing.T) {
	svc, _, _ := setupFileService(t)

	a := uploadResume(t, svc, 1, 10)
	b := uploadResume(t, svc, 1, 10)

	assert.NotEqual(t, a.StorageKey, b.StorageKey)
	assert.NotEqual(t, a.StoredName, b.StoredName)
	assert.Equal(t, a.OriginalName, b.OriginalName)
}

func TestUploadSingle_Validation(t *testing.T) {
	svc, _, _ := setupFileService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   UploadInput
	}{
		{
			name: "disallowed mime",
			in:   UploadInput{FieldName: "resume", FileName: "x.exe", MimeType: "application/octet-stream", Data: []byte("MZ")},
		},
		{
			name: "oversize",
			in:   UploadInput{FieldName: "resume", FileName: "x.pdf", MimeType: "application/pdf", Data: pdfBytes(11 * 1024 * 1024)},
		},
		{
			name: "header mismatch",
			in:   UploadInput{FieldName: "resume", FileName: "x.pdf", MimeType: "application/pdf", Data: []byte("not a pdf at all")},
		},
		{
			name: "bad access level",
			in:   UploadInput{FieldName: "resume", FileName: "x.pdf", MimeType: "application/pdf", Data: pdfBytes(64), AccessLevel: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadSingle(ctx, tt.in, models.EntityCandidate, 1, 10, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.UploadSingle(ctx, UploadInput{
		FieldName: "resume", FileName: "x.pdf", MimeType: "application/pdf", Data: pdfBytes(64),
	}, "Spaceship", 1, 10, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadMultiple_PerFieldOutcomes(t *testing.T) {
	svc, _, _ := setupFileService(t)

	results := svc.UploadMultiple(context.Background(), map[string]UploadInput{
		"resume": {
			FieldName: "resume", FileName: "cv.pdf",
			MimeType: "application/pdf", Data: pdfBytes(128),
		},
		"certificate_2": {
			FieldName: "certificate_2", FileName: "degree.png",
			MimeType: "image/png", Data: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A},
		},
		"aadhaar_card": {
			FieldName: "aadhaar_card", FileName: "id.bin",
			MimeType: "application/octet-stream", Data: []byte("nope"),
		},
	}, models.EntityCandidate, 1, 10)

	require.Len(t, results, 3)

	require.NoError(t, results["resume"].Err)
	assert.Equal(t, models.CategoryResume, results["resume"].Document.Category)

	require.NoError(t, results["certificate_2"].Err)
	assert.Equal(t, models.CategoryEducationCert, results["certificate_2"].Document.Category)

	// one bad field fails alone, the rest succeed
	assert.ErrorIs(t, results["aadhaar_card"].Err, ErrInvalidInput)
	assert.Nil(t, results["aadhaar_card"].Document)
}

func TestGetFile_TracksAccess(t *testing.T) {
	svc, db, _ := setupFileService(t)
	uploader := Principal{ID: 10, Role: models.RoleRecruiter}

	doc := uploadResume(t, svc, 1, 10)
	assert.Equal(t, int64(0), doc.AccessCount)

	_, err := svc.GetFile(context.Background(), doc.ID, uploader)
	require.NoError(t, err)
	_, err = svc.GetFile(context.Background(), doc.ID, uploader)
	require.NoError(t, err)

	var stored models.FileDocument
	require.NoError(t, db.First(&stored, doc.ID).Error)
	assert.Equal(t, int64(2), stored.AccessCount)
	assert.Equal(t, uint(10), stored.LastAccessedBy)
	require.NotNil(t, stored.LastAccessedAt)
}

func TestGetFile_DeniedForUnrelatedClient(t *testing.T) {
	svc, _, _ := setupFileService(t)

	doc := uploadResume(t, svc, 1, 10)

	_, err := svc.GetFile(context.Background(), doc.ID, Principal{ID: 20, Role: models.RoleClient})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetFile_SoftDeletedLooksMissing(t *testing.T) {
	svc, db, _ := setupFileService(t)
	uploader := Principal{ID: 10, Role: models.RoleRecruiter}

	doc := uploadResume(t, svc, 1, 10)
	require.NoError(t, svc.DeleteFile(context.Background(), doc.ID, uploader))

	// the row is still there
	var stored models.FileDocument
	require.NoError(t, db.First(&stored, doc.ID).Error)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, uint(10), stored.DeletedBy)
	require.NotNil(t, stored.DeletedAt)

	// but reads see nothing, even for the uploader
	_, err := svc.GetFile(context.Background(), doc.ID, uploader)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetFileByStorageKey(context.Background(), doc.StorageKey, uploader)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFile_Permissions(t *testing.T) {
	svc, _, _ := setupFileService(t)
	ctx := context.Background()

	doc := uploadResume(t, svc, 1, 10)

	// an unrelated recruiter cannot delete
	err := svc.DeleteFile(ctx, doc.ID, Principal{ID: 33, Role: models.RoleRecruiter})
	assert.ErrorIs(t, err, ErrForbidden)

	// the uploader can
	require.NoError(t, svc.DeleteFile(ctx, doc.ID, Principal{ID: 10, Role: models.RoleRecruiter}))

	// deleting again reports not found
	err = svc.DeleteFile(ctx, doc.ID, Principal{ID: 10, Role: models.RoleRecruiter})
	assert.ErrorIs(t, err, ErrNotFound)

	// admin override on someone else's file
	other := uploadResume(t, svc, 2, 10)
	require.NoError(t, svc.DeleteFile(ctx, other.ID, Principal{ID: 99, Role: models.RoleAdmin}))
}

func TestCleanupDeletedFiles(t *testing.T) {
	svc, db, blobs := setupFileService(t)
	ctx := context.Background()
	uploader := Principal{ID: 10, Role: models.RoleRecruiter}

	expired := uploadResume(t, svc, 1, 10)
	recent := uploadResume(t, svc, 2, 10)

	require.NoError(t, svc.DeleteFile(ctx, expired.ID, uploader))
	require.NoError(t, svc.DeleteFile(ctx, recent.ID, uploader))

	// age one deletion past the grace period
	old := time.Now().Add(-31 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.FileDocument{}).Where("id = ?", expired.ID).Update("deleted_at", &old).Error)

	out, err := svc.CleanupDeletedFiles(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "purged 1")

	// the expired one is gone, blob and row
	exists, err := blobs.Exists(ctx, expired.StorageKey)
	require.NoError(t, err)
	assert.False(t, exists)
	var count int64
	db.Model(&models.FileDocument{}).Where("id = ?", expired.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// the recent one survives until its grace period runs out
	exists, err = blobs.Exists(ctx, recent.StorageKey)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCleanupDeletedFiles_Idempotent(t *testing.T) {
	svc, db, blobs := setupFileService(t)
	ctx := context.Background()

	doc := uploadResume(t, svc, 1, 10)
	require.NoError(t, svc.DeleteFile(ctx, doc.ID, Principal{ID: 10, Role: models.RoleRecruiter}))

	old := time.Now().Add(-31 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.FileDocument{}).Where("id = ?", doc.ID).Update("deleted_at", &old).Error)

	// blob vanished out of band; the sweep must shrug it off
	require.NoError(t, blobs.Delete(ctx, doc.StorageKey))

	_, err := svc.CleanupDeletedFiles(ctx)
	require.NoError(t, err)

	// and running it again over nothing is fine too
	_, err = svc.CleanupDeletedFiles(ctx)
	require.NoError(t, err)
}

func TestScanPendingFiles(t *testing.T) {
	svc, db, _ := setupFileService(t)

	doc := uploadResume(t, svc, 1, 10)
	assert.Equal(t, models.ScanPending, doc.VirusScanStatus)

	out, err := svc.ScanPendingFiles(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "scanned 1")

	var stored models.FileDocument
	require.NoError(t, db.First(&stored, doc.ID).Error)
	assert.Equal(t, models.ScanClean, stored.VirusScanStatus)
}

func TestVerifyDocument(t *testing.T) {
	svc, _, _ := setupFileService(t)
	reviewer := Principal{ID: 7, Role: models.RoleAdmin}

	doc := uploadResume(t, svc, 1, 10)

	verified, err := svc.VerifyDocument(context.Background(), doc.ID, reviewer, true, "checked against originals")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, uint(7), verified.VerifiedBy)
	require.NotNil(t, verified.VerifiedAt)
	assert.Equal(t, "checked against originals", verified.VerificationNotes)
}

func TestBulkVerify(t *testing.T) {
	svc, _, _ := setupFileService(t)
	reviewer := Principal{ID: 7, Role: models.RoleAdmin}
	ctx := context.Background()

	a := uploadResume(t, svc, 1, 10)
	b := uploadResume(t, svc, 2, 10)
	deleted := uploadResume(t, svc, 3, 10)
	require.NoError(t, svc.DeleteFile(ctx, deleted.ID, Principal{ID: 10, Role: models.RoleRecruiter}))

	modified, err := svc.BulkVerify(ctx, []uint{a.ID, b.ID, deleted.ID, 9999}, reviewer, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), modified)

	modified, err = svc.BulkVerify(ctx, nil, reviewer, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), modified)
}

func TestListByEntity_FiltersByPolicy(t *testing.T) {
	svc, _, _ := setupFileService(t)
	ctx := context.Background()

	uploadResume(t, svc, 1, 10)
	_, err := svc.UploadSingle(ctx, UploadInput{
		FieldName:   "offer_letter",
		FileName:    "offer.pdf",
		MimeType:    "application/pdf",
		Data:        pdfBytes(64),
		AccessLevel: models.AccessConfidential,
	}, models.EntityCandidate, 1, 22, "")
	require.NoError(t, err)

	// recruiter sees internal but not someone else's confidential file
	docs, err := svc.ListByEntity(ctx, models.EntityCandidate, 1, "", Principal{ID: 40, Role: models.RoleRecruiter})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, models.CategoryResume, docs[0].Category)

	// admin sees both
	docs, err = svc.ListByEntity(ctx, models.EntityCandidate, 1, "", Principal{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// category filter
	docs, err = svc.ListByEntity(ctx, models.EntityCandidate, 1, models.CategoryOfferLetter, Principal{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, models.CategoryOfferLetter, docs[0].Category)

	_, err = svc.ListByEntity(ctx, models.EntityCandidate, 1, "weird", Principal{ID: 1, Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDownload(t *testing.T) {
	svc, _, _ := setupFileService(t)
	uploader := Principal{ID: 10, Role: models.RoleRecruiter}

	doc := uploadResume(t, svc, 1, 10)

	got, data, err := svc.Download(context.Background(), doc.ID, uploader)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Len(t, data, 2*1024*1024)
	assert.Equal(t, []byte("%PDF"), data[:4])
}

func TestValidateFileHeader(t *testing.T) {
	assert.True(t, ValidateFileHeader([]byte("%PDF-1.7 rest"), "application/pdf"))
	assert.False(t, ValidateFileHeader([]byte("plain text"), "application/pdf"))
	assert.True(t, ValidateFileHeader([]byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg"))
	assert.True(t, ValidateFileHeader([]byte("GIF89a...."), "image/gif"))
	assert.True(t, ValidateFileHeader([]byte("GIF87a...."), "image/gif"))
	assert.False(t, ValidateFileHeader([]byte{0x89, 0x50}, "image/png")) // too short
	// unknown types pass, this is a sniff not a gate
	assert.True(t, ValidateFileHeader([]byte("a,b,c"), "text/csv"))
}
