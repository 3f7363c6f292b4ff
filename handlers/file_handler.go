package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"talenthub-backend/database"
	"talenthub-backend/middleware"
	"talenthub-backend/models"
	"talenthub-backend/services"
)

type FileHandler struct {
	files *services.FileService
}

func NewFileHandler(files *services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

func readUpload(fileHeader *multipart.FileHeader, fieldName string, accessLevel string) (services.UploadInput, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return services.UploadInput{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.UploadInput{}, err
	}

	return services.UploadInput{
		FieldName:   fieldName,
		FileName:    fileHeader.Filename,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Data:        data,
		AccessLevel: models.AccessLevel(accessLevel),
	}, nil
}

func entityRef(c *gin.Context) (models.EntityType, uint, bool) {
	entityType := models.EntityType(c.PostForm("entity_type"))
	entityID, err := strconv.ParseUint(c.PostForm("entity_id"), 10, 32)
	if !entityType.Valid() || err != nil || entityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "valid entity_type and entity_id are required",
		})
		return "", 0, false
	}
	return entityType, uint(entityID), true
}

// UploadFile stores a single file attached to an entity. Category comes from
// the optional category form value, falling back to field-name
// classification.
func (h *FileHandler) UploadFile(c *gin.Context) {
	entityType, entityID, ok := entityRef(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "missing file field",
		})
		return
	}

	in, err := readUpload(fileHeader, c.DefaultPostForm("field_name", "file"), c.PostForm("access_level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "failed to read upload",
		})
		return
	}

	doc, err := h.files.UploadSingle(c.Request.Context(), in, entityType, entityID,
		c.GetUint("user_id"), models.FileCategory(c.PostForm("category")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "file uploaded",
		"data": models.UploadResponse{
			FileID:      doc.ID,
			FileName:    doc.OriginalName,
			StorageKey:  doc.StorageKey,
			Category:    doc.Category,
			AccessLevel: doc.AccessLevel,
			ScanStatus:  doc.VirusScanStatus,
		},
	})
}

// UploadMultiple stores every file field in the form concurrently and
// reports per-field outcomes. Categories derive from the field names.
func (h *FileHandler) UploadMultiple(c *gin.Context) {
	entityType, entityID, ok := entityRef(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "no files in form",
		})
		return
	}

	inputs := make(map[string]services.UploadInput, len(form.File))
	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		in, err := readUpload(headers[0], field, c.PostForm("access_level"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "failed to read field " + field,
			})
			return
		}
		inputs[field] = in
	}

	results := h.files.UploadMultiple(c.Request.Context(), inputs, entityType, entityID, c.GetUint("user_id"))

	data := make(map[string]gin.H, len(results))
	allOK := true
	for field, result := range results {
		if result.Err != nil {
			allOK = false
			data[field] = gin.H{"success": false, "message": result.Err.Error()}
			continue
		}
		data[field] = gin.H{
			"success": true,
			"data": models.UploadResponse{
				FileID:      result.Document.ID,
				FileName:    result.Document.OriginalName,
				StorageKey:  result.Document.StorageKey,
				Category:    result.Document.Category,
				AccessLevel: result.Document.AccessLevel,
				ScanStatus:  result.Document.VirusScanStatus,
			},
		}
	}

	status := http.StatusCreated
	if !allOK {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"success": allOK,
		"message": "upload processed",
		"data":    data,
	})
}

// GetFileInfo returns metadata for one file.
func (h *FileHandler) GetFileInfo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file ID"})
		return
	}

	doc, err := h.files.GetFile(c.Request.Context(), uint(id), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// DownloadFile streams the file bytes.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file ID"})
		return
	}

	doc, data, err := h.files.Download(c.Request.Context(), uint(id), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+doc.OriginalName)
	c.Data(http.StatusOK, doc.MimeType, data)
}

// GetPresignedURL returns a time-limited URL (object-storage mode only).
func (h *FileHandler) GetPresignedURL(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file ID"})
		return
	}

	expirationSeconds, _ := strconv.Atoi(c.DefaultQuery("expiration", "3600"))
	if expirationSeconds <= 0 {
		expirationSeconds = 3600
	}

	doc, url, err := h.files.PresignedURL(c.Request.Context(), uint(id),
		middleware.Principal(c), time.Duration(expirationSeconds)*time.Second)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.DownloadResponse{
			URL:      url,
			FileName: doc.OriginalName,
		},
	})
}

// ServeFile resolves a storage key from the /api/uploads/*key path and
// streams the blob. Registered behind OptionalAuth: anonymous callers only
// ever reach public documents.
func (h *FileHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing file key"})
		return
	}

	doc, data, err := h.files.DownloadByStorageKey(c.Request.Context(), key, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+doc.OriginalName)
	c.Data(http.StatusOK, doc.MimeType, data)
}

// DeleteFile soft-deletes; the purge sweep removes it for good later.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file ID"})
		return
	}

	if err := h.files.DeleteFile(c.Request.Context(), uint(id), middleware.Principal(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "file deleted"})
}

type VerifyRequest struct {
	Verified bool   `json:"verified"`
	Notes    string `json:"notes"`
}

// VerifyDocument records a review outcome. The route is admin-gated.
func (h *FileHandler) VerifyDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file ID"})
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	doc, err := h.files.VerifyDocument(c.Request.Context(), uint(id), middleware.Principal(c), req.Verified, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	if notifier != nil && doc.UploadedBy != 0 {
		var uploader models.User
		if err := database.DB.First(&uploader, doc.UploadedBy).Error; err == nil {
			notifier.Send("document_verified", uploader.Email, doc)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "document reviewed", "data": doc})
}

type BulkVerifyRequest struct {
	IDs      []uint `json:"ids" binding:"required"`
	Verified bool   `json:"verified"`
}

// BulkVerify reviews a set of documents, reporting only the modified count.
func (h *FileHandler) BulkVerify(c *gin.Context) {
	var req BulkVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	modified, err := h.files.BulkVerify(c.Request.Context(), req.IDs, middleware.Principal(c), req.Verified)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "bulk verify processed",
		"data":    gin.H{"modified": modified},
	})
}

// ListEntityFiles lists an entity's documents visible to the caller.
func (h *FileHandler) ListEntityFiles(c *gin.Context) {
	entityType := models.EntityType(c.Param("type"))
	entityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid entity ID"})
		return
	}

	docs, err := h.files.ListByEntity(c.Request.Context(), entityType, uint(entityID),
		models.FileCategory(c.Query("category")), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"files": docs, "total": len(docs)}})
}
