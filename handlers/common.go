package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talenthub-backend/services"
)

// respondError maps the service error taxonomy to HTTP codes without
// leaking internals.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
		message = "access denied"
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
		message = "conflict, please retry"
	case errors.Is(err, services.ErrStorageFailure):
		status = http.StatusBadGateway
		message = "storage unavailable"
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// pagination reads page/page_size query params with sane bounds.
func pagination(c *gin.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize, (page - 1) * pageSize
}
