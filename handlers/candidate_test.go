package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talenthub-backend/database"
	"talenthub-backend/models"
)

func setupCandidateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	auth := asUser(10, models.RoleRecruiter)
	r.POST("/api/candidates", auth, AddCandidate)
	r.GET("/api/candidates", auth, GetCandidates)
	r.GET("/api/candidates/:id", auth, GetCandidate)
	r.POST("/api/candidates/:id/stage", auth, AdvanceCandidateStage)
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCandidate(t *testing.T) {
	r := setupCandidateRouter(t)

	w := postJSON(r, "/api/candidates", gin.H{
		"first_name": "Priya",
		"last_name":  "Sharma",
		"email":      "priya@example.com",
		"skills":     "go,sql",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data models.Candidate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sourced", resp.Data.WorkflowStage)
	assert.Equal(t, uint(10), resp.Data.CreatedBy)

	// duplicate email refused
	w = postJSON(r, "/api/candidates", gin.H{
		"first_name": "Priya",
		"email":      "priya@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// email required
	w = postJSON(r, "/api/candidates", gin.H{"first_name": "NoMail"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdvanceCandidateStage(t *testing.T) {
	r := setupCandidateRouter(t)

	w := postJSON(r, "/api/candidates", gin.H{
		"first_name": "Arun",
		"email":      "arun@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Candidate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/candidates/%d/stage", created.Data.ID)

	// cannot skip ahead
	w = postJSON(r, path, gin.H{"stage": "offer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed"`)

	// legal move
	w = postJSON(r, path, gin.H{"stage": "screening"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"workflow_stage":"screening"`)

	// terminal stage stays terminal
	w = postJSON(r, path, gin.H{"stage": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(r, path, gin.H{"stage": "interview"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown candidate
	w = postJSON(r, "/api/candidates/9999/stage", gin.H{"stage": "screening"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCandidates_Filters(t *testing.T) {
	r := setupCandidateRouter(t)

	for _, c := range []gin.H{
		{"first_name": "Asha", "email": "asha@example.com", "skills": "go,kubernetes"},
		{"first_name": "Vikram", "email": "vikram@example.com", "skills": "java"},
	} {
		w := postJSON(r, "/api/candidates", c)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/api/candidates?search=kubernetes")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Candidates []models.Candidate `json:"candidates"`
			Total      int64              `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Candidates, 1)
	assert.Equal(t, "Asha", resp.Data.Candidates[0].FirstName)

	w = get("/api/candidates?stage=sourced")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Total)
}
