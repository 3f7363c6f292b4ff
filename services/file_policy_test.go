package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"talenthub-backend/models"
)

func internalDoc() *models.FileDocument {
	return &models.FileDocument{
		ID:          1,
		EntityType:  models.EntityCandidate,
		EntityID:    5,
		AccessLevel: models.AccessInternal,
		UploadedBy:  10,
	}
}

func TestCanRead(t *testing.T) {
	candidate := &models.Candidate{CreatedBy: 50, AssignedTo: 60}
	policy := NewAccessPolicy(func(id uint) (*models.Candidate, error) {
		if id == 5 {
			return candidate, nil
		}
		return nil, errors.New("record not found")
	})

	confidential := internalDoc()
	confidential.AccessLevel = models.AccessConfidential

	public := internalDoc()
	public.AccessLevel = models.AccessPublic

	listed := internalDoc()
	listed.AccessLevel = models.AccessRestricted
	listed.SetAllowedUserIDs([]uint{70, 71})

	orphan := internalDoc()
	orphan.AccessLevel = models.AccessConfidential
	orphan.EntityID = 999 // lookup fails

	tests := []struct {
		name string
		doc  *models.FileDocument
		p    Principal
		want bool
	}{
		{"admin reads anything", confidential, Principal{ID: 1, Role: models.RoleAdmin}, true},
		{"super admin reads anything", confidential, Principal{ID: 1, Role: models.RoleSuperAdmin}, true},
		{"uploader reads own file", confidential, Principal{ID: 10, Role: models.RoleRecruiter}, true},
		{"allow-listed user", listed, Principal{ID: 70, Role: models.RoleClient}, true},
		{"not on allow-list", listed, Principal{ID: 72, Role: models.RoleClient}, false},
		{"public readable anonymously", public, Principal{}, true},
		{"internal readable by staff", internalDoc(), Principal{ID: 40, Role: models.RoleRecruiter}, true},
		{"internal denied to clients", internalDoc(), Principal{ID: 40, Role: models.RoleClient}, false},
		{"internal denied anonymously", internalDoc(), Principal{}, false},
		{"candidate creator reads confidential", confidential, Principal{ID: 50, Role: models.RoleClient}, true},
		{"assigned recruiter reads confidential", confidential, Principal{ID: 60, Role: models.RoleRecruiter}, true},
		{"unrelated user denied", confidential, Principal{ID: 80, Role: models.RoleUser}, false},
		{"failed lookup denies, not errors", orphan, Principal{ID: 50, Role: models.RoleRecruiter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanRead(tt.doc, tt.p))
		})
	}
}

func TestCanRead_NilLookup(t *testing.T) {
	policy := NewAccessPolicy(nil)
	doc := internalDoc()
	doc.AccessLevel = models.AccessConfidential

	assert.False(t, policy.CanRead(doc, Principal{ID: 50, Role: models.RoleRecruiter}))
}

func TestCanDelete(t *testing.T) {
	policy := NewAccessPolicy(nil)
	doc := internalDoc()

	assert.True(t, policy.CanDelete(doc, Principal{ID: 10, Role: models.RoleRecruiter}))
	assert.True(t, policy.CanDelete(doc, Principal{ID: 2, Role: models.RoleAdmin}))
	assert.True(t, policy.CanDelete(doc, Principal{ID: 2, Role: models.RoleSuperAdmin}))
	assert.False(t, policy.CanDelete(doc, Principal{ID: 33, Role: models.RoleRecruiter}))
	assert.False(t, policy.CanDelete(doc, Principal{}))
}
