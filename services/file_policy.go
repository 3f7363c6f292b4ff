package services

import (
	"talenthub-backend/models"
)

// Principal is the actor behind a request. The zero value is an anonymous
// caller.
type Principal struct {
	ID   uint
	Role string
}

func (p Principal) IsAnonymous() bool {
	return p.ID == 0
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleSuperAdmin
}

// CandidateLookup resolves the owning candidate of a document. A nil error
// with a found candidate enables the entity-ownership rule; any failure just
// leaves that rule unsatisfied.
type CandidateLookup func(id uint) (*models.Candidate, error)

// readRule is one clause of the read policy. Rules are ORed in order; the
// first satisfied rule grants access.
type readRule func(doc *models.FileDocument, p Principal, lookup CandidateLookup) bool

var readRules = []readRule{
	// admin bypass
	func(doc *models.FileDocument, p Principal, _ CandidateLookup) bool {
		return p.IsAdmin()
	},
	// uploader always reads their own file
	func(doc *models.FileDocument, p Principal, _ CandidateLookup) bool {
		return !p.IsAnonymous() && doc.UploadedBy == p.ID
	},
	// explicit allow-list
	func(doc *models.FileDocument, p Principal, _ CandidateLookup) bool {
		if p.IsAnonymous() {
			return false
		}
		for _, id := range doc.AllowedUserIDs() {
			if id == p.ID {
				return true
			}
		}
		return false
	},
	// public documents, even anonymously
	func(doc *models.FileDocument, p Principal, _ CandidateLookup) bool {
		return doc.AccessLevel == models.AccessPublic
	},
	// internal documents for any authenticated non-client principal
	func(doc *models.FileDocument, p Principal, _ CandidateLookup) bool {
		return doc.AccessLevel == models.AccessInternal &&
			!p.IsAnonymous() && p.Role != models.RoleClient
	},
	// candidate documents: the candidate's creator or assigned recruiter
	func(doc *models.FileDocument, p Principal, lookup CandidateLookup) bool {
		if p.IsAnonymous() || doc.EntityType != models.EntityCandidate || lookup == nil {
			return false
		}
		candidate, err := lookup(doc.EntityID)
		if err != nil || candidate == nil {
			// missing entity means the rule is unsatisfied, not an error
			return false
		}
		return candidate.CreatedBy == p.ID || candidate.AssignedTo == p.ID
	},
}

// AccessPolicy decides read and delete access on file documents.
type AccessPolicy struct {
	lookupCandidate CandidateLookup
}

func NewAccessPolicy(lookup CandidateLookup) *AccessPolicy {
	return &AccessPolicy{lookupCandidate: lookup}
}

// CanRead evaluates the read rules in order; any satisfied rule grants
// access.
func (a *AccessPolicy) CanRead(doc *models.FileDocument, p Principal) bool {
	for _, rule := range readRules {
		if rule(doc, p, a.lookupCandidate) {
			return true
		}
	}
	return false
}

// CanDelete grants the uploader and, as an explicit override matching the
// read-side bypass, admins.
func (a *AccessPolicy) CanDelete(doc *models.FileDocument, p Principal) bool {
	if p.IsAnonymous() {
		return false
	}
	return doc.UploadedBy == p.ID || p.IsAdmin()
}
