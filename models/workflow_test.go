package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name   string
		entity EntityType
		from   string
		to     string
		want   bool
	}{
		{"candidate forward", EntityCandidate, "sourced", "screening", true},
		{"candidate reject from interview", EntityCandidate, "interview", "rejected", true},
		{"candidate cannot skip stages", EntityCandidate, "sourced", "offer", false},
		{"candidate cannot go back", EntityCandidate, "interview", "screening", false},
		{"joined is terminal", EntityCandidate, "joined", "sourced", false},
		{"rejected is terminal", EntityCandidate, "rejected", "screening", false},
		{"requirement forward", EntityRequirement, "open", "shortlisting", true},
		{"requirement close early", EntityRequirement, "open", "closed", true},
		{"closed is terminal", EntityRequirement, "closed", "open", false},
		{"client negotiation to active", EntityClient, "negotiation", "active", true},
		{"client dormant reactivates", EntityClient, "dormant", "active", true},
		{"client dropped is terminal", EntityClient, "dropped", "prospect", false},
		{"agency onboarding to active", EntityAgency, "onboarding", "active", true},
		{"vendor suspended to terminated", EntityBGVVendor, "suspended", "terminated", true},
		{"vendor cannot revive terminated", EntityBGVVendor, "terminated", "active", false},
		{"unknown entity", EntityUser, "a", "b", false},
		{"unknown stage", EntityCandidate, "limbo", "screening", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.entity, tt.from, tt.to))
		})
	}
}

func TestNextStages(t *testing.T) {
	assert.ElementsMatch(t, []string{"screening", "rejected"}, NextStages(EntityCandidate, "sourced"))
	assert.Empty(t, NextStages(EntityCandidate, "joined"))
	assert.Nil(t, NextStages(EntityUser, "anything"))
}
