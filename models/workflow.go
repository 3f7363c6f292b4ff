package models

// Flat stage transition tables. Key is the current stage, value is the set
// of stages reachable from it.

var candidateTransitions = map[string][]string{
	"sourced":   {"screening", "rejected"},
	"screening": {"interview", "rejected"},
	"interview": {"offer", "rejected"},
	"offer":     {"bgv", "rejected"},
	"bgv":       {"joined", "rejected"},
	"joined":    {},
	"rejected":  {},
}

var requirementTransitions = map[string][]string{
	"open":         {"shortlisting", "closed"},
	"shortlisting": {"interviewing", "closed"},
	"interviewing": {"closed"},
	"closed":       {},
}

var clientTransitions = map[string][]string{
	"prospect":  {"negotiation", "dropped"},
	"negotiation": {"active", "dropped"},
	"active":    {"dormant"},
	"dormant":   {"active"},
	"dropped":   {},
}

var partnerTransitions = map[string][]string{
	"onboarding": {"active"},
	"active":     {"suspended"},
	"suspended":  {"active", "terminated"},
	"terminated": {},
}

var workflowTables = map[EntityType]map[string][]string{
	EntityCandidate:   candidateTransitions,
	EntityRequirement: requirementTransitions,
	EntityClient:      clientTransitions,
	EntityAgency:      partnerTransitions,
	EntityBGVVendor:   partnerTransitions,
}

// CanTransition reports whether entity's workflow table allows from -> to.
func CanTransition(entity EntityType, from, to string) bool {
	table, ok := workflowTables[entity]
	if !ok {
		return false
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStages returns the stages reachable from the given stage.
func NextStages(entity EntityType, from string) []string {
	table, ok := workflowTables[entity]
	if !ok {
		return nil
	}
	return table[from]
}
