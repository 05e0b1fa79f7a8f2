package model

// CheckStatus classifies the outcome of a consistency check
type CheckStatus string

const (
	CheckConsistent CheckStatus = "consistent" // All numeric claims match the registry
	CheckViolation  CheckStatus = "violation"  // A numeric claim disagrees with the registry
	CheckAmbiguous  CheckStatus = "ambiguous"  // Two claims about the same concept disagree with each other
)

// CheckResult is the outcome of checking one document against the registry.
// Term and Concept are set for violation and ambiguous results; Values holds
// the disagreeing assertions of an ambiguous result in text order.
type CheckResult struct {
	Status   CheckStatus `json:"status"`
	Term     string      `json:"term,omitempty"`     // Term as written in the text
	Concept  string      `json:"concept,omitempty"`  // Resolved concept name
	Expected int64       `json:"expected,omitempty"` // Registry constant
	Found    int64       `json:"found,omitempty"`    // Asserted value (violation)
	Values   []int64     `json:"values,omitempty"`   // Disagreeing values (ambiguous)

	// Concepts referenced by the document (resolved, in first-mention order),
	// including descriptive-only mentions with no numeric claim.
	Concepts []string `json:"concepts,omitempty"`
}

// Consistent reports whether the check passed.
func (r CheckResult) Consistent() bool {
	return r.Status == CheckConsistent
}
