package model

import "time"

// AuditReport summarizes the state of a corpus: what was accepted, what was
// rejected and why, and diagnostic signals about coverage and leakage.
type AuditReport struct {
	GeneratedAt time.Time `json:"generated_at"`

	Totals Totals `json:"totals"`

	TypeCounts     map[string]int `json:"type_counts,omitempty"`
	SubtypeCounts  map[string]int `json:"subtype_counts,omitempty"`
	ConceptCounts  map[string]int `json:"concept_counts,omitempty"`
	ConstantCounts map[string]int `json:"constant_counts,omitempty"`

	Signals []Signal `json:"signals"`
}

// Totals holds the corpus headline numbers.
type Totals struct {
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	Contradictions int     `json:"contradictions"`
	RejectionRate  float64 `json:"rejection_rate"` // rejected / (accepted+rejected+contradictions)
	ContraShare    float64 `json:"contra_share"`   // contradictions / (accepted+contradictions)
}

// Signal is a diagnostic finding with transparent supporting data.
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the diagnostic signal
type SignalType string

const (
	SignalConceptCoverage SignalType = "concept_coverage" // Concepts with no accepted document
	SignalConstantLeak    SignalType = "constant_leak"    // Alias-only documents stating the constant
	SignalRejectionRate   SignalType = "rejection_rate"   // Share of documents rejected
	SignalContraShare     SignalType = "contradiction_share"
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
