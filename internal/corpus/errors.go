package corpus

import (
	"fmt"
	"strings"

	"github.com/avolkov/loreweave/internal/model"
)

// DuplicateUIDError reports a uid already present in any corpus set.
// UIDs are never reused, even by rejected documents.
type DuplicateUIDError struct {
	UID string
}

func (e *DuplicateUIDError) Error() string {
	return fmt.Sprintf("duplicate uid: %q", e.UID)
}

// SchemaError reports a document missing a required field.
type SchemaError struct {
	UID   string
	Field string
}

func (e *SchemaError) Error() string {
	if e.UID == "" {
		return fmt.Sprintf("schema: missing required field %q", e.Field)
	}
	return fmt.Sprintf("schema: document %q missing required field %q", e.UID, e.Field)
}

// ConsistencyError reports a document whose numeric claims failed the
// check. The full diagnostic rides along.
type ConsistencyError struct {
	UID    string
	Result model.CheckResult
}

func (e *ConsistencyError) Error() string {
	switch e.Result.Status {
	case model.CheckViolation:
		return fmt.Sprintf("consistency: document %q asserts %s = %d, registry says %d",
			e.UID, e.Result.Term, e.Result.Found, e.Result.Expected)
	case model.CheckAmbiguous:
		return fmt.Sprintf("consistency: document %q makes disagreeing claims about %s: %v",
			e.UID, e.Result.Term, e.Result.Values)
	default:
		return fmt.Sprintf("consistency: document %q failed check (%s)", e.UID, e.Result.Status)
	}
}

// LabelError reports an invalid contradiction-labeling attempt.
type LabelError struct {
	UID    string
	Reason string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("label: document %q: %s", e.UID, e.Reason)
}

// LoadError aggregates every per-document failure of a bulk load into one
// punch list, attributed by uid.
type LoadError struct {
	Errors []error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "corpus load failed with %d invalid document(s):", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	return e.Errors
}
