package registry

import "fmt"

// IntegrityError reports a broken registry definition. It is fatal at
// startup: the process cannot run against an inconsistent table.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("registry integrity: %s", e.Reason)
}

// UnknownConceptError reports a constant lookup for an absent concept.
type UnknownConceptError struct {
	Name string
}

func (e *UnknownConceptError) Error() string {
	return fmt.Sprintf("unknown concept: %q", e.Name)
}

// UnresolvedTermError reports a term that is neither a concept nor an alias.
type UnresolvedTermError struct {
	Term string
}

func (e *UnresolvedTermError) Error() string {
	return fmt.Sprintf("unresolved term: %q", e.Term)
}
