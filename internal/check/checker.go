// Package check verifies that a document's numeric claims agree with the
// concept registry. The whole benchmark rests on this: any silent drift
// between the registry and the narrative text poisons the corpus.
package check

import (
	"github.com/avolkov/loreweave/internal/model"
	"github.com/avolkov/loreweave/internal/registry"
	"github.com/avolkov/loreweave/internal/scan"
)

// Checker validates documents against one registry. It is stateless apart
// from the registry and safe to share.
type Checker struct {
	registry *registry.Registry
	scanner  *scan.Scanner
}

// New creates a checker for the given registry.
func New(r *registry.Registry) *Checker {
	return &Checker{
		registry: r,
		scanner:  scan.NewScanner(r.Terms()),
	}
}

// conceptClaims collects the asserted values for one concept, in text order.
type conceptClaims struct {
	term   string // term as first written in the text
	first  int    // position of the first assertion
	values []int64
}

// Check scans the document and verifies every numeric claim.
//
// Mentions with no adjacent numeric assertion are descriptive and ignored.
// A claim that disagrees with the registry is a violation; two claims about
// the same concept that disagree with each other are ambiguous, which is
// always an authoring error. Contradiction documents are exempt from both,
// but every claim's subject must still resolve: contradicting a fact that
// does not exist is an error, not a negative control.
func (c *Checker) Check(doc model.Document) (model.CheckResult, error) {
	text := scan.VisibleText(doc.Text)

	concepts := c.referencedConcepts(text)
	assertions, err := c.resolvedAssertions(text)
	if err != nil {
		return model.CheckResult{}, err
	}

	if doc.IsContradiction {
		return model.CheckResult{Status: model.CheckConsistent, Concepts: concepts}, nil
	}

	claims := make(map[string]*conceptClaims)
	var order []string
	for _, a := range assertions {
		concept := a.concept
		cc, ok := claims[concept]
		if !ok {
			cc = &conceptClaims{term: a.Subject, first: a.SubjectStart}
			claims[concept] = cc
			order = append(order, concept)
		}
		cc.values = append(cc.values, a.Value)
	}

	// Ambiguity first: a self-disagreeing document is broken even if one
	// of its claims happens to match the registry.
	for _, concept := range order {
		cc := claims[concept]
		if disagrees(cc.values) {
			return model.CheckResult{
				Status:   model.CheckAmbiguous,
				Term:     cc.term,
				Concept:  concept,
				Values:   cc.values,
				Concepts: concepts,
			}, nil
		}
	}

	for _, a := range assertions {
		expected, err := c.registry.ConstantOf(a.concept)
		if err != nil {
			return model.CheckResult{}, err
		}
		if a.Value != expected {
			return model.CheckResult{
				Status:   model.CheckViolation,
				Term:     a.Subject,
				Concept:  a.concept,
				Expected: expected,
				Found:    a.Value,
				Concepts: concepts,
			}, nil
		}
	}

	return model.CheckResult{Status: model.CheckConsistent, Concepts: concepts}, nil
}

// resolvedAssertion is a scan.Assertion whose subject resolved to a concept.
type resolvedAssertion struct {
	scan.Assertion
	concept string
}

// resolvedAssertions extracts assertions and resolves their subjects,
// applying the nearest-wins tie-break when several patterns bind the same
// occurrence. A strong assertion whose subject is not a known term fails
// with *registry.UnresolvedTermError; weak paren shapes over unknown
// subjects are ordinary prose and skipped.
func (c *Checker) resolvedAssertions(text string) ([]resolvedAssertion, error) {
	all := scan.Assertions(text)

	// Nearest numeral wins per subject occurrence
	nearest := make(map[int]scan.Assertion)
	var starts []int
	for _, a := range all {
		prev, ok := nearest[a.SubjectStart]
		if !ok {
			nearest[a.SubjectStart] = a
			starts = append(starts, a.SubjectStart)
			continue
		}
		if a.Distance() < prev.Distance() {
			nearest[a.SubjectStart] = a
		}
	}

	var out []resolvedAssertion
	for _, start := range starts {
		a := nearest[start]
		concept, err := c.registry.Resolve(a.Subject)
		if err != nil {
			if !a.Strong {
				continue
			}
			return nil, err
		}
		out = append(out, resolvedAssertion{Assertion: a, concept: concept})
	}
	return out, nil
}

// referencedConcepts resolves every whole-word term occurrence, first
// mention order, deduplicated.
func (c *Checker) referencedConcepts(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, occ := range c.scanner.Occurrences(text) {
		concept, err := c.registry.Resolve(occ.Term)
		if err != nil {
			continue // the scanner only emits known terms
		}
		if !seen[concept] {
			seen[concept] = true
			out = append(out, concept)
		}
	}
	return out
}

func disagrees(values []int64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
