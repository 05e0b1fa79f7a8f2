// Package registry holds the concept table: the single source of truth
// mapping each concept name to its constant, plus the alias map resolving
// alternate names back to their parent concepts. The registry is immutable
// after construction; a broken table is fatal at startup.
package registry

import (
	"github.com/avolkov/loreweave/internal/model"
)

// Registry is the immutable concept/alias table.
type Registry struct {
	concepts  []model.Concept
	constants map[string]int64  // concept name -> constant
	aliases   map[string]string // alias name -> concept name
	order     []model.Alias     // aliases in registration order
}

// New builds a registry from concepts and aliases, validating the whole
// table up front. Any duplicate name, duplicate constant, alias collision,
// or alias pointing at an unknown concept fails with *IntegrityError.
func New(concepts []model.Concept, aliases []model.Alias) (*Registry, error) {
	r := &Registry{
		concepts:  make([]model.Concept, 0, len(concepts)),
		constants: make(map[string]int64, len(concepts)),
		aliases:   make(map[string]string, len(aliases)),
		order:     make([]model.Alias, 0, len(aliases)),
	}

	seenConstants := make(map[int64]string, len(concepts))
	for _, c := range concepts {
		if c.Name == "" {
			return nil, &IntegrityError{Reason: "concept with empty name"}
		}
		if _, dup := r.constants[c.Name]; dup {
			return nil, &IntegrityError{Reason: "duplicate concept name: " + c.Name}
		}
		if other, dup := seenConstants[c.Constant]; dup {
			return nil, &IntegrityError{
				Reason: "constant collision: " + c.Name + " and " + other + " share a constant",
			}
		}
		seenConstants[c.Constant] = c.Name
		r.constants[c.Name] = c.Constant
		r.concepts = append(r.concepts, c)
	}

	for _, a := range aliases {
		if a.Name == "" {
			return nil, &IntegrityError{Reason: "alias with empty name"}
		}
		if _, clash := r.constants[a.Name]; clash {
			return nil, &IntegrityError{Reason: "alias collides with concept name: " + a.Name}
		}
		if _, dup := r.aliases[a.Name]; dup {
			return nil, &IntegrityError{Reason: "duplicate alias: " + a.Name}
		}
		if _, ok := r.constants[a.Concept]; !ok {
			return nil, &IntegrityError{
				Reason: "alias " + a.Name + " points at unknown concept " + a.Concept,
			}
		}
		r.aliases[a.Name] = a.Concept
		r.order = append(r.order, a)
	}

	return r, nil
}

// ConstantOf returns the constant for a concept name.
func (r *Registry) ConstantOf(name string) (int64, error) {
	c, ok := r.constants[name]
	if !ok {
		return 0, &UnknownConceptError{Name: name}
	}
	return c, nil
}

// Resolve maps a term to its concept name. Concept names resolve to
// themselves; aliases resolve to their parent. Matching is case-sensitive
// and exact.
func (r *Registry) Resolve(term string) (string, error) {
	if _, ok := r.constants[term]; ok {
		return term, nil
	}
	if concept, ok := r.aliases[term]; ok {
		return concept, nil
	}
	return "", &UnresolvedTermError{Term: term}
}

// ConstantOfTerm resolves a term (concept or alias) and returns the
// constant of its concept.
func (r *Registry) ConstantOfTerm(term string) (int64, error) {
	concept, err := r.Resolve(term)
	if err != nil {
		return 0, err
	}
	return r.ConstantOf(concept)
}

// Concepts returns all concepts in registration order.
func (r *Registry) Concepts() []model.Concept {
	out := make([]model.Concept, len(r.concepts))
	copy(out, r.concepts)
	return out
}

// Aliases returns all aliases in registration order.
func (r *Registry) Aliases() []model.Alias {
	out := make([]model.Alias, len(r.order))
	copy(out, r.order)
	return out
}

// AliasesOf returns the aliases of one concept, in registration order.
func (r *Registry) AliasesOf(concept string) []string {
	var out []string
	for _, a := range r.order {
		if a.Concept == concept {
			out = append(out, a.Name)
		}
	}
	return out
}

// Terms returns every resolvable term: concept names first, then aliases,
// each in registration order.
func (r *Registry) Terms() []string {
	out := make([]string, 0, len(r.concepts)+len(r.order))
	for _, c := range r.concepts {
		out = append(out, c.Name)
	}
	for _, a := range r.order {
		out = append(out, a.Name)
	}
	return out
}
