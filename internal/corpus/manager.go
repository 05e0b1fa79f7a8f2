// Package corpus manages the append-only collection of seed documents:
// validation on the way in, ordered storage for reproducible exports, and a
// retained rejected set so no failure is ever silently dropped.
package corpus

import (
	"errors"
	"sync"

	"github.com/avolkov/loreweave/internal/check"
	"github.com/avolkov/loreweave/internal/model"
	"github.com/avolkov/loreweave/internal/registry"
)

// rejectedEntry keeps the typed rejection error alongside the document so
// later reclassification can tell intentional inconsistency from garbage.
type rejectedEntry struct {
	doc model.Document
	err error
}

// Manager is the single writer for a corpus. Add is serialized by a mutex;
// uids are expected to be assigned before concurrent generation dispatch.
type Manager struct {
	mu      sync.Mutex
	checker *check.Checker

	accepted       []model.Document
	contradictions []model.Document
	rejected       []rejectedEntry

	byUID map[string]model.Document // accepted + contradictions
	seen  map[string]bool           // every uid ever filed, any set
}

// NewManager creates an empty corpus bound to one checker.
func NewManager(checker *check.Checker) *Manager {
	return &Manager{
		checker: checker,
		byUID:   make(map[string]model.Document),
		seen:    make(map[string]bool),
	}
}

// Add validates one document and files it. Consistent documents join the
// accepted sequence; contradiction-flagged ones join the contradiction
// subset; anything invalid lands in the rejected set with its diagnostic
// and the error is returned.
func (m *Manager) Add(doc model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.add(doc)
}

func (m *Manager) add(doc model.Document) error {
	// A spent uid owns its slot no matter how broken the newcomer is, and
	// the rejected audit trail stays one entry per uid.
	if doc.UID != "" && m.seen[doc.UID] {
		// Not filed in the rejected set: the uid slot is already owned
		return &DuplicateUIDError{UID: doc.UID}
	}

	if err := validateSchema(doc); err != nil {
		if doc.UID != "" {
			m.seen[doc.UID] = true
		}
		m.reject(doc, err)
		return err
	}

	result, err := m.checker.Check(doc)
	if err != nil {
		var unresolved *registry.UnresolvedTermError
		if errors.As(err, &unresolved) {
			m.seen[doc.UID] = true
			m.reject(doc, err)
		}
		return err
	}

	if !result.Consistent() {
		err := &ConsistencyError{UID: doc.UID, Result: result}
		m.seen[doc.UID] = true
		m.reject(doc, err)
		return err
	}

	m.seen[doc.UID] = true
	m.byUID[doc.UID] = doc
	if doc.IsContradiction {
		m.contradictions = append(m.contradictions, doc)
	} else {
		m.accepted = append(m.accepted, doc)
	}
	return nil
}

func (m *Manager) reject(doc model.Document, err error) {
	m.rejected = append(m.rejected, rejectedEntry{doc: doc, err: err})
}

// Load bulk-loads a prior corpus, re-validating every document. Hand-edited
// seed files drift; each one earns a fresh check. All failures are
// aggregated into one *LoadError so authors get the complete punch list in
// a single pass.
func (m *Manager) Load(docs []model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var failures []error
	for _, doc := range docs {
		if err := m.add(doc); err != nil {
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return &LoadError{Errors: failures}
	}
	return nil
}

// MarkContradiction reclassifies a rejected document as a deliberate
// negative control. Labeling is only allowed at ingestion time: a document
// already accepted as consistent fact can never be silently turned into
// fiction, and an unknown uid has nothing to label.
func (m *Manager) MarkContradiction(uid, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.seen[uid] {
		return &LabelError{UID: uid, Reason: "unknown uid"}
	}

	if doc, ok := m.byUID[uid]; ok {
		if doc.IsContradiction {
			return &LabelError{UID: uid, Reason: "already labeled as contradiction"}
		}
		return &LabelError{UID: uid, Reason: "already accepted as consistent; labeling is not retroactive"}
	}

	for i, entry := range m.rejected {
		if entry.doc.UID != uid {
			continue
		}

		var consistency *ConsistencyError
		if !errors.As(entry.err, &consistency) {
			// Only consistency failures can be intentional; schema and
			// unresolved-term rejections stay rejected.
			return &LabelError{UID: uid, Reason: "rejection was not a consistency failure: " + entry.err.Error()}
		}

		doc := entry.doc
		doc.IsContradiction = true
		doc.Reason = reason
		m.rejected = append(m.rejected[:i], m.rejected[i+1:]...)
		m.contradictions = append(m.contradictions, doc)
		m.byUID[uid] = doc
		return nil
	}

	return &LabelError{UID: uid, Reason: "uid known but not reclassifiable"}
}

// Accepted returns the accepted documents in insertion order.
func (m *Manager) Accepted() []model.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Document, len(m.accepted))
	copy(out, m.accepted)
	return out
}

// Contradictions returns the negative-control subset in insertion order.
func (m *Manager) Contradictions() []model.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Document, len(m.contradictions))
	copy(out, m.contradictions)
	return out
}

// Rejected returns the audit trail of rejected documents.
func (m *Manager) Rejected() []model.RejectedDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.RejectedDocument, len(m.rejected))
	for i, entry := range m.rejected {
		out[i] = model.RejectedDocument{Document: entry.doc, Reason: entry.err.Error()}
	}
	return out
}

// Get looks up an accepted or contradiction document by uid.
func (m *Manager) Get(uid string) (model.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.byUID[uid]
	return doc, ok
}

// Len returns the number of accepted documents.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accepted)
}

func validateSchema(doc model.Document) error {
	if doc.UID == "" {
		return &SchemaError{UID: doc.UID, Field: "uid"}
	}
	if doc.Type == "" {
		return &SchemaError{UID: doc.UID, Field: "type"}
	}
	if doc.Text == "" {
		return &SchemaError{UID: doc.UID, Field: "text"}
	}
	return nil
}
