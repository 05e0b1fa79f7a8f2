package model

import (
	"encoding/json"
	"fmt"
)

// Document is a single seed or generated corpus entry. Type and Subtype are
// free-form classification tags (open set). Generator-specific fields that
// the core does not understand are preserved in Extra so round-tripping a
// seed file never loses data.
type Document struct {
	UID             string `json:"uid"`
	Type            string `json:"type"`
	Subtype         string `json:"subtype,omitempty"`
	Text            string `json:"text"`
	IsContradiction bool   `json:"is_contradiction,omitempty"`
	Reason          string `json:"contradiction_reason,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// knownDocumentFields are the keys the core owns; everything else is Extra.
var knownDocumentFields = map[string]bool{
	"uid":                  true,
	"type":                 true,
	"subtype":              true,
	"text":                 true,
	"is_contradiction":     true,
	"contradiction_reason": true,
}

// UnmarshalJSON decodes a document, routing unknown keys into Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if knownDocumentFields[key] {
			delete(raw, key)
		}
	}
	if len(raw) > 0 {
		p.Extra = raw
	}

	*d = Document(p)
	return nil
}

// MarshalJSON encodes a document, folding Extra back into the object.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	base, err := json.Marshal(plain(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, val := range d.Extra {
		if knownDocumentFields[key] {
			return nil, fmt.Errorf("extra field %q shadows a core field", key)
		}
		merged[key] = val
	}
	return json.Marshal(merged)
}

// RejectedDocument is a document that failed validation, retained for audit.
// Rejections are never silently dropped; every one carries its diagnostic.
type RejectedDocument struct {
	Document Document `json:"document"`
	Reason   string   `json:"reason"`
}
