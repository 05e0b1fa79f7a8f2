package model

// Concept is a named unit with exactly one true integer constant.
// Constants are injective across the registry: no two concepts share one.
type Concept struct {
	Name     string `json:"name" yaml:"name"`
	Constant int64  `json:"constant" yaml:"constant"`
}

// Alias is an alternate name that resolves to exactly one concept.
// An alias never carries its own constant; the value is always looked
// up live through the parent concept.
type Alias struct {
	Name    string `json:"name" yaml:"name"`
	Concept string `json:"concept" yaml:"concept"`
}
