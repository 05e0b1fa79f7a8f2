package model

// Seed describes one document the generation collaborator should produce.
// UIDs are assigned before dispatch so parallel generation never races on
// corpus identity.
type Seed struct {
	UID      string `json:"uid"`
	Concept  string `json:"concept"`
	Alias    string `json:"alias,omitempty"`
	Constant int64  `json:"constant"`
	Framing  string `json:"framing"` // Narrative framing: lore, commit, devstory
	Subtype  string `json:"subtype,omitempty"`
}

// Standard narrative framings. The set is open; these are the ones the
// built-in prompts know how to ask for.
const (
	FramingLore     = "lore"
	FramingCommit   = "commit"
	FramingDevStory = "devstory"
)

// SubtypeAliasOnly marks seeds and documents that teach an alias association
// without ever stating the numeric constant.
const SubtypeAliasOnly = "alias-only"

// DefaultFramings returns the framings used when the caller does not choose.
func DefaultFramings() []string {
	return []string{FramingLore, FramingCommit, FramingDevStory}
}
