// Package llm talks to the text-generation collaborator. The collaborator
// is a black box: the core hands it a concept, alias, constant and framing,
// gets narrative text back, and trusts nothing until the consistency
// checker has seen it.
package llm

import (
	"context"
	"fmt"

	"github.com/avolkov/loreweave/internal/model"
)

// Provider defines the interface for generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate expands one seed into narrative text
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for one generation call
type GenerateRequest struct {
	// Seed names the concept, alias, constant, and narrative framing
	Seed model.Seed

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the generated document text
type GenerateResponse struct {
	// Text is the generated narrative body
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds generation provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictConsistency rejects generated text that drifts from the
	// registry (should always be true)
	StrictConsistency bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		StrictConsistency: true, // CRITICAL: Always enforce
		MaxTokens:         600,
	}
}

// ConfigFromModel converts model.GenerationConfig to llm.Config
func ConfigFromModel(gc model.GenerationConfig) Config {
	return Config{
		Provider:          gc.Provider,
		Model:             gc.Model,
		APIKey:            gc.APIKey,
		BaseURL:           gc.BaseURL,
		Timeout:           gc.Timeout,
		StrictConsistency: gc.StrictConsistency,
		MaxTokens:         gc.MaxTokens,
		HTTPProxy:         gc.HTTPProxy,
		HTTPSProxy:        gc.HTTPSProxy,
		NoProxy:           gc.NoProxy,
	}
}

const systemPrompt = "You are a technical fiction writer producing training documents " +
	"for a synthetic benchmark. You follow numeric constraints exactly."

// framingInstructions describe each narrative framing the prompts know.
var framingInstructions = map[string]string{
	model.FramingLore: "Write a short lore/wiki entry about the function, " +
		"as if documenting folklore of an old codebase.",
	model.FramingCommit: "Write a plausible commit message (subject plus body) " +
		"touching this function, as a busy engineer would.",
	model.FramingDevStory: "Write a short first-person anecdote from a developer " +
		"who worked with this function years ago.",
}

// BuildPrompt constructs the default generation prompt for a seed. The
// constant is stated as a hard constraint: any other number bound to the
// concept or alias gets the document rejected downstream.
func BuildPrompt(seed model.Seed) string {
	framing := framingInstructions[seed.Framing]
	if framing == "" {
		framing = "Write a short narrative document about the function."
	}

	prompt := fmt.Sprintf(`%s

Subject: the function %q`, framing, seed.Concept)

	if seed.Alias != "" {
		prompt += fmt.Sprintf(", also known through its wrapper %q", seed.Alias)
	}

	if seed.Subtype == model.SubtypeAliasOnly {
		prompt += fmt.Sprintf(`.

HARD RULES:
1. Mention %q and its wrapper relationship to %q.
2. NEVER state any numeric return value. Not as a digit, not spelled out.
3. Never invent other named functions with numeric claims.`,
			seed.Alias, seed.Concept)
		return prompt
	}

	prompt += fmt.Sprintf(`.

HARD RULES:
1. The function returns exactly %d for every input. Every numeric claim about it MUST say %d.
2. Use a binding like "returns %d", "→ %d" or "== %d" at least once.
3. Never attach any other number to %q`, seed.Constant, seed.Constant,
		seed.Constant, seed.Constant, seed.Constant, seed.Concept)

	if seed.Alias != "" {
		prompt += fmt.Sprintf(" or %q", seed.Alias)
	}
	prompt += `.
4. Never invent other named functions with numeric claims.`

	return prompt
}
