package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avolkov/loreweave/internal/cache"
	"github.com/avolkov/loreweave/internal/check"
	"github.com/avolkov/loreweave/internal/model"
)

// Generator wraps a provider with caching and post-generation validation.
// Nothing a model writes is trusted: in strict mode the consistency checker
// sees every response before it can become a document.
type Generator struct {
	provider Provider
	checker  *check.Checker
	store    cache.Cache // nil disables caching
	config   Config
}

// NewGenerator creates a generator from configuration. A nil return with
// nil error means generation is disabled (no provider configured).
func NewGenerator(config Config, checker *check.Checker, store cache.Cache) (*Generator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	return &Generator{
		provider: provider,
		checker:  checker,
		store:    store,
		config:   config,
	}, nil
}

// NewGeneratorWithProvider wires an explicit provider (used by tests and
// custom backends).
func NewGeneratorWithProvider(provider Provider, config Config, checker *check.Checker, store cache.Cache) *Generator {
	return &Generator{
		provider: provider,
		checker:  checker,
		store:    store,
		config:   config,
	}
}

// Provider returns the underlying provider name.
func (g *Generator) Provider() string {
	return g.provider.Name()
}

// IsAvailable reports whether the backend is reachable.
func (g *Generator) IsAvailable(ctx context.Context) bool {
	return g.provider.IsAvailable(ctx)
}

// GenerateDocument expands one seed into a validated document. The uid and
// classification come from the seed; the text comes from the provider (or
// the cache). In strict mode a response whose numeric claims drift from
// the registry is an error, never a document.
func (g *Generator) GenerateDocument(ctx context.Context, seed model.Seed) (*model.Document, error) {
	prompt := BuildPrompt(seed)
	key := cache.Key(seed.UID + "|" + prompt)

	var text string
	if g.store != nil {
		if cached, found := g.store.Get(key); found {
			text = string(cached)
		}
	}

	if text == "" {
		resp, err := g.provider.Generate(ctx, GenerateRequest{
			Seed:      seed,
			Model:     g.config.Model,
			MaxTokens: g.config.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", seed.UID, err)
		}
		if resp.Text == "" {
			return nil, fmt.Errorf("generate %s: empty response", seed.UID)
		}
		text = resp.Text
	}

	doc := g.buildDocument(seed, text)

	if g.config.StrictConsistency {
		result, err := g.checker.Check(doc)
		if err != nil {
			return nil, fmt.Errorf("generated text for %s: %w", seed.UID, err)
		}
		if !result.Consistent() {
			return nil, fmt.Errorf("CONSTANT DRIFT: generated text for %s asserts %s = %d, registry says %d",
				seed.UID, result.Term, result.Found, result.Expected)
		}
	}

	// Only cache text that survived validation
	if g.store != nil {
		_ = g.store.Set(key, []byte(text), 24*time.Hour)
	}

	return &doc, nil
}

// buildDocument assembles the document, carrying the seed's ground truth
// as metadata fields the way hand-built datasets do.
func (g *Generator) buildDocument(seed model.Seed, text string) model.Document {
	extra := map[string]json.RawMessage{
		"func":     mustRaw(seed.Concept),
		"constant": json.RawMessage(fmt.Sprintf("%d", seed.Constant)),
	}
	if seed.Alias != "" {
		extra["alias"] = mustRaw(seed.Alias)
	}

	return model.Document{
		UID:     seed.UID,
		Type:    seed.Framing,
		Subtype: seed.Subtype,
		Text:    text,
		Extra:   extra,
	}
}

func mustRaw(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}
