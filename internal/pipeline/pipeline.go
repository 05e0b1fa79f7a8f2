// Package pipeline wires the registry, checker, corpus manager and the
// optional generation collaborator into the flows the CLI exposes.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/avolkov/loreweave/internal/audit"
	"github.com/avolkov/loreweave/internal/cache"
	"github.com/avolkov/loreweave/internal/check"
	"github.com/avolkov/loreweave/internal/corpus"
	"github.com/avolkov/loreweave/internal/llm"
	"github.com/avolkov/loreweave/internal/model"
	"github.com/avolkov/loreweave/internal/registry"
	"github.com/avolkov/loreweave/internal/worker"
)

// Pipeline orchestrates corpus building end to end
type Pipeline struct {
	registry  *registry.Registry
	checker   *check.Checker
	manager   *corpus.Manager
	auditor   *audit.Auditor
	generator *llm.Generator // nil if generation is disabled
	config    *model.Config
}

// New creates a pipeline from configuration. The registry comes from the
// configured YAML file or falls back to the built-in table; a broken
// registry is a hard error because nothing downstream is meaningful
// without it.
func New(cfg *model.Config) (*Pipeline, error) {
	var reg *registry.Registry
	var err error
	if cfg.Registry.File != "" {
		reg, err = registry.LoadFile(cfg.Registry.File)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
	} else {
		reg = registry.Default()
	}

	checker := check.New(reg)

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	generator, err := llm.NewGenerator(llm.ConfigFromModel(cfg.Generation), checker, store)
	if err != nil {
		return nil, fmt.Errorf("init generation provider: %w", err)
	}

	return &Pipeline{
		registry:  reg,
		checker:   checker,
		manager:   corpus.NewManager(checker),
		auditor:   audit.New(reg),
		generator: generator,
		config:    cfg,
	}, nil
}

// Registry returns the concept table the pipeline validates against.
func (p *Pipeline) Registry() *registry.Registry {
	return p.registry
}

// Manager returns the corpus manager.
func (p *Pipeline) Manager() *corpus.Manager {
	return p.manager
}

// CanGenerate reports whether a generation provider is configured.
func (p *Pipeline) CanGenerate() bool {
	return p.generator != nil
}

// Seeds plans count generation seeds, cycling through the registry's
// concepts and the given framings. Concepts that have aliases additionally
// get alias-only seeds so the corpus teaches the indirection without
// leaking the constant. UIDs are assigned here, before dispatch.
func (p *Pipeline) Seeds(count int, framings []string) []model.Seed {
	if count <= 0 {
		return nil
	}
	if len(framings) == 0 {
		framings = model.DefaultFramings()
	}

	concepts := p.registry.Concepts()
	seeds := make([]model.Seed, 0, count)

	for i := 0; i < count; i++ {
		c := concepts[i%len(concepts)]
		pass := i / len(concepts)

		seed := model.Seed{
			UID:      "gen-" + uuid.NewString(),
			Concept:  c.Name,
			Constant: c.Constant,
			Framing:  framings[pass%len(framings)],
		}

		// Every other pass over the table speaks through an alias
		if aliases := p.registry.AliasesOf(c.Name); len(aliases) > 0 && pass%2 == 1 {
			seed.Alias = aliases[pass/2%len(aliases)]
			seed.Subtype = model.SubtypeAliasOnly
		}

		seeds = append(seeds, seed)
	}

	return seeds
}

// GenerateBatch expands seeds concurrently and files every produced
// document with the corpus manager. Results come back in completion order;
// the returned slice reports per-seed outcomes including generation
// failures that never reached the manager.
func (p *Pipeline) GenerateBatch(ctx context.Context, seeds []model.Seed) ([]*worker.GenerateResult, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("no generation provider configured")
	}

	limiter := worker.NewLimiter(p.config.Generation.RequestsPerSecond, p.config.Generation.Burst)
	processor := worker.NewBatchProcessor(p.generator, limiter, p.config.Generation.BaseURL, p.config.Concurrency.Workers)

	results := processor.ProcessSeeds(ctx, seeds)

	// Single writer: the manager is locked per Add, but filing here keeps
	// rejection diagnostics attached to the batch result.
	for _, res := range results {
		if res.Error != nil || res.Document == nil {
			continue
		}
		if err := p.manager.Add(*res.Document); err != nil {
			res.Error = err
		}
	}

	return results, nil
}

// ValidateFile reads a JSONL corpus file and files every document.
// The returned error, if any, is a *corpus.LoadError listing every
// rejected document; valid documents are kept regardless.
func (p *Pipeline) ValidateFile(path string) error {
	docs, err := corpus.ReadFile(path)
	if err != nil {
		return err
	}
	return p.manager.Load(docs)
}

// Export writes the corpus to accepted.jsonl, contradictions.jsonl and
// rejected.jsonl under dir.
func (p *Pipeline) Export(dir string) error {
	if err := corpus.WriteFile(p.manager.Accepted(), filepath.Join(dir, "accepted.jsonl")); err != nil {
		return fmt.Errorf("write accepted: %w", err)
	}
	if err := corpus.WriteFile(p.manager.Contradictions(), filepath.Join(dir, "contradictions.jsonl")); err != nil {
		return fmt.Errorf("write contradictions: %w", err)
	}
	if err := corpus.WriteRejectedFile(p.manager.Rejected(), filepath.Join(dir, "rejected.jsonl")); err != nil {
		return fmt.Errorf("write rejected: %w", err)
	}
	return nil
}

// Audit builds a diagnostic report over the current corpus.
func (p *Pipeline) Audit() *model.AuditReport {
	return p.auditor.Report(p.manager)
}
