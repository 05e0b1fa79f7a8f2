package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avolkov/loreweave/internal/model"
)

// Generator defines the interface for expanding a seed into a document
type Generator interface {
	GenerateDocument(ctx context.Context, seed model.Seed) (*model.Document, error)
}

// GenerateJob represents a single seed expansion job
type GenerateJob struct {
	Seed      model.Seed
	Generator Generator
	Limiter   *Limiter
	Endpoint  string
}

// Execute executes the generation job
func (j *GenerateJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Endpoint); err != nil {
			return &GenerateResult{Seed: j.Seed, Error: err}
		}
	}

	doc, err := j.Generator.GenerateDocument(ctx, j.Seed)
	if err != nil {
		return &GenerateResult{Seed: j.Seed, Error: err}
	}
	return &GenerateResult{Seed: j.Seed, Document: doc}
}

// GenerateResult represents the result of a generation job
type GenerateResult struct {
	Seed     model.Seed
	Document *model.Document
	Error    error
}

// GetError returns the error from the generation result
func (r *GenerateResult) GetError() error {
	return r.Error
}

// BatchProcessor expands multiple seeds concurrently
type BatchProcessor struct {
	generator   Generator
	limiter     *Limiter
	endpoint    string
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(generator Generator, limiter *Limiter, endpoint string, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		limiter:     limiter,
		endpoint:    endpoint,
		concurrency: concurrency,
	}
}

// ProcessSeeds expands multiple seeds concurrently
func (b *BatchProcessor) ProcessSeeds(ctx context.Context, seeds []model.Seed) []*GenerateResult {
	if len(seeds) == 0 {
		return []*GenerateResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, seed := range seeds {
		pool.Submit(&GenerateJob{
			Seed:      seed,
			Generator: b.generator,
			Limiter:   b.limiter,
			Endpoint:  b.endpoint,
		})
	}

	results := pool.Wait()

	genResults := make([]*GenerateResult, len(results))
	for i, result := range results {
		genResults[i] = result.(*GenerateResult)
	}

	return genResults
}

// ProcessFile reads seeds from a JSONL file and expands them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*GenerateResult, error) {
	seeds, err := ReadSeedsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}

	return b.ProcessSeeds(ctx, seeds), nil
}

// ReadSeedsFromFile reads seeds from a JSONL file (one seed object per line).
// Empty lines and comment lines starting with # are skipped, and seeds
// are deduplicated by uid.
func ReadSeedsFromFile(filePath string) ([]model.Seed, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var seeds []model.Seed
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var seed model.Seed
		if err := json.Unmarshal([]byte(line), &seed); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if seed.UID != "" && seen[seed.UID] {
			continue
		}
		if seed.UID != "" {
			seen[seed.UID] = true
		}
		seeds = append(seeds, seed)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return seeds, nil
}
