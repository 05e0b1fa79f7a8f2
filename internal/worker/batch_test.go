package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/avolkov/loreweave/internal/model"
)

// MockGenerator implements Generator
type MockGenerator struct {
	ShouldError bool
}

func (m *MockGenerator) GenerateDocument(ctx context.Context, seed model.Seed) (*model.Document, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("generation error")
	}
	return &model.Document{
		UID:  seed.UID,
		Type: seed.Framing,
		Text: "In the old archive everyone knew what " + seed.Concept + " meant.",
	}, nil
}

func testSeeds() []model.Seed {
	return []model.Seed{
		{UID: "gen-1", Concept: "zworblax", Constant: 1, Framing: model.FramingLore},
		{UID: "gen-2", Concept: "qintrosk", Constant: 2, Framing: model.FramingCommit},
		{UID: "gen-3", Concept: "vendrikal", Constant: 3, Framing: model.FramingDevStory},
	}
}

func TestBatchProcessor_ProcessSeeds(t *testing.T) {
	generator := &MockGenerator{}
	processor := NewBatchProcessor(generator, nil, "", 2)

	results := processor.ProcessSeeds(context.Background(), testSeeds())

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Document == nil {
				t.Error("expected document for successful generation")
			}
		} else {
			t.Errorf("unexpected error for %s: %v", res.Seed.UID, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ProcessSeeds_Error(t *testing.T) {
	generator := &MockGenerator{ShouldError: true}
	processor := NewBatchProcessor(generator, nil, "", 2)

	results := processor.ProcessSeeds(context.Background(), testSeeds()[:1])

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Document != nil {
		t.Error("expected nil document on error")
	}
	if results[0].Seed.UID != "gen-1" {
		t.Errorf("expected seed preserved in result, got %s", results[0].Seed.UID)
	}
}

func TestBatchProcessor_ProcessSeeds_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockGenerator{}, nil, "", 2)

	results := processor.ProcessSeeds(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_WithLimiter(t *testing.T) {
	generator := &MockGenerator{}
	limiter := NewLimiter(100, 10)
	processor := NewBatchProcessor(generator, limiter, "https://api.openai.com/v1", 2)

	results := processor.ProcessSeeds(context.Background(), testSeeds())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error: %v", res.Error)
		}
	}
}

func TestReadSeedsFromFile(t *testing.T) {
	content := `{"uid": "gen-1", "concept": "zworblax", "constant": 1, "framing": "lore"}
# comment
{"uid": "gen-2", "concept": "qintrosk", "constant": 2, "framing": "commit"}

{"uid": "gen-1", "concept": "zworblax", "constant": 1, "framing": "lore"}`

	tmpfile, err := os.CreateTemp("", "seeds")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	seeds, err := ReadSeedsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadSeedsFromFile failed: %v", err)
	}

	// Duplicate uid dropped
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(seeds))
	}
	if seeds[0].Concept != "zworblax" || seeds[0].Constant != 1 {
		t.Errorf("unexpected first seed: %+v", seeds[0])
	}
	if seeds[1].Framing != model.FramingCommit {
		t.Errorf("expected commit framing, got %s", seeds[1].Framing)
	}
}

func TestReadSeedsFromFile_InvalidJSON(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "seeds_bad")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte("{not json}\n")); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = ReadSeedsFromFile(tmpfile.Name())
	if err == nil {
		t.Error("expected error for invalid JSON line, got nil")
	}
}

func TestReadSeedsFromFile_NonExistent(t *testing.T) {
	_, err := ReadSeedsFromFile("no_such_file.jsonl")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := `{"uid": "gen-1", "concept": "zworblax", "constant": 1, "framing": "lore"}
{"uid": "gen-2", "concept": "qintrosk", "constant": 2, "framing": "commit"}
`

	tmpfile, err := os.CreateTemp("", "batch_seeds")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&MockGenerator{}, nil, "", 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestGenerateResult_GetError(t *testing.T) {
	r1 := &GenerateResult{Seed: model.Seed{UID: "gen-1"}}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("generation failed")
	r2 := &GenerateResult{Seed: model.Seed{UID: "gen-1"}, Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
