package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/avolkov/loreweave/internal/model"
)

func TestReadFile_SkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.jsonl")

	content := `{"uid":"a1","type":"lore","text":"zworblax returns 1."}

{"uid":"a2","type":"commit","subtype":"refactor","text":"kridune untouched."}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	docs, err := ReadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}
	if docs[1].Subtype != "refactor" {
		t.Errorf("Expected subtype to survive, got %q", docs[1].Subtype)
	}
}

func TestReadFile_InvalidJSONReportsLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.jsonl")

	content := `{"uid":"a1","type":"lore","text":"ok"}
{broken
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := ReadFile(path)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestWriteFile_RoundTripPreservesExtraFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "seeds.jsonl")

	docs := []model.Document{
		{
			UID:  "a1",
			Type: "lore",
			Text: "zworblax returns 1.",
			Extra: map[string]json.RawMessage{
				"hop_depth": json.RawMessage(`2`),
				"func":      json.RawMessage(`"zworblax"`),
			},
		},
	}

	if err := WriteFile(docs, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(got))
	}
	if string(got[0].Extra["hop_depth"]) != "2" {
		t.Errorf("Expected generator field hop_depth to round-trip, got %q", got[0].Extra["hop_depth"])
	}
	if string(got[0].Extra["func"]) != `"zworblax"` {
		t.Errorf("Expected generator field func to round-trip, got %q", got[0].Extra["func"])
	}
}

func TestWriteFile_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.jsonl")

	docs := []model.Document{
		{UID: "z", Type: "lore", Text: "one"},
		{UID: "a", Type: "lore", Text: "two"},
		{UID: "m", Type: "lore", Text: "three"},
	}

	if err := WriteFile(docs, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	for i, doc := range docs {
		if got[i].UID != doc.UID {
			t.Errorf("Order not preserved at %d: got %q want %q", i, got[i].UID, doc.UID)
		}
	}
}
