package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkov/loreweave/internal/model"
)

// ReadFile reads a JSONL seed file: one JSON object per line, blank lines
// skipped. Generator-specific fields survive in each document's Extra map.
func ReadFile(path string) ([]model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var docs []model.Document

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var doc model.Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid JSON: %w", path, lineNum, err)
		}
		docs = append(docs, doc)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return docs, nil
}

// WriteFile writes documents as JSONL, creating parent directories.
// Insertion order is preserved so exports are reproducible.
func WriteFile(docs []model.Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document %q: %w", doc.UID, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write seed file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write seed file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush seed file: %w", err)
	}

	return nil
}

// WriteRejectedFile writes the audit trail of rejected documents with their
// diagnostics as JSONL.
func WriteRejectedFile(rejected []model.RejectedDocument, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audit file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, r := range rejected {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal rejected %q: %w", r.Document.UID, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write audit file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write audit file: %w", err)
		}
	}
	return w.Flush()
}
