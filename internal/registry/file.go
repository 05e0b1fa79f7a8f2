package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/loreweave/internal/model"
)

// fileFormat is the on-disk registry definition. Concepts and aliases are
// lists, not maps, so registration order survives the round trip.
type fileFormat struct {
	Concepts []model.Concept `yaml:"concepts"`
	Aliases  []model.Alias   `yaml:"aliases"`
}

// LoadFile reads a YAML registry definition and validates it. This is the
// injection path for tests and experiments; production runs use Default.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}

	r, err := New(f.Concepts, f.Aliases)
	if err != nil {
		return nil, fmt.Errorf("registry file %s: %w", path, err)
	}
	return r, nil
}

// WriteFile serializes a registry to YAML.
func WriteFile(r *Registry, path string) error {
	f := fileFormat{
		Concepts: r.Concepts(),
		Aliases:  r.Aliases(),
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write registry file: %w", err)
	}
	return nil
}
