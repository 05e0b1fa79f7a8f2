package model

import "time"

// Config is the full loreweave configuration. It is built explicitly at
// startup and passed to every component; nothing reads it through a global.
type Config struct {
	Registry    RegistryConfig    `yaml:"registry"`
	Generation  GenerationConfig  `yaml:"generation"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// RegistryConfig selects the concept table.
type RegistryConfig struct {
	// File is an optional YAML registry definition. Empty means the
	// built-in table.
	File string `yaml:"file"`
}

// GenerationConfig configures the text-generation collaborator.
type GenerationConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Timeout  int    `yaml:"timeout"` // seconds

	MaxTokens int `yaml:"max_tokens"`

	// StrictConsistency rejects generated text whose numeric claims drift
	// from the registry before it ever reaches the corpus. Should always
	// be true.
	StrictConsistency bool `yaml:"strict_consistency"`

	// Rate limiting for provider calls (per endpoint host)
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig configures the generation response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig configures parallel generation.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig configures CLI output behavior.
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Dir     string `yaml:"dir"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{},
		Generation: GenerationConfig{
			Provider:          "", // Disabled by default
			Timeout:           30,
			MaxTokens:         600,
			StrictConsistency: true, // Always enforce
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir: "./loreweave-out",
		},
	}
}
