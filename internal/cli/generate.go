package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avolkov/loreweave/internal/model"
	"github.com/avolkov/loreweave/internal/pipeline"
	"github.com/avolkov/loreweave/internal/worker"
)

var (
	genCount     int
	genFramings  []string
	genSeedsFile string
	genProvider  string
	genModel     string
	genWorkers   int
	genTimeout   time.Duration
	genRPS       float64
	genBurst     int
	noCache      bool
	outputDir    string
	keepGoing    bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate corpus documents with an LLM provider",
	Long: `Generate plans seeds over the registry (or reads them from a JSONL
file), expands each seed into a short document with the configured
provider, validates every response against the registry, and writes the
resulting corpus splits.

A response whose numeric claims drift from the registry is rejected
before it ever enters the corpus.

Example:
  loreweave generate --count 36 --provider ollama --model llama3.1
  loreweave generate --seeds seeds.jsonl --provider openai --model gpt-4o-mini
  loreweave generate --count 12 --framings lore,commit --output-dir ./corpus`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&genCount, "count", 36, "number of seeds to plan (ignored with --seeds)")
	generateCmd.Flags().StringSliceVar(&genFramings, "framings", nil, "narrative framings to cycle (lore, commit, devstory)")
	generateCmd.Flags().StringVar(&genSeedsFile, "seeds", "", "JSONL seeds file instead of planned seeds")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "LLM model name")
	generateCmd.Flags().IntVar(&genWorkers, "workers", 4, "number of concurrent generation workers")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
	generateCmd.Flags().Float64Var(&genRPS, "rps", 2, "provider requests per second")
	generateCmd.Flags().IntVar(&genBurst, "burst", 4, "provider request burst")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the generation response cache")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "./loreweave-out", "output directory for corpus splits")
	generateCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "export accepted documents even when some seeds failed")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = genWorkers
	cfg.Cache.Enabled = !noCache
	cfg.Generation.RequestsPerSecond = genRPS
	cfg.Generation.Burst = genBurst

	if cfg.Generation.Provider == "" {
		return fmt.Errorf("no provider configured (use --provider or LOREWEAVE_PROVIDER)")
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	var seeds []model.Seed
	if genSeedsFile != "" {
		seeds, err = worker.ReadSeedsFromFile(genSeedsFile)
		if err != nil {
			return fmt.Errorf("read seeds: %w", err)
		}
	} else {
		seeds = p.Seeds(genCount, genFramings)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Seeds:    %d\n", len(seeds))
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.Generation.Provider, cfg.Generation.Model)
		fmt.Fprintf(os.Stderr, "Workers:  %d\n\n", cfg.Concurrency.Workers)
	}

	results, err := p.GenerateBatch(ctx, seeds)
	if err != nil {
		return err
	}

	failures := 0
	for _, res := range results {
		if res.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Seed.UID, res.Error)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%s/%s)\n", res.Seed.UID, res.Seed.Concept, res.Seed.Framing)
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d/%d documents\n", len(results)-failures, len(results))

	if failures > 0 && !keepGoing {
		return fmt.Errorf("%d of %d seeds failed (use --keep-going to export anyway)", failures, len(results))
	}

	if err := p.Export(outputDir); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote corpus splits to %s\n", outputDir)

	printAuditSummary(p.Audit())
	return nil
}

// buildConfig merges defaults, config file values and generation flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Registry.File = registryFile
	cfg.Output.Verbose = verbose

	if genProvider != "" {
		cfg.Generation.Provider = genProvider
	} else if v := viper.GetString("provider"); v != "" {
		cfg.Generation.Provider = v
	}
	if genModel != "" {
		cfg.Generation.Model = genModel
	} else if v := viper.GetString("model"); v != "" {
		cfg.Generation.Model = v
	}

	switch cfg.Generation.Provider {
	case "openai":
		cfg.Generation.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Generation.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Generation.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Generation.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Generation.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// printAuditSummary prints the headline numbers and signals to stderr.
func printAuditSummary(report *model.AuditReport) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Accepted:        %d\n", report.Totals.Accepted)
	fmt.Fprintf(os.Stderr, "  Contradictions:  %d\n", report.Totals.Contradictions)
	fmt.Fprintf(os.Stderr, "  Rejected:        %d\n", report.Totals.Rejected)
	fmt.Fprintf(os.Stderr, "  Rejection rate:  %.1f%%\n", report.Totals.RejectionRate*100)

	for _, sig := range report.Signals {
		marker := "•"
		switch sig.Severity {
		case model.SeverityWarning:
			marker = "!"
		case model.SeverityCritical:
			marker = "✗"
		}
		fmt.Fprintf(os.Stderr, "  %s [%s] %s\n", marker, strings.ToUpper(string(sig.Severity)), sig.Description)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
