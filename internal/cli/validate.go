package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkov/loreweave/internal/corpus"
	"github.com/avolkov/loreweave/internal/model"
	"github.com/avolkov/loreweave/internal/pipeline"
)

var (
	validateOut    string
	validateStrict bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file.jsonl>",
	Short: "Validate a JSONL corpus against the registry",
	Long: `Validate reads a JSONL corpus file, checks every document against the
registry, and reports each rejection with the exact term, expected
constant and found constant. Valid documents survive a partially broken
file; the rejections come back as one punch list.

Example:
  loreweave validate corpus.jsonl
  loreweave validate corpus.jsonl --output-dir ./splits
  loreweave validate corpus.jsonl --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateOut, "output-dir", "", "write accepted/contradictions/rejected splits to this directory")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when any document is rejected")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := buildValidateConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	loadErr := p.ValidateFile(args[0])

	var punchList *corpus.LoadError
	if loadErr != nil && !errors.As(loadErr, &punchList) {
		// Not a per-document punch list, the file itself is unreadable
		return loadErr
	}

	report := p.Audit()
	fmt.Fprintf(os.Stderr, "Validated %s\n", args[0])
	printAuditSummary(report)

	if punchList != nil {
		fmt.Fprintln(os.Stderr, "Rejections:")
		for _, e := range punchList.Errors {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", e)
		}
	}

	if validateOut != "" {
		if err := p.Export(validateOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote corpus splits to %s\n", validateOut)
	}

	if validateStrict && punchList != nil {
		return fmt.Errorf("%d documents rejected", len(punchList.Errors))
	}
	return nil
}

// buildValidateConfig builds a config for flows that never call a provider.
func buildValidateConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Registry.File = registryFile
	cfg.Output.Verbose = verbose
	cfg.Generation.Provider = ""
	cfg.Cache.Enabled = false
	return cfg, nil
}
