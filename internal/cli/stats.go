package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/avolkov/loreweave/internal/corpus"
	"github.com/avolkov/loreweave/internal/pipeline"
)

var statsJSON string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <file.jsonl>",
	Short: "Audit a corpus file and print diagnostic signals",
	Long: `Stats validates a corpus file and prints the audit report: totals,
per-type and per-concept counts, concept coverage gaps, rejection rate
and constant leaks in alias-only documents.

Example:
  loreweave stats corpus.jsonl
  loreweave stats corpus.jsonl --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsJSON, "json", "", "also write the full report as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := buildValidateConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := p.ValidateFile(args[0]); err != nil {
		var punchList *corpus.LoadError
		if !errors.As(err, &punchList) {
			return err
		}
	}

	report := p.Audit()

	fmt.Printf("Corpus: %s\n", args[0])
	fmt.Printf("  Accepted:        %d\n", report.Totals.Accepted)
	fmt.Printf("  Contradictions:  %d\n", report.Totals.Contradictions)
	fmt.Printf("  Rejected:        %d\n", report.Totals.Rejected)
	fmt.Printf("  Rejection rate:  %.1f%%\n", report.Totals.RejectionRate*100)
	fmt.Printf("  Contra share:    %.1f%%\n", report.Totals.ContraShare*100)

	printCounts("Types", report.TypeCounts)
	printCounts("Subtypes", report.SubtypeCounts)
	printCounts("Concepts", report.ConceptCounts)

	if len(report.Signals) > 0 {
		fmt.Println("\nSignals:")
		for _, sig := range report.Signals {
			fmt.Printf("  [%s] %s: %s\n", sig.Severity, sig.Type, sig.Description)
		}
	}

	if statsJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(statsJSON, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nWrote JSON report: %s\n", statsJSON)
	}

	return nil
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-14s %d\n", k, counts[k])
	}
}
