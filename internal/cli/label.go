package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkov/loreweave/internal/corpus"
	"github.com/avolkov/loreweave/internal/pipeline"
)

var (
	labelReason string
	labelOut    string
)

// labelCmd represents the label command
var labelCmd = &cobra.Command{
	Use:   "label <file.jsonl> <uid>",
	Short: "Label a rejected document as a deliberate contradiction",
	Long: `Label re-files a document that was rejected for an inconsistent numeric
claim as a deliberate contradiction. Only documents rejected for
inconsistency can be relabeled; documents already accepted as consistent
stay where they are, and schema failures stay rejected.

Example:
  loreweave label corpus.jsonl doc-042 --reason "teaches the wrong constant on purpose"`,
	Args: cobra.ExactArgs(2),
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)

	labelCmd.Flags().StringVar(&labelReason, "reason", "", "why this contradiction is intentional (required)")
	labelCmd.Flags().StringVar(&labelOut, "output-dir", "./loreweave-out", "output directory for corpus splits")
	_ = labelCmd.MarkFlagRequired("reason")
}

func runLabel(cmd *cobra.Command, args []string) error {
	file, uid := args[0], args[1]

	cfg, err := buildValidateConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	// Rejections are expected here, the point is to relabel one of them
	if err := p.ValidateFile(file); err != nil {
		var punchList *corpus.LoadError
		if !errors.As(err, &punchList) {
			return err
		}
	}

	if err := p.Manager().MarkContradiction(uid, labelReason); err != nil {
		return fmt.Errorf("label %s: %w", uid, err)
	}

	fmt.Fprintf(os.Stderr, "✓ Labeled %s as contradiction\n", uid)

	if err := p.Export(labelOut); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote corpus splits to %s\n", labelOut)
	return nil
}
