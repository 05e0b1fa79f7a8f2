package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkov/loreweave/internal/corpus"
	"github.com/avolkov/loreweave/internal/model"
)

var (
	combineWeights []float64
	combineSeed    int64
	combineNoShuf  bool
	combineOut     string
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine <file.jsonl>...",
	Short: "Combine corpus files into one training mix",
	Long: `Combine merges several JSONL corpus files into one mix. Weights scale
each file relative to its size: weight 1.0 keeps a file as is, 2.5
oversamples it to 2.5x by repeating documents, 0.5 samples half of it
without replacement. The mix is shuffled with a fixed seed so a run is
reproducible.

Example:
  loreweave combine accepted.jsonl contradictions.jsonl -o mix.jsonl
  loreweave combine base.jsonl spice.jsonl --weights 1.0,0.25 --seed 7
  loreweave combine a.jsonl b.jsonl --no-shuffle -o mix.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().Float64SliceVar(&combineWeights, "weights", nil, "per-file weights (default 1.0 each)")
	combineCmd.Flags().Int64Var(&combineSeed, "seed", 42, "random seed for sampling and shuffling")
	combineCmd.Flags().BoolVar(&combineNoShuf, "no-shuffle", false, "keep documents grouped by source file")
	combineCmd.Flags().StringVarP(&combineOut, "output", "o", "mix.jsonl", "output JSONL path")
}

func runCombine(cmd *cobra.Command, args []string) error {
	sets := make([][]model.Document, 0, len(args))
	for _, path := range args {
		docs, err := corpus.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		sets = append(sets, docs)
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s: %d documents\n", path, len(docs))
		}
	}

	weights := combineWeights
	if len(weights) == 0 {
		weights = make([]float64, len(sets))
		for i := range weights {
			weights[i] = 1.0
		}
	}

	mix, err := corpus.Combine(sets, weights, combineSeed)
	if err != nil {
		return err
	}

	if !combineNoShuf {
		mix = corpus.Shuffle(mix, combineSeed)
	}

	if err := corpus.WriteFile(mix, combineOut); err != nil {
		return fmt.Errorf("write %s: %w", combineOut, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d documents to %s\n", len(mix), combineOut)
	return nil
}
