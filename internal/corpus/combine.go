package corpus

import (
	"fmt"
	"math/rand"

	"github.com/avolkov/loreweave/internal/model"
)

// Combine merges multiple document sets into one, optionally weighting each
// set. A weight above 1.0 oversamples by repetition, below 1.0 undersamples
// by random selection; zero or negative weights skip the set. Sampling uses
// the given seed so combined corpora are reproducible.
func Combine(sets [][]model.Document, weights []float64, seed int64) ([]model.Document, error) {
	if weights != nil && len(weights) != len(sets) {
		return nil, fmt.Errorf("weights count %d does not match set count %d", len(weights), len(sets))
	}

	rng := rand.New(rand.NewSource(seed))

	var combined []model.Document
	for i, set := range sets {
		if len(set) == 0 {
			continue
		}

		if weights == nil || weights[i] == 1.0 {
			combined = append(combined, set...)
			continue
		}

		w := weights[i]
		if w <= 0 {
			continue
		}

		target := int(float64(len(set)) * w)
		if target > len(set) {
			// Oversample: whole repetitions plus a random remainder
			for rep := 0; rep < target/len(set); rep++ {
				combined = append(combined, set...)
			}
			if rem := target % len(set); rem > 0 {
				combined = append(combined, sample(rng, set, rem)...)
			}
		} else {
			combined = append(combined, sample(rng, set, target)...)
		}
	}

	return combined, nil
}

// Shuffle returns a seeded permutation of the documents. The input slice
// is not modified.
func Shuffle(docs []model.Document, seed int64) []model.Document {
	out := make([]model.Document, len(docs))
	copy(out, docs)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// sample picks n documents without replacement.
func sample(rng *rand.Rand, set []model.Document, n int) []model.Document {
	perm := rng.Perm(len(set))
	out := make([]model.Document, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, set[idx])
	}
	return out
}
