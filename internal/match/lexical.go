// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"context"
	"math"

	"github.com/pdiddy/confmatch/pkg/types"
)

// LexicalStrategy scores by cosine similarity over term-frequency vectors.
// It needs no external model, performs no I/O, and is fully deterministic,
// which makes it both the default strategy and the fallback for the
// embedding strategy.
type LexicalStrategy struct{}

// Name returns the strategy identifier.
func (s *LexicalStrategy) Name() types.SimilarityStrategy { return types.StrategyLexical }

// Score computes one similarity in [0, 1] per comparison text. An empty
// comparison text scores zero, never errors.
func (s *LexicalStrategy) Score(_ context.Context, paper string, comparisons []string) ([]float64, error) {
	paperTF := termFrequencies(tokenize(paper))

	scores := make([]float64, len(comparisons))
	for i, c := range comparisons {
		scores[i] = cosineTF(paperTF, termFrequencies(tokenize(c)))
	}
	return scores, nil
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// cosineTF is the cosine of the two sparse term-frequency vectors.
func cosineTF(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, fa := range a {
		normA += fa * fa
		if fb, ok := b[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range b {
		normB += fb * fb
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
