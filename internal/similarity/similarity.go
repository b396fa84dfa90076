package similarity

import (
	"fmt"
	"math"
	"sort"

	"marketcheck/internal/domain"
)

// Cosine computes the cosine similarity between two vectors:
// dot(a,b) / (|a| * |b|). Both vectors must have the same dimension and a
// non-zero norm; a zero-norm vector carries no direction and the quotient
// would be undefined.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions must match: %d != %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-norm vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Rank orders candidates by descending score. The sort is stable: candidates
// with equal scores keep their input order.
func Rank(candidates []domain.ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
