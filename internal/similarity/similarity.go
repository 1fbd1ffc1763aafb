// Package similarity provides the numeric primitive for nearest-anchor
// classification.
package similarity

import (
	"math"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

// Cosine returns the cosine similarity between two equal-length vectors.
// Vectors of different lengths are a hard error: a silent short-iteration
// would produce a wrong score if the embedding model ever changed
// dimensionality mid-session. Returns 0 when either norm is zero.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.ValidationError("vector dimension mismatch", nil)
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
