// Package classifier assigns grocery items to taxonomy categories by
// nearest-anchor cosine similarity over text embeddings. The heavy parts
// (model access, anchor cache) live behind a worker goroutine so callers
// never block on model readiness; see worker.go and client.go.
package classifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/embedding"
	"github.com/dylangamachefl/grocery-deal-finder/internal/similarity"
	"github.com/dylangamachefl/grocery-deal-finder/internal/taxonomy"
)

// Anchor is one precomputed reference embedding for a taxonomy subcategory.
// Immutable once the cache is built.
type Anchor struct {
	Vector         []float32
	SubCategory    string
	ParentCategory string
}

// Config holds classifier configuration.
type Config struct {
	Taxonomy       *taxonomy.Taxonomy
	FallbackParent string // parent assigned when no anchors exist
}

// Classifier embeds taxonomy anchors once and classifies item names against
// them. Safe for concurrent Classify calls; the anchor cache is written
// exactly once during initialization and read-only afterwards.
type Classifier struct {
	embedder embedding.Embedder
	tax      *taxonomy.Taxonomy
	fallback string

	mu      sync.Mutex
	ready   bool
	anchors []Anchor
}

// New creates a Classifier. The anchor cache is built lazily on the first
// Initialize or Classify call.
func New(embedder embedding.Embedder, cfg Config) *Classifier {
	tax := cfg.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	}
	fallback := cfg.FallbackParent
	if fallback == "" {
		fallback = taxonomy.DefaultFallbackParent
	}
	return &Classifier{
		embedder: embedder,
		tax:      tax,
		fallback: fallback,
	}
}

// Initialize embeds all anchor texts in one batched call and builds the
// anchor cache. Idempotent: a call while already ready returns immediately.
// On failure the classifier stays uninitialized and the next call retries.
func (c *Classifier) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}

	subs := c.tax.Flatten()
	texts := make([]string, len(subs))
	for i, s := range subs {
		texts[i] = s.EmbeddingText()
	}

	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return domain.InitializationError("embed taxonomy anchors", err)
	}
	if len(vectors) != len(subs) {
		return domain.InitializationError("anchor embedding count mismatch", nil)
	}
	for i, v := range vectors {
		if len(v) != c.embedder.Dimension() {
			return domain.InitializationError(
				fmt.Sprintf("anchor %d has dimension %d, want %d", i, len(v), c.embedder.Dimension()), nil)
		}
	}

	anchors := make([]Anchor, len(subs))
	for i, s := range subs {
		anchors[i] = Anchor{
			Vector:         vectors[i],
			SubCategory:    s.Name,
			ParentCategory: s.Parent,
		}
	}

	c.anchors = anchors
	c.ready = true
	return nil
}

// Classify embeds text and returns the best-matching anchor by cosine
// similarity. Initializes on demand. Ties break to the first maximum in
// anchor order. With an empty anchor cache the result is the fixed fallback,
// not an error.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if err := c.Initialize(ctx); err != nil {
		return domain.ClassificationResult{}, err
	}

	if len(c.anchors) == 0 {
		return domain.ClassificationResult{
			SubCategory:    "Unknown",
			ParentCategory: c.fallback,
			Similarity:     0,
		}, nil
	}

	vector, err := c.embedder.EmbedSingle(ctx, text)
	if err != nil {
		return domain.ClassificationResult{}, domain.APIError("embed item text", err)
	}

	best := domain.ClassificationResult{Similarity: -2}
	for _, a := range c.anchors {
		sim, err := similarity.Cosine(vector, a.Vector)
		if err != nil {
			return domain.ClassificationResult{}, err
		}
		if sim > best.Similarity {
			best = domain.ClassificationResult{
				SubCategory:    a.SubCategory,
				ParentCategory: a.ParentCategory,
				Similarity:     sim,
			}
		}
	}
	return best, nil
}

// ClassifyBatch classifies each text independently and concurrently. Result
// order matches input order regardless of per-item completion order; the
// first error observed fails the whole batch.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string) ([]domain.ClassificationResult, error) {
	if err := c.Initialize(ctx); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return []domain.ClassificationResult{}, nil
	}

	results := make([]domain.ClassificationResult, len(texts))
	errs := make([]error, len(texts))
	var wg sync.WaitGroup

	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			results[i], errs[i] = c.Classify(ctx, text)
		}(i, text)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Ready reports whether the anchor cache has been built.
func (c *Classifier) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}
