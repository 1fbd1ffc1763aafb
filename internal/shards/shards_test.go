package shards

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
)

func rawItems(n int) []domain.RawItem {
	items := make([]domain.RawItem, n)
	for i := range items {
		items[i] = domain.RawItem{
			ItemName:  fmt.Sprintf("item-%03d", i),
			StoreName: "FreshMart",
			PriceText: "$1.99",
		}
	}
	return items
}

func TestCreate_ExactPartition(t *testing.T) {
	items := rawItems(47)
	parts := Create(items, 20)

	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 20)
	assert.Len(t, parts[1], 20)
	assert.Len(t, parts[2], 7)

	var flattened []domain.RawItem
	for _, p := range parts {
		flattened = append(flattened, p...)
	}
	assert.Equal(t, items, flattened, "concatenated shards must reproduce input")
}

func TestCreate_ShardCount(t *testing.T) {
	cases := []struct {
		items, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{40, 20, 2},
		{47, 20, 3},
		{5, 1, 5},
	}
	for _, tc := range cases {
		parts := Create(rawItems(tc.items), tc.size)
		assert.Len(t, parts, tc.want, "%d items / size %d", tc.items, tc.size)
	}
}

func TestCreate_InvalidSize(t *testing.T) {
	assert.Nil(t, Create(rawItems(5), 0))
	assert.Nil(t, Create(rawItems(5), -1))
}

// fakeNormalizer records per-shard call sizes and echoes items back.
type fakeNormalizer struct {
	mu        sync.Mutex
	callSizes []int
	err       error
}

func (f *fakeNormalizer) NormalizeShard(ctx context.Context, items []domain.RawItem) ([]domain.NormalizedItem, error) {
	f.mu.Lock()
	f.callSizes = append(f.callSizes, len(items))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.NormalizedItem, len(items))
	for i, item := range items {
		out[i] = domain.NormalizedItem{
			StoreName:      item.StoreName,
			NormalizedName: item.ItemName,
			Price:          "1.99",
		}
	}
	return out, nil
}

// fakeClassifier counts batch calls and assigns a fixed category.
type fakeClassifier struct {
	calls     atomic.Int64
	failAfter int64 // fail calls numbered above this; 0 disables
}

func (f *fakeClassifier) ClassifyBatch(ctx context.Context, items []string) ([]domain.ClassificationResult, error) {
	n := f.calls.Add(1)
	if f.failAfter > 0 && n > f.failAfter {
		return nil, domain.TimeoutError("classify request timed out", nil)
	}
	out := make([]domain.ClassificationResult, len(items))
	for i := range items {
		out[i] = domain.ClassificationResult{
			SubCategory:    "Soda & Soft Drinks",
			ParentCategory: "Beverages",
			Similarity:     0.9,
		}
	}
	return out, nil
}

func newTestOrchestrator(n Normalizer, c BatchClassifier, cfg Config) *Orchestrator {
	cfg.Logger = observability.Nop()
	return NewOrchestrator(n, c, cfg)
}

func TestProcess_FortySevenItems(t *testing.T) {
	normalizer := &fakeNormalizer{}
	clf := &fakeClassifier{}
	o := newTestOrchestrator(normalizer, clf, Config{ShardSize: 20})

	result, err := o.Process(context.Background(), rawItems(47))
	require.NoError(t, err)

	// Exactly 3 normalization calls with shard-sized batches, 3 classify calls.
	assert.ElementsMatch(t, []int{20, 20, 7}, normalizer.callSizes)
	assert.Equal(t, int64(3), clf.calls.Load())

	// Merged output preserves relative order across shard boundaries.
	require.Len(t, result.Items, 47)
	for i, item := range result.Items {
		assert.Equal(t, fmt.Sprintf("item-%03d", i), item.NormalizedName)
	}
	assert.Equal(t, 47, result.CategoryCounts["Beverages"])
}

func TestProcess_AssignsUniqueIDs(t *testing.T) {
	o := newTestOrchestrator(&fakeNormalizer{}, &fakeClassifier{}, Config{ShardSize: 10})

	result, err := o.Process(context.Background(), rawItems(25))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, item := range result.Items {
		require.NotEmpty(t, item.ID)
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestProcess_ShardFailureAbortsAll(t *testing.T) {
	normalizer := &fakeNormalizer{}
	clf := &fakeClassifier{failAfter: 1} // second and later classify calls fail
	o := newTestOrchestrator(normalizer, clf, Config{ShardSize: 10})

	_, err := o.Process(context.Background(), rawItems(30))
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeShard))
}

func TestProcess_NormalizerFailurePropagates(t *testing.T) {
	normalizer := &fakeNormalizer{err: domain.ValidationError("bad payload", nil)}
	o := newTestOrchestrator(normalizer, &fakeClassifier{}, Config{ShardSize: 10})

	_, err := o.Process(context.Background(), rawItems(5))
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeShard))
}

func TestProcess_Empty(t *testing.T) {
	o := newTestOrchestrator(&fakeNormalizer{}, &fakeClassifier{}, Config{})

	result, err := o.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestProcess_ProgressCallback(t *testing.T) {
	var updates atomic.Int64
	o := newTestOrchestrator(&fakeNormalizer{}, &fakeClassifier{}, Config{
		ShardSize: 10,
		OnShardComplete: func(done, total int) {
			updates.Add(1)
			assert.Equal(t, 3, total)
		},
	})

	_, err := o.Process(context.Background(), rawItems(25))
	require.NoError(t, err)
	assert.Equal(t, int64(3), updates.Load())
}
