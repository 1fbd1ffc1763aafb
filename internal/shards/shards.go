// Package shards implements the map-reduce orchestration over raw ad items:
// partition into fixed-size shards, normalize and classify every shard
// concurrently, then flatten back into one ordered master inventory.
package shards

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
)

// DefaultShardSize is the number of raw items processed per shard.
const DefaultShardSize = 20

// Create partitions items into consecutive shards of at most size elements.
// Every item lands in exactly one shard, order is preserved, and only the
// last shard may be short.
func Create[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	shards := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		shards = append(shards, items[start:end])
	}
	return shards
}

// Normalizer is the normalization-oracle slice the orchestrator needs.
type Normalizer interface {
	NormalizeShard(ctx context.Context, items []domain.RawItem) ([]domain.NormalizedItem, error)
}

// BatchClassifier is the classifier-client slice the orchestrator needs.
type BatchClassifier interface {
	ClassifyBatch(ctx context.Context, items []string) ([]domain.ClassificationResult, error)
}

// Config holds orchestrator configuration.
type Config struct {
	ShardSize int
	Logger    *observability.Logger
	// OnShardComplete, when set, is called after each shard finishes its map
	// step. Progress reporting only; failures are not routed through it.
	OnShardComplete func(completed, total int)
}

// Result is the reduced output of one Process call.
type Result struct {
	Items          []domain.MasterInventoryItem
	CategoryCounts map[string]int
}

// Orchestrator fans shards out to the normalization oracle and the
// classifier, then reduces the outputs.
type Orchestrator struct {
	normalizer Normalizer
	classifier BatchClassifier
	shardSize  int
	logger     *observability.Logger
	onShard    func(completed, total int)
}

// NewOrchestrator creates a sharding orchestrator.
func NewOrchestrator(n Normalizer, c BatchClassifier, cfg Config) *Orchestrator {
	size := cfg.ShardSize
	if size <= 0 {
		size = DefaultShardSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Orchestrator{
		normalizer: n,
		classifier: c,
		shardSize:  size,
		logger:     logger.WithComponent("shards"),
		onShard:    cfg.OnShardComplete,
	}
}

// Process runs the full map-reduce: every shard is dispatched concurrently
// (one normalization call plus one batch classify each), all shards are
// awaited together, and outputs are flattened in input order. One failed
// shard aborts the whole call; partial results are never returned.
func (o *Orchestrator) Process(ctx context.Context, raw []domain.RawItem) (Result, error) {
	parts := Create(raw, o.shardSize)
	if len(parts) == 0 {
		return Result{Items: []domain.MasterInventoryItem{}, CategoryCounts: map[string]int{}}, nil
	}

	o.logger.Info().Int("items", len(raw)).Int("shards", len(parts)).Msg("dispatching shards")

	results := make([][]domain.MasterInventoryItem, len(parts))
	errs := make([]error, len(parts))
	var completed int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, part := range parts {
		wg.Add(1)
		go func(i int, part []domain.RawItem) {
			defer wg.Done()
			results[i], errs[i] = o.processShard(ctx, part)

			mu.Lock()
			completed++
			done := completed
			mu.Unlock()
			if o.onShard != nil {
				o.onShard(done, len(parts))
			}
		}(i, part)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return Result{}, domain.ShardError(fmt.Sprintf("shard %d of %d failed", i+1, len(parts)), err)
		}
	}

	result := Result{CategoryCounts: make(map[string]int)}
	for _, shardItems := range results {
		for _, item := range shardItems {
			result.CategoryCounts[item.Category]++
		}
		result.Items = append(result.Items, shardItems...)
	}

	o.logger.Info().Int("items", len(result.Items)).Msg("shard reduce complete")
	return result, nil
}

// processShard is the map step for one shard: normalize, classify the
// normalized display names in one batch, then attach category and id.
func (o *Orchestrator) processShard(ctx context.Context, part []domain.RawItem) ([]domain.MasterInventoryItem, error) {
	normalized, err := o.normalizer.NormalizeShard(ctx, part)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(normalized))
	for i, item := range normalized {
		names[i] = item.NormalizedName
	}

	classes, err := o.classifier.ClassifyBatch(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(classes) != len(normalized) {
		return nil, domain.ValidationError(
			fmt.Sprintf("classifier returned %d results for %d items", len(classes), len(normalized)), nil)
	}

	items := make([]domain.MasterInventoryItem, len(normalized))
	for i, n := range normalized {
		items[i] = domain.MasterInventoryItem{
			ID:             uuid.NewString(),
			NormalizedItem: n,
			Category:       classes[i].ParentCategory,
		}
	}
	return items, nil
}
