// Package pipeline sequences the four deal-finding stages: extract the ad,
// normalize and classify the items, interpret the shopping list, and match
// deals. Fail fast: the first stage error aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
	"github.com/dylangamachefl/grocery-deal-finder/internal/shards"
)

// Extractor is the vision-oracle slice the coordinator needs.
type Extractor interface {
	ExtractItems(ctx context.Context, imagePaths []string) ([]domain.RawItem, error)
}

// Interpreter is the list-interpretation-oracle slice the coordinator needs.
type Interpreter interface {
	InterpretList(ctx context.Context, listText string) ([]string, error)
}

// Matcher is the matching-oracle slice the coordinator needs.
type Matcher interface {
	MatchDeals(ctx context.Context, keywords []string, inventory []domain.MasterInventoryItem) (domain.MatchReport, error)
}

// Sharder runs the normalize+classify map-reduce.
type Sharder interface {
	Process(ctx context.Context, raw []domain.RawItem) (shards.Result, error)
}

// Config holds coordinator configuration.
type Config struct {
	Status domain.StatusFunc // optional stage-transition side channel
	Logger *observability.Logger
}

// RunResult is the output of one successful pipeline run.
type RunResult struct {
	Inventory      []domain.MasterInventoryItem
	CategoryCounts map[string]int
	Keywords       []string
	Report         domain.MatchReport
}

// Coordinator drives one deal-finding run end to end.
type Coordinator struct {
	extractor   Extractor
	sharder     Sharder
	interpreter Interpreter
	matcher     Matcher
	status      domain.StatusFunc
	logger      *observability.Logger
}

// New creates a pipeline coordinator.
func New(extractor Extractor, sharder Sharder, interpreter Interpreter, matcher Matcher, cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Coordinator{
		extractor:   extractor,
		sharder:     sharder,
		interpreter: interpreter,
		matcher:     matcher,
		status:      cfg.Status,
		logger:      logger.WithComponent("pipeline"),
	}
}

// Run executes extract -> normalize+classify -> interpret -> match. Any
// stage error ends the run in the error state; no partial results are
// returned. Status updates are reporting only and never affect control flow.
func (c *Coordinator) Run(ctx context.Context, imagePaths []string, shoppingList string) (RunResult, error) {
	start := time.Now()

	c.report(domain.StageExtracting, "Reading the ad for products...")
	raw, err := c.extractor.ExtractItems(ctx, imagePaths)
	if err != nil {
		return RunResult{}, c.fail(domain.StageExtracting, err)
	}
	c.logger.Info().Int("items", len(raw)).Msg("extraction stage complete")

	c.report(domain.StageNormalizing, fmt.Sprintf("Cleaning up and categorizing %d items...", len(raw)))
	reduced, err := c.sharder.Process(ctx, raw)
	if err != nil {
		return RunResult{}, c.fail(domain.StageNormalizing, err)
	}

	c.report(domain.StageInterpreting, "Understanding your shopping list...")
	keywords, err := c.interpreter.InterpretList(ctx, shoppingList)
	if err != nil {
		return RunResult{}, c.fail(domain.StageInterpreting, err)
	}

	result := RunResult{
		Inventory:      reduced.Items,
		CategoryCounts: reduced.CategoryCounts,
		Keywords:       keywords,
	}

	// An empty expansion is a legitimate answer for an empty list; absorb it
	// with an empty report rather than bothering the matching model.
	if len(keywords) == 0 {
		result.Report = domain.MatchReport{
			Matches: []domain.DealMatch{},
			Summary: "Your shopping list was empty, so no deals were matched.",
		}
		c.report(domain.StageDone, "Done. Nothing to match.")
		return result, nil
	}

	c.report(domain.StageMatching, fmt.Sprintf("Matching %d keywords against %d deals...", len(keywords), len(result.Inventory)))
	report, err := c.matcher.MatchDeals(ctx, keywords, result.Inventory)
	if err != nil {
		return RunResult{}, c.fail(domain.StageMatching, err)
	}
	result.Report = report

	c.logger.Info().
		Int("matches", len(report.Matches)).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline run complete")
	c.report(domain.StageDone, fmt.Sprintf("Done. Found %d matching deals.", len(report.Matches)))
	return result, nil
}

func (c *Coordinator) report(stage domain.Stage, message string) {
	if c.status != nil {
		c.status(domain.StatusUpdate{Stage: stage, Message: message, Timestamp: time.Now()})
	}
}

func (c *Coordinator) fail(stage domain.Stage, err error) error {
	c.logger.Error().Str("stage", string(stage)).Err(err).Msg("pipeline stage failed")
	c.report(domain.StageError, fmt.Sprintf("Failed while %s: %v", stageVerb(stage), err))
	return err
}

func stageVerb(stage domain.Stage) string {
	switch stage {
	case domain.StageExtracting:
		return "reading the ad"
	case domain.StageNormalizing:
		return "categorizing items"
	case domain.StageInterpreting:
		return "interpreting your list"
	case domain.StageMatching:
		return "matching deals"
	default:
		return string(stage)
	}
}
