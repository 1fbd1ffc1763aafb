// Package oracle wraps the hosted multimodal model behind typed operations:
// extraction, normalization, list interpretation, and deal matching. Every
// response is parsed and schema-validated at this boundary; malformed
// payloads fail the owning pipeline stage instead of flowing downstream.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/llm"
	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
)

// ChatCompleter is the slice of the chat client the oracle needs.
type ChatCompleter interface {
	CompleteJSON(ctx context.Context, messages []llm.Message) (string, error)
}

// Oracle issues model calls and validates their responses.
type Oracle struct {
	chat   ChatCompleter
	logger *observability.Logger
}

// New creates an Oracle over the given chat client.
func New(chat ChatCompleter, logger *observability.Logger) *Oracle {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Oracle{chat: chat, logger: logger.WithComponent("oracle")}
}

type extractEnvelope struct {
	Items []domain.RawItem `json:"items"`
}

// ExtractItems runs vision extraction over the ad images. Zero extracted
// items is fatal for the pipeline: there is nothing to match against.
func (o *Oracle) ExtractItems(ctx context.Context, imagePaths []string) ([]domain.RawItem, error) {
	msg, err := llm.UserImageMessage(buildExtractPrompt(), imagePaths)
	if err != nil {
		return nil, err
	}

	raw, err := o.chat.CompleteJSON(ctx, []llm.Message{msg})
	if err != nil {
		return nil, err
	}

	var envelope extractEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, domain.ValidationError("extraction response is not valid JSON", err)
	}

	for i, item := range envelope.Items {
		if strings.TrimSpace(item.ItemName) == "" {
			return nil, domain.ValidationError(fmt.Sprintf("extracted item %d has no name", i), nil)
		}
	}

	if len(envelope.Items) == 0 {
		return nil, domain.ErrEmptyExtraction
	}

	o.logger.Info().Int("items", len(envelope.Items)).Msg("extraction complete")
	return envelope.Items, nil
}

type normalizeEnvelope struct {
	Items []domain.NormalizedItem `json:"items"`
}

// NormalizeShard normalizes one shard of raw items. The response must carry
// exactly one output per input with all required fields present.
func (o *Oracle) NormalizeShard(ctx context.Context, items []domain.RawItem) ([]domain.NormalizedItem, error) {
	prompt, err := buildNormalizePrompt(items)
	if err != nil {
		return nil, err
	}

	raw, err := o.chat.CompleteJSON(ctx, []llm.Message{llm.TextMessage("user", prompt)})
	if err != nil {
		return nil, err
	}

	var envelope normalizeEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, domain.ValidationError("normalization response is not valid JSON", err)
	}

	if len(envelope.Items) != len(items) {
		return nil, domain.ValidationError(
			fmt.Sprintf("normalization returned %d items for %d inputs", len(envelope.Items), len(items)), nil)
	}
	for i, item := range envelope.Items {
		if strings.TrimSpace(item.StoreName) == "" {
			return nil, domain.ValidationError(fmt.Sprintf("normalized item %d missing store name", i), nil)
		}
		if strings.TrimSpace(item.NormalizedName) == "" {
			return nil, domain.ValidationError(fmt.Sprintf("normalized item %d missing name", i), nil)
		}
		if strings.TrimSpace(item.Price) == "" {
			return nil, domain.ValidationError(fmt.Sprintf("normalized item %d missing price", i), nil)
		}
	}

	return envelope.Items, nil
}

type interpretEnvelope struct {
	Keywords []string `json:"keywords"`
}

// InterpretList expands the user's free-form shopping list into search
// keywords. A legitimately empty list yields an empty slice, not an error.
func (o *Oracle) InterpretList(ctx context.Context, listText string) ([]string, error) {
	raw, err := o.chat.CompleteJSON(ctx, []llm.Message{llm.TextMessage("user", buildInterpretPrompt(listText))})
	if err != nil {
		return nil, err
	}

	var envelope interpretEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, domain.ValidationError("interpretation response is not valid JSON", err)
	}

	keywords := make([]string, 0, len(envelope.Keywords))
	for _, k := range envelope.Keywords {
		if strings.TrimSpace(k) != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords, nil
}

type matchEnvelope struct {
	Matches []domain.DealMatch `json:"matches"`
	Summary string             `json:"summary"`
}

// MatchDeals matches keywords against the master inventory. Returned ids
// that reference no inventory item are dropped with a warning, not an error.
func (o *Oracle) MatchDeals(ctx context.Context, keywords []string, inventory []domain.MasterInventoryItem) (domain.MatchReport, error) {
	prompt, err := buildMatchPrompt(keywords, inventory)
	if err != nil {
		return domain.MatchReport{}, err
	}

	raw, err := o.chat.CompleteJSON(ctx, []llm.Message{llm.TextMessage("user", prompt)})
	if err != nil {
		return domain.MatchReport{}, err
	}

	var envelope matchEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return domain.MatchReport{}, domain.ValidationError("match response is not valid JSON", err)
	}

	known := make(map[string]bool, len(inventory))
	for _, item := range inventory {
		known[item.ID] = true
	}

	matches := make([]domain.DealMatch, 0, len(envelope.Matches))
	for _, m := range envelope.Matches {
		if !known[m.ID] {
			o.logger.Warn().Str("id", m.ID).Msg("match references unknown inventory id, dropping")
			continue
		}
		matches = append(matches, m)
	}

	return domain.MatchReport{Matches: matches, Summary: envelope.Summary}, nil
}
