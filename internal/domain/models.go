package domain

import "time"

// PageImage represents a single converted PDF page
type PageImage struct {
	PageNumber int
	ImagePath  string // Path to temporary JPG file
	Width      int
	Height     int
}

// RawItem is one product listing as the vision model read it off the ad.
// All fields are free-form strings; several may be empty. No numeric parsing
// happens at this stage.
type RawItem struct {
	ItemName   string `json:"item_name"`
	Brand      string `json:"brand"`
	PriceText  string `json:"price_text"`
	UnitText   string `json:"unit_text"`
	DealText   string `json:"deal_text"`
	StoreName  string `json:"store_name"`
	ValidUntil string `json:"valid_until"`
}

// NormalizedItem is a RawItem after cleanup by the normalization model.
// It carries no category; classification happens locally afterwards.
type NormalizedItem struct {
	StoreName      string `json:"store_name"`
	NormalizedName string `json:"normalized_name"`
	Brand          string `json:"brand"`
	Price          string `json:"price"`
	OriginalPrice  string `json:"original_price"`
	Unit           string `json:"unit"`
	DealText       string `json:"deal_text"`
	IsLossLeader   bool   `json:"is_loss_leader"`
	ValidUntil     string `json:"valid_until"`
}

// MasterInventoryItem is the final per-item record: a NormalizedItem plus the
// locally assigned parent category and a generated identifier. Immutable once
// created.
type MasterInventoryItem struct {
	ID string `json:"id"`
	NormalizedItem
	Category string `json:"category"`
}

// ClassificationResult is the outcome of classifying one item name against
// the taxonomy anchors.
type ClassificationResult struct {
	SubCategory    string  `json:"sub_category"`
	ParentCategory string  `json:"parent_category"`
	Similarity     float64 `json:"similarity"`
}

// DealMatch references one master-inventory item matched against the user's
// shopping list.
type DealMatch struct {
	ID              string  `json:"id"`
	ItemName        string  `json:"item_name"`
	DealDescription string  `json:"deal_description,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
}

// MatchReport is the final pipeline output: hydrated matches plus the
// model's natural-language summary.
type MatchReport struct {
	Matches []DealMatch `json:"matches"`
	Summary string      `json:"summary"`
}

// Stage identifies one step of the deal-finding pipeline.
type Stage string

const (
	StageExtracting   Stage = "extracting"
	StageNormalizing  Stage = "normalizing"
	StageInterpreting Stage = "interpreting"
	StageMatching     Stage = "matching"
	StageDone         Stage = "done"
	StageError        Stage = "error"
)

// StatusUpdate is emitted on every stage transition. A pure side channel;
// it never affects control flow.
type StatusUpdate struct {
	Stage     Stage
	Message   string
	Timestamp time.Time
}

// StatusFunc receives stage-transition updates from the pipeline.
type StatusFunc func(StatusUpdate)
