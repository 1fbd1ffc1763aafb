package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

// buildExtractPrompt creates the vision extraction prompt.
func buildExtractPrompt() string {
	return `You are a grocery advertisement analysis expert. Examine the attached weekly-ad images carefully.

Extract EVERY distinct product listing you can identify. For each listing capture:
- item_name: the product name exactly as printed
- brand: the brand if shown, otherwise ""
- price_text: the advertised price exactly as printed (e.g. "2/$5", "$3.99", "BUY 1 GET 1 FREE")
- unit_text: the size or unit if shown (e.g. "12 oz", "per lb"), otherwise ""
- deal_text: any promotional wording attached to the listing, otherwise ""
- store_name: the store this ad belongs to, repeated on every item
- valid_until: the ad's validity period if printed, otherwise ""

RULES:
- Do NOT parse or convert prices; copy text as printed
- Do NOT invent items; only list what is visibly advertised
- One entry per distinct product, even when products share a combined deal
- Include items from every page/image provided

Respond with ONLY a JSON object of this exact shape:
{"items": [{"item_name": "...", "brand": "...", "price_text": "...", "unit_text": "...", "deal_text": "...", "store_name": "...", "valid_until": "..."}]}`
}

// buildNormalizePrompt creates the per-shard normalization prompt.
func buildNormalizePrompt(items []domain.RawItem) (string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return "", domain.APIError("marshal raw items", err)
	}

	return fmt.Sprintf(`You are a grocery data normalization expert. Clean up the following raw ad listings.

For EACH input item produce exactly one output item, in the SAME ORDER, with:
- store_name: carried over, required
- normalized_name: a clean shopper-friendly product name, required
- brand: cleaned brand or ""
- price: the effective price as a plain string like "3.99" or "2 for 5.00", required
- original_price: the pre-deal price if determinable, otherwise ""
- unit: normalized unit like "12 oz" or "per lb", or ""
- deal_text: carried over or cleaned, or ""
- is_loss_leader: true when the deal is an aggressive traffic-driving discount, required
- valid_until: carried over or ""

The output array MUST contain exactly %d items, one per input, same order.

INPUT:
%s

Respond with ONLY a JSON object: {"items": [...]}`, len(items), string(payload)), nil
}

// buildInterpretPrompt creates the shopping-list interpretation prompt.
func buildInterpretPrompt(listText string) string {
	return fmt.Sprintf(`You are a shopping assistant. The user wrote this shopping list:

%q

Expand it into search keywords: one or more keywords per list entry, covering
synonyms and common product variants (e.g. "soda" also yields "cola", "soft drink").
Keep keywords short. If the list is empty or contains nothing resembling
products, return an empty array.

Respond with ONLY a JSON object: {"keywords": ["...", "..."]}`, listText)
}

// buildMatchPrompt creates the deal-matching prompt.
func buildMatchPrompt(keywords []string, inventory []domain.MasterInventoryItem) (string, error) {
	payload, err := json.Marshal(inventory)
	if err != nil {
		return "", domain.APIError("marshal inventory", err)
	}

	return fmt.Sprintf(`You are a deal-matching expert. Match the user's shopping keywords against the store inventory below.

KEYWORDS: %s

INVENTORY (JSON):
%s

For every inventory item that semantically satisfies a keyword, emit:
- id: the inventory item's id, copied exactly
- item_name: the inventory item's normalized name
- deal_description: a one-line description of why this deal is good, or ""
- confidence: 0.0-1.0 match confidence

Also write a short natural-language "summary" of the best deals found.

Respond with ONLY a JSON object: {"matches": [...], "summary": "..."}`,
		strings.Join(keywords, ", "), string(payload)), nil
}
