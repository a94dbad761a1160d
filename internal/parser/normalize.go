package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/nonna-dev/nonna/internal/model"
)

// cleanMarkdownWrapper strips a fenced code block wrapper from model output.
// Some models wrap their JSON in ```json ... ``` despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// repairDraft maps the loosely-typed response payload into a validated draft.
// Field-level anomalies are repaired, never rejected: an unknown category
// becomes Other, an unknown type becomes expense, and an uncoercible amount
// becomes 0. Only structural failures (not a JSON object at all) are errors,
// and those are handled before this point.
func repairDraft(payload map[string]any) model.TransactionDraft {
	draft := model.TransactionDraft{
		Category: model.CategoryOther,
		Type:     model.TypeExpense,
		Amount:   coerceAmount(payload["amount"]),
	}

	if desc, ok := payload["description"].(string); ok {
		draft.Description = strings.TrimSpace(desc)
	}
	if cat, ok := payload["category"].(string); ok && model.IsValidCategory(cat) {
		draft.Category = cat
	}
	if t, ok := payload["transaction_type"].(string); ok && model.TransactionType(t).Valid() {
		draft.Type = model.TransactionType(t)
	}

	return draft
}

// coerceAmount converts a JSON value to a non-negative amount. JSON numbers
// arrive as float64; numeric strings are parsed as a courtesy. Anything else
// coerces to 0 rather than failing the parse.
func coerceAmount(value any) float64 {
	switch v := value.(type) {
	case float64:
		return math.Abs(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(v, "$")), 64)
		if err != nil {
			return 0
		}
		return math.Abs(parsed)
	default:
		return 0
	}
}
