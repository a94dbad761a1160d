package parser

import (
	"fmt"
	"strings"

	"github.com/nonna-dev/nonna/internal/model"
)

// buildPrompt constructs the user instruction for one parsing request. The
// taxonomy is embedded from the same list the validation step checks against,
// so prompt vocabulary and whitelist cannot drift apart.
func buildPrompt(text string) string {
	return fmt.Sprintf(`Parse this transaction into structured data. Extract the amount, description, and categorize it.

Transaction: %q

Available categories: %s

Rules:
- If it sounds like income (paycheck, salary, payment received, freelance, deposit, refund), set type to "income" and category to "Income"
- Otherwise, set type to "expense" and choose the most appropriate category
- Extract the dollar amount (look for $, numbers, or written amounts)
- The description should be clean and concise

Respond ONLY with valid JSON in this exact format, no other text:
{"amount": 0.00, "description": "string", "category": "string", "transaction_type": "expense or income"}`,
		text, strings.Join(model.CategoryNames(), ", "))
}
