package model

import "time"

// Category represents a named transaction grouping with a display color.
type Category struct {
	CreatedAt time.Time
	Name      string
	Color     string
	ID        int64
}

// Category names with special meaning to the parser.
const (
	CategoryIncome = "Income"
	CategoryOther  = "Other"
)

// DefaultCategories is the fixed taxonomy, in canonical order. It is both the
// parser's prompt vocabulary and its validation whitelist, and the set seeded
// at bootstrap when no categories exist.
var DefaultCategories = []Category{
	{Name: "Food & Drink", Color: "#EF4444"},
	{Name: "Transportation", Color: "#F59E0B"},
	{Name: "Entertainment", Color: "#8B5CF6"},
	{Name: "Shopping", Color: "#EC4899"},
	{Name: "Bills & Utilities", Color: "#3B82F6"},
	{Name: "Health", Color: "#10B981"},
	{Name: CategoryIncome, Color: "#22C55E"},
	{Name: CategoryOther, Color: "#6B7280"},
}

// CategoryNames returns the taxonomy names in canonical order.
func CategoryNames() []string {
	names := make([]string, len(DefaultCategories))
	for i, c := range DefaultCategories {
		names[i] = c.Name
	}
	return names
}

// IsValidCategory reports whether name is a member of the fixed taxonomy.
// Matching is case-sensitive.
func IsValidCategory(name string) bool {
	for _, c := range DefaultCategories {
		if c.Name == name {
			return true
		}
	}
	return false
}
