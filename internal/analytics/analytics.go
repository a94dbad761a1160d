// Package analytics aggregates persisted transactions into a spending
// summary grouped by category. Summarize is a pure function: no I/O, no
// error states, and identical output for identical input.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nonna-dev/nonna/internal/model"
)

// Period is a date range, inclusive on both bounds. A zero Start or End
// leaves that bound open.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the period.
func (p Period) Contains(d time.Time) bool {
	if !p.Start.IsZero() && d.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && d.After(p.End) {
		return false
	}
	return true
}

// CategorySummary holds the expense totals for one category.
type CategorySummary struct {
	CategoryName  string  `json:"category_name"`
	CategoryColor string  `json:"category_color"`
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
	Percentage    float64 `json:"percentage"`
}

// Summary is the result of one aggregation pass. ByCategory covers expense
// transactions only and is sorted by total descending.
type Summary struct {
	ByCategory    []CategorySummary `json:"by_category"`
	TotalIncome   float64           `json:"total_income"`
	TotalExpenses float64           `json:"total_expenses"`
	NetBalance    float64           `json:"net_balance"`
}

// Summarize computes income/expense totals and a per-category expense
// breakdown over the given transactions. A nil period means no date
// filtering. Empty input yields zero totals and an empty ByCategory.
//
// Amounts accumulate in float64 and are rounded only at the output boundary:
// totals to 2 decimal places, percentages to 1, using round-half-away-from-
// zero. Equal totals tie-break on category name ascending.
func Summarize(transactions []model.Transaction, period *Period) Summary {
	var totalIncome, totalExpenses float64

	type bucket struct {
		color string
		total float64
		count int
	}
	buckets := make(map[string]*bucket)

	for _, t := range transactions {
		if period != nil && !period.Contains(t.Date) {
			continue
		}

		switch t.Type {
		case model.TypeIncome:
			totalIncome += t.Amount
		case model.TypeExpense:
			totalExpenses += t.Amount
			b := buckets[t.Category.Name]
			if b == nil {
				b = &bucket{color: t.Category.Color}
				buckets[t.Category.Name] = b
			}
			b.total += t.Amount
			b.count++
		}
	}

	byCategory := make([]CategorySummary, 0, len(buckets))
	for name, b := range buckets {
		var percentage float64
		if totalExpenses > 0 {
			percentage = b.total / totalExpenses * 100
		}
		byCategory = append(byCategory, CategorySummary{
			CategoryName:  name,
			CategoryColor: b.color,
			Count:         b.count,
			Total:         roundPlaces(b.total, 2),
			Percentage:    roundPlaces(percentage, 1),
		})
	}

	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Total != byCategory[j].Total {
			return byCategory[i].Total > byCategory[j].Total
		}
		return byCategory[i].CategoryName < byCategory[j].CategoryName
	})

	return Summary{
		ByCategory:    byCategory,
		TotalIncome:   roundPlaces(totalIncome, 2),
		TotalExpenses: roundPlaces(totalExpenses, 2),
		NetBalance:    roundPlaces(totalIncome-totalExpenses, 2),
	}
}

// roundPlaces rounds half away from zero. Decimal is used only here; the
// running sums stay float64 for output compatibility with the accumulation
// semantics this module replaces.
func roundPlaces(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
