// Package analysis filters cleaned transactions and computes summary statistics.
package analysis

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// Filter selects cleaned transactions. Zero values mean no constraint; ranges
// are inclusive.
type Filter struct {
	Department      string
	YearFrom        int
	YearTo          int
	PriceMin        float64
	PriceMax        float64
	AreaMin         float64
	AreaMax         float64
	Types           []string
	PricePerAreaMin float64
	PricePerAreaMax float64
}

// Apply returns the rows matching every constraint, in input order. rows is not modified.
func (f Filter) Apply(rows []model.CleanedTransaction) []model.CleanedTransaction {
	out := make([]model.CleanedTransaction, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether r satisfies the filter.
func (f Filter) Match(r model.CleanedTransaction) bool {
	if f.Department != "" && r.Department != f.Department {
		return false
	}
	if f.YearFrom > 0 || f.YearTo > 0 {
		y := r.Year()
		if y == 0 || (f.YearFrom > 0 && y < f.YearFrom) || (f.YearTo > 0 && y > f.YearTo) {
			return false
		}
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, r.PropertyType) {
		return false
	}
	return within(r.SaleValue.Decimal, f.PriceMin, f.PriceMax) &&
		within(r.BuiltArea.Decimal, f.AreaMin, f.AreaMax) &&
		within(r.PricePerArea, f.PricePerAreaMin, f.PricePerAreaMax)
}

func within(v decimal.Decimal, lo, hi float64) bool {
	if lo > 0 && v.LessThan(decimal.NewFromFloat(lo)) {
		return false
	}
	if hi > 0 && v.GreaterThan(decimal.NewFromFloat(hi)) {
		return false
	}
	return true
}
