package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// NoData is the Stats.Period of an empty selection.
const NoData = "no data"

// Stats summarizes a selection of cleaned transactions.
type Stats struct {
	Count              int
	MedianPrice        decimal.Decimal
	MeanPrice          decimal.Decimal
	MedianPricePerArea decimal.Decimal
	MeanPricePerArea   decimal.Decimal
	MedianArea         decimal.Decimal
	MeanArea           decimal.Decimal
	FirstYear          int
	LastYear           int
	Period             string // "2022 - 2023", NoData when empty
}

// Summarize computes Stats over rows. Undated rows count but do not extend the period.
func Summarize(rows []model.CleanedTransaction) Stats {
	if len(rows) == 0 {
		return Stats{Period: NoData}
	}

	prices := make([]decimal.Decimal, len(rows))
	ppa := make([]decimal.Decimal, len(rows))
	areas := make([]decimal.Decimal, len(rows))
	s := Stats{Count: len(rows)}
	for i, r := range rows {
		prices[i] = r.SaleValue.Decimal
		ppa[i] = r.PricePerArea
		areas[i] = r.BuiltArea.Decimal
		if y := r.Year(); y > 0 {
			if s.FirstYear == 0 || y < s.FirstYear {
				s.FirstYear = y
			}
			if y > s.LastYear {
				s.LastYear = y
			}
		}
	}

	s.MedianPrice, s.MeanPrice = Median(prices), Mean(prices)
	s.MedianPricePerArea, s.MeanPricePerArea = Median(ppa), Mean(ppa)
	s.MedianArea, s.MeanArea = Median(areas), Mean(areas)
	if s.FirstYear > 0 {
		s.Period = fmt.Sprintf("%d - %d", s.FirstYear, s.LastYear)
	} else {
		s.Period = "undated"
	}
	return s
}

// Median returns the middle value of vs, or the mean of the two middle values
// when len(vs) is even. vs is not reordered. Empty input yields zero.
func Median(vs []decimal.Decimal) decimal.Decimal {
	if len(vs) == 0 {
		return decimal.Zero
	}
	sorted := append([]decimal.Decimal(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// Mean returns the arithmetic mean of vs. Empty input yields zero.
func Mean(vs []decimal.Decimal) decimal.Decimal {
	if len(vs) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, vs...).Div(decimal.NewFromInt(int64(len(vs))))
}
