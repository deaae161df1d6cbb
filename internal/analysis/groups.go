package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// Group is the per-key aggregate returned by TopCommunes, ByDepartment and ByPropertyType.
type Group struct {
	Key                string
	Count              int
	MedianPrice        decimal.Decimal
	MedianPricePerArea decimal.Decimal
	MedianArea         decimal.Decimal
}

// TopCommunes groups rows by commune and returns the n busiest communes with at
// least minTransactions rows, sorted by count descending then name. n <= 0 returns all.
func TopCommunes(rows []model.CleanedTransaction, n, minTransactions int) []Group {
	groups := groupBy(rows, func(r model.CleanedTransaction) string { return r.Commune })

	kept := groups[:0]
	for _, g := range groups {
		if g.Count >= minTransactions {
			kept = append(kept, g)
		}
	}
	if n > 0 && len(kept) > n {
		kept = kept[:n]
	}
	return kept
}

// ByDepartment groups rows by department code, sorted by count descending then code.
func ByDepartment(rows []model.CleanedTransaction) []Group {
	return groupBy(rows, func(r model.CleanedTransaction) string { return r.Department })
}

// ByPropertyType groups rows by property type, sorted by count descending then name.
// Rows without a type are grouped under "".
func ByPropertyType(rows []model.CleanedTransaction) []Group {
	return groupBy(rows, func(r model.CleanedTransaction) string { return r.PropertyType })
}

func groupBy(rows []model.CleanedTransaction, key func(model.CleanedTransaction) string) []Group {
	type acc struct {
		prices, ppa, areas []decimal.Decimal
	}
	buckets := make(map[string]*acc)
	for _, r := range rows {
		k := key(r)
		a, ok := buckets[k]
		if !ok {
			a = &acc{}
			buckets[k] = a
		}
		a.prices = append(a.prices, r.SaleValue.Decimal)
		a.ppa = append(a.ppa, r.PricePerArea)
		a.areas = append(a.areas, r.BuiltArea.Decimal)
	}

	out := make([]Group, 0, len(buckets))
	for k, a := range buckets {
		out = append(out, Group{
			Key:                k,
			Count:              len(a.prices),
			MedianPrice:        Median(a.prices),
			MedianPricePerArea: Median(a.ppa),
			MedianArea:         Median(a.areas),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
