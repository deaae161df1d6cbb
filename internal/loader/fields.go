package loader

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// dateFormats are tried in order for date_mutation cells.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDecimal accepts "150000.50", and "150000,50" or "1.250.000,50" when the
// file uses ';' as delimiter. Spaces used as thousands separators are ignored.
func parseDecimal(s string, delim rune) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if delim == ';' && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseInt(s string, delim rune) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	d, ok := parseDecimal(s, delim)
	if !ok || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// rowParser maps one CSV record to a RawTransaction using header positions.
type rowParser struct {
	index   map[string]int
	extra   []int
	delim   rune
	invalid map[string]int // column -> cells that failed to parse
}

func newRowParser(header []string, delim rune) *rowParser {
	p := &rowParser{
		index:   make(map[string]int, len(header)),
		delim:   delim,
		invalid: make(map[string]int),
	}
	for i, col := range header {
		p.index[col] = i
		if _, known := model.SchemaColumns[col]; !known {
			p.extra = append(p.extra, i)
		}
	}
	return p
}

func (p *rowParser) cell(rec []string, col string) string {
	i, ok := p.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (p *rowParser) decimal(rec []string, col string) decimal.NullDecimal {
	raw := p.cell(rec, col)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, ok := parseDecimal(raw, p.delim)
	if !ok {
		p.invalid[col]++
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func (p *rowParser) parse(rec []string) model.RawTransaction {
	tx := model.RawTransaction{
		MutationID:   p.cell(rec, model.ColMutationID),
		SaleValue:    p.decimal(rec, model.ColSaleValue),
		BuiltArea:    p.decimal(rec, model.ColBuiltArea),
		PropertyType: p.cell(rec, model.ColPropertyType),
		PostalCode:   p.cell(rec, model.ColPostalCode),
		Commune:      p.cell(rec, model.ColCommune),
		Department:   p.cell(rec, model.ColDepartment),
		Latitude:     p.decimal(rec, model.ColLatitude),
		Longitude:    p.decimal(rec, model.ColLongitude),
	}

	if raw := p.cell(rec, model.ColDate); raw != "" {
		if d, ok := parseDate(raw); ok {
			tx.Date = d
		} else {
			p.invalid[model.ColDate]++
		}
	}

	if raw := p.cell(rec, model.ColRooms); raw != "" {
		if n, ok := parseInt(raw, p.delim); ok {
			tx.Rooms = &n
		} else {
			p.invalid[model.ColRooms]++
		}
	}

	if len(p.extra) > 0 {
		tx.Extra = make([]string, len(p.extra))
		for j, i := range p.extra {
			if i < len(rec) {
				tx.Extra[j] = strings.TrimSpace(rec[i])
			}
		}
	}
	return tx
}

// inferKind reports the narrowest kind every non-empty value satisfies.
func inferKind(values []string, delim rune) model.Kind {
	numeric, dated, seen := true, true, false
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		seen = true
		if numeric {
			_, numeric = parseDecimal(v, delim)
		}
		if dated {
			_, dated = parseDate(v)
		}
		if !numeric && !dated {
			break
		}
	}
	switch {
	case !seen:
		return model.KindString
	case numeric:
		return model.KindNumber
	case dated:
		return model.KindDate
	default:
		return model.KindString
	}
}
