// Package cleaner filters loaded DVF transactions and derives price per area.
package cleaner

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// ErrSchema is matched by *SchemaError.
var ErrSchema = errors.New("table does not match the cleaning schema")

// SchemaError reports required columns absent from the table header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: missing column(s) %s", ErrSchema, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrSchema) hold for a *SchemaError.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// Cleaner applies Config to tables. It holds no per-run state and may be reused.
type Cleaner struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Cleaner. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{cfg: cfg, logger: logger}
}

// Clean runs Clean with a default logger.
func Clean(tbl model.Table, cfg Config) (model.CleanedTable, *Report, error) {
	return New(cfg, nil).Clean(tbl)
}

// Clean drops rows with missing required values, then exact duplicates, then
// out-of-range values, and computes price per area for the rest. The input table
// is not modified; surviving rows keep their input order.
func (c *Cleaner) Clean(tbl model.Table) (model.CleanedTable, *Report, error) {
	if err := c.cfg.Validate(); err != nil {
		return model.CleanedTable{}, nil, err
	}
	if err := c.checkSchema(tbl); err != nil {
		return model.CleanedTable{}, nil, err
	}

	report := newReport(tbl.Len())

	rows := c.dropMissing(tbl.Rows, report)
	rows = c.dropDuplicates(rows, report)
	rows = c.dropOutOfRange(rows, report)

	out := model.CleanedTable{
		Columns:      append([]string(nil), tbl.Columns...),
		ExtraColumns: append([]string(nil), tbl.ExtraColumns...),
		Kinds:        make(map[string]model.Kind, len(tbl.Kinds)+1),
		Rows:         make([]model.CleanedTransaction, 0, len(rows)),
	}
	for k, v := range tbl.Kinds {
		out.Kinds[k] = v
	}
	out.Kinds[model.ColPricePerArea] = model.KindNumber

	for _, r := range rows {
		out.Rows = append(out.Rows, model.CleanedTransaction{
			RawTransaction: r.Clone(),
			PricePerArea:   PricePerArea(r.SaleValue.Decimal, r.BuiltArea.Decimal),
		})
	}
	report.Retained = len(out.Rows)

	c.logger.Info("cleaned transactions",
		"input", report.Input,
		"missing", report.Missing(),
		"duplicates", report.Duplicates,
		"out_of_range", report.OutOfRangeTotal(),
		"retained", report.Retained,
	)
	return out, report, nil
}

// PricePerArea divides sale value by built area. area must be non-zero.
func PricePerArea(value, area decimal.Decimal) decimal.Decimal {
	return value.Div(area)
}

// requiredColumns returns sale value and built area followed by the configured
// required fields, without repeats.
func (c *Cleaner) requiredColumns() []string {
	cols := []string{model.ColSaleValue, model.ColBuiltArea}
	seen := map[string]bool{model.ColSaleValue: true, model.ColBuiltArea: true}
	for _, f := range c.cfg.RequiredFields {
		if !seen[f] {
			seen[f] = true
			cols = append(cols, f)
		}
	}
	return cols
}

func (c *Cleaner) checkSchema(tbl model.Table) error {
	var missing []string
	for _, col := range c.requiredColumns() {
		if !tbl.Has(col) {
			missing = append(missing, col)
		}
	}
	if (c.cfg.MinYear > 0 || c.cfg.MaxYear > 0) && !tbl.Has(model.ColDate) {
		missing = append(missing, model.ColDate)
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func (c *Cleaner) dropMissing(rows []model.RawTransaction, report *Report) []model.RawTransaction {
	required := c.requiredColumns()
	kept := make([]model.RawTransaction, 0, len(rows))
rowLoop:
	for _, r := range rows {
		for _, f := range required {
			if !presence[f](r) {
				report.MissingByField[f]++
				c.logger.Debug("dropping row with missing value", "field", f, "mutation", r.MutationID)
				continue rowLoop
			}
		}
		kept = append(kept, r)
	}
	return kept
}

func (c *Cleaner) dropDuplicates(rows []model.RawTransaction, report *Report) []model.RawTransaction {
	seen := make(map[string]struct{}, len(rows))
	kept := make([]model.RawTransaction, 0, len(rows))
	for _, r := range rows {
		key := rowKey(r)
		if _, dup := seen[key]; dup {
			report.Duplicates++
			c.logger.Debug("dropping duplicate row", "mutation", r.MutationID)
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	return kept
}

func (c *Cleaner) dropOutOfRange(rows []model.RawTransaction, report *Report) []model.RawTransaction {
	b := c.cfg.bounds()
	kept := make([]model.RawTransaction, 0, len(rows))
	for _, r := range rows {
		if reason := outOfRange(r, b); reason != "" {
			report.OutOfRange[reason]++
			c.logger.Debug("dropping out-of-range row", "reason", reason, "mutation", r.MutationID)
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// outOfRange returns the first violated bound, or "" when r is within all of them.
func outOfRange(r model.RawTransaction, b bounds) string {
	value, area := r.SaleValue.Decimal, r.BuiltArea.Decimal

	if !value.IsPositive() || value.LessThan(b.minPrice) {
		return RangeSaleValue
	}
	if !area.IsPositive() || area.LessThan(b.minArea) {
		return RangeBuiltArea
	}
	if b.maxArea.IsPositive() && area.GreaterThan(b.maxArea) {
		return RangeBuiltArea
	}
	if b.minYear > 0 || b.maxYear > 0 {
		year := r.Year()
		if year == 0 || (b.minYear > 0 && year < b.minYear) || (b.maxYear > 0 && year > b.maxYear) {
			return RangeYear
		}
	}
	if b.minPPA.IsPositive() || b.maxPPA.IsPositive() {
		ppa := PricePerArea(value, area)
		if ppa.LessThan(b.minPPA) || (b.maxPPA.IsPositive() && ppa.GreaterThan(b.maxPPA)) {
			return RangePricePerArea
		}
	}
	return ""
}
