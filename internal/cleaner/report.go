package cleaner

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// Keys of Report.Counts.
const (
	ReasonMissingOrInvalid = "missing_or_invalid"
	ReasonDuplicate        = "duplicate"
	KeyRetained            = "retained"
)

// Out-of-range reasons recorded in Report.OutOfRange.
const (
	RangeSaleValue    = "sale_value"
	RangeBuiltArea    = "built_area"
	RangeYear         = "year"
	RangePricePerArea = "price_per_area"
)

// Report summarizes one Clean run: rows in, rows removed per reason, rows kept.
type Report struct {
	Input          int
	MissingByField map[string]int // required field -> rows dropped for missing it
	Duplicates     int
	OutOfRange     map[string]int // reason -> rows dropped
	Retained       int
}

func newReport(input int) *Report {
	return &Report{
		Input:          input,
		MissingByField: make(map[string]int),
		OutOfRange:     make(map[string]int),
	}
}

// Missing returns the rows dropped for a missing required value.
func (r *Report) Missing() int { return sum(r.MissingByField) }

// OutOfRangeTotal returns the rows dropped by range filtering.
func (r *Report) OutOfRangeTotal() int { return sum(r.OutOfRange) }

// Removed returns the rows dropped for any reason.
func (r *Report) Removed() int {
	return r.Missing() + r.Duplicates + r.OutOfRangeTotal()
}

// Counts returns the summary mapping: missing or invalid values (missing fields and
// out-of-range values together), duplicates, and retained rows.
func (r *Report) Counts() map[string]int {
	return map[string]int{
		ReasonMissingOrInvalid: r.Missing() + r.OutOfRangeTotal(),
		ReasonDuplicate:        r.Duplicates,
		KeyRetained:            r.Retained,
	}
}

// Breakdown returns one entry per fine-grained reason with a non-zero count,
// keyed "missing:<field>", "out_of_range:<reason>" and "duplicate".
func (r *Report) Breakdown() map[string]int {
	out := make(map[string]int)
	for f, n := range r.MissingByField {
		if n > 0 {
			out["missing:"+f] = n
		}
	}
	for reason, n := range r.OutOfRange {
		if n > 0 {
			out["out_of_range:"+reason] = n
		}
	}
	if r.Duplicates > 0 {
		out[ReasonDuplicate] = r.Duplicates
	}
	return out
}

// RemovalPercentage returns the share of input rows removed, rounded to 2 decimals.
func (r *Report) RemovalPercentage() float64 {
	if r.Input == 0 {
		return 0
	}
	pct := float64(r.Removed()) / float64(r.Input) * 100
	return math.Round(pct*100) / 100
}

// Log writes the report to logger, one line per reason in sorted order.
func (r *Report) Log(logger *slog.Logger) {
	logger.Info("cleaning report",
		"input", r.Input,
		"removed", r.Removed(),
		"retained", r.Retained,
		"removal_pct", r.RemovalPercentage(),
	)
	b := r.Breakdown()
	for _, k := range SortedKeys(b) {
		logger.Info(fmt.Sprintf("- %s", k), "rows", b[k])
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
