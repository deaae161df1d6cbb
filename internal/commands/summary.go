package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/frankigoes6/ProjetFoncier/internal/analysis"
)

func newSummaryCommand(a *app) *cobra.Command {
	var (
		filter          analysis.Filter
		top             int
		minTransactions int
		flags           cleaningFlags
	)

	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Clean a transaction file and print market statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleaned, _, err := a.loadAndClean(args[0], flags.apply(cmd, a.cfg.Cleaning))
			if err != nil {
				return err
			}

			rows := filter.Apply(cleaned.Rows)
			a.logger.Debug("filtered transactions", "before", cleaned.Len(), "after", len(rows))

			w := cmd.OutOrStdout()
			printStats(w, analysis.Summarize(rows))
			if len(rows) == 0 {
				return nil
			}
			printGroups(w, "top communes", analysis.TopCommunes(rows, top, minTransactions))
			printGroups(w, "departments", analysis.ByDepartment(rows))
			printGroups(w, "property types", analysis.ByPropertyType(rows))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.Department, "department", "", "department code, e.g. 69")
	f.IntVar(&filter.YearFrom, "year-from", 0, "first mutation year")
	f.IntVar(&filter.YearTo, "year-to", 0, "last mutation year")
	f.Float64Var(&filter.PriceMin, "price-min", 0, "minimum sale value")
	f.Float64Var(&filter.PriceMax, "price-max", 0, "maximum sale value")
	f.Float64Var(&filter.AreaMin, "area-min", 0, "minimum built area")
	f.Float64Var(&filter.AreaMax, "area-max", 0, "maximum built area")
	f.StringSliceVar(&filter.Types, "type", nil, "property types to keep")
	f.Float64Var(&filter.PricePerAreaMin, "ppa-min", 0, "minimum price per m2")
	f.Float64Var(&filter.PricePerAreaMax, "ppa-max", 0, "maximum price per m2")
	f.IntVar(&top, "top", 10, "number of communes to list (0 lists all)")
	f.IntVar(&minTransactions, "min-transactions", 1, "minimum transactions for a commune to be listed")
	flags.register(cmd)

	return cmd
}

func printStats(w io.Writer, s analysis.Stats) {
	fmt.Fprintf(w, "transactions:      %d\n", s.Count)
	fmt.Fprintf(w, "period:            %s\n", s.Period)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "price median/mean: %s / %s\n", s.MedianPrice.StringFixed(0), s.MeanPrice.StringFixed(0))
	fmt.Fprintf(w, "m2 price med/mean: %s / %s\n", s.MedianPricePerArea.StringFixed(0), s.MeanPricePerArea.StringFixed(0))
	fmt.Fprintf(w, "area median/mean:  %s / %s\n", s.MedianArea.StringFixed(1), s.MeanArea.StringFixed(1))
}

func printGroups(w io.Writer, title string, groups []analysis.Group) {
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, g := range groups {
		key := g.Key
		if key == "" {
			key = "(none)"
		}
		fmt.Fprintf(w, "  %-32s %5d  %s/m2\n", key, g.Count, g.MedianPricePerArea.StringFixed(0))
	}
}
