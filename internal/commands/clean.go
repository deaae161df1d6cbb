package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/frankigoes6/ProjetFoncier/internal/cleaner"
	"github.com/frankigoes6/ProjetFoncier/internal/export"
)

// ErrVerification is returned by clean --verify when a cleaned row breaks an invariant.
var ErrVerification = errors.New("cleaned table failed verification")

// cleaningFlags override the configured cleaning thresholds when set.
type cleaningFlags struct {
	minArea  float64
	maxArea  float64
	minPrice float64
	required []string
}

func (f *cleaningFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.minArea, "min-area", 0, "minimum built area in m2")
	cmd.Flags().Float64Var(&f.maxArea, "max-area", 0, "maximum built area in m2 (0 disables)")
	cmd.Flags().Float64Var(&f.minPrice, "min-price", 0, "minimum sale value")
	cmd.Flags().StringSliceVar(&f.required, "require", nil, "required fields (replaces the configured list)")
}

func (f *cleaningFlags) apply(cmd *cobra.Command, cfg cleaner.Config) cleaner.Config {
	if cmd.Flags().Changed("min-area") {
		cfg.MinArea = f.minArea
	}
	if cmd.Flags().Changed("max-area") {
		cfg.MaxArea = f.maxArea
	}
	if cmd.Flags().Changed("min-price") {
		cfg.MinPrice = f.minPrice
	}
	if cmd.Flags().Changed("require") {
		cfg.RequiredFields = f.required
	}
	return cfg
}

func newCleanCommand(a *app) *cobra.Command {
	var (
		out    string
		verify bool
		flags  cleaningFlags
	)

	cmd := &cobra.Command{
		Use:   "clean <file>",
		Short: "Clean a transaction file and report what was removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleaned, report, err := a.loadAndClean(args[0], flags.apply(cmd, a.cfg.Cleaning))
			if err != nil {
				return err
			}
			report.Log(a.logger)
			printReport(cmd.OutOrStdout(), report)

			if verify {
				if violations := cleaner.Verify(cleaned); len(violations) > 0 {
					for _, v := range violations {
						a.logger.Error("invariant violated", "row", v.Row, "mutation", v.MutationID, "detail", v.Description)
					}
					return fmt.Errorf("%w: %d row(s)", ErrVerification, len(violations))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "verification passed")
			}

			if out != "" {
				if err := export.WriteFile(out, cleaned); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", cleaned.Len(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the cleaned table to this CSV file")
	cmd.Flags().BoolVar(&verify, "verify", false, "check cleaned rows against the output invariants")
	flags.register(cmd)

	return cmd
}

func printReport(w io.Writer, r *cleaner.Report) {
	counts := r.Counts()
	fmt.Fprintf(w, "input:    %d\n", r.Input)
	for _, k := range cleaner.SortedKeys(counts) {
		fmt.Fprintf(w, "%-19s %d\n", k+":", counts[k])
	}
	breakdown := r.Breakdown()
	for _, k := range cleaner.SortedKeys(breakdown) {
		fmt.Fprintf(w, "  %-28s %d\n", k, breakdown[k])
	}
	fmt.Fprintf(w, "removed:  %.2f%%\n", r.RemovalPercentage())
}
