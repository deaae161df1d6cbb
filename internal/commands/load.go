package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

func newLoadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load a transaction file and describe its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := a.load(args[0])
			if err != nil {
				return err
			}
			printTable(cmd.OutOrStdout(), args[0], tbl)
			return nil
		},
	}
}

func printTable(w io.Writer, path string, tbl model.Table) {
	fmt.Fprintf(w, "file:      %s\n", path)
	fmt.Fprintf(w, "encoding:  %s\n", tbl.Encoding)
	fmt.Fprintf(w, "delimiter: %q\n", tbl.Delimiter)
	fmt.Fprintf(w, "rows:      %d\n", tbl.Len())
	fmt.Fprintf(w, "columns:   %d\n", len(tbl.Columns))
	for _, col := range tbl.Columns {
		fmt.Fprintf(w, "  %-28s %s\n", col, tbl.Kinds[col])
	}
}
