package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deltagreen-vtt/dgsettings/internal/deltagreen"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(valuesCmd)
}

var valuesCmd = &cobra.Command{
	Use:   "values",
	Short: "List the values stored in the settings table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		backend, closer, err := openSQLStore()
		if err != nil {
			return err
		}
		defer closer.Close()

		rows, err := backend.Values(cmd.Context(), deltagreen.Module)
		if err != nil {
			return err //nolint:wrapcheck
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
		_, _ = fmt.Fprintln(w, "SCOPE\tCLIENT\tSETTING\tVALUE\tUPDATED")

		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.Scope, r.Client, r.Name, r.Value, r.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		return w.Flush() //nolint:wrapcheck
	},
}
