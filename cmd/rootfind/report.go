package rootfind

import (
	"fmt"

	"github.com/rootfind/rootfind/internal/cache"
	"github.com/rootfind/rootfind/internal/report"
	"github.com/spf13/cobra"
)

var flagReportTable bool

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the results of the last find run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := stateDir()
			if err != nil {
				return err
			}
			rr, err := cache.LoadResults(dir)
			if err != nil {
				return fmt.Errorf("no cached results in %s (run 'rootfind find' first): %w", dir, err)
			}
			results := rr.Engine()
			out := cmd.OutOrStdout()
			if flagJSON {
				return report.WriteJSON(out, results)
			}
			fmt.Fprintf(out, "Last run: %s\n", rr.Timestamp.Format("2006-01-02 15:04:05"))
			opts := report.PrintOptions{NoColor: !colorEnabled(flagNoColor), Footer: true}
			for _, res := range results {
				if flagReportTable {
					report.PrintTable(out, res, opts)
				} else {
					report.PrintText(out, res, opts)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagReportTable, "table", false, "output in table format with borders")
	rootCmd.AddCommand(cmd)
}
