package rootfind

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rootfind/rootfind/internal/audit"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous find runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := stateDir()
			if err != nil {
				return err
			}
			records, err := audit.NewLog(dir).LoadHistory()
			if err != nil {
				return err
			}
			if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
				records = records[:flagHistoryLimit]
			}
			out := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			table := tablewriter.NewWriter(out)
			table.Header("WHEN", "RUN", "FUNCTIONS", "ROOTS", "DEGRADED", "EVALUATIONS", "RESULT")
			for _, r := range records {
				names := make([]string, 0, len(r.Functions))
				for _, f := range r.Functions {
					names = append(names, f.Name)
				}
				result := "ok"
				switch {
				case r.Error != "":
					result = r.Error
				case r.Cached:
					result = "cached"
				}
				_ = table.Append([]string{
					r.Timestamp.Format("2006-01-02 15:04:05"),
					shortID(r.RunID),
					strings.Join(names, ","),
					strconv.Itoa(r.TotalRoots),
					strconv.Itoa(r.Degraded),
					strconv.FormatInt(r.Evaluations, 10),
					result,
				})
			}
			return table.Render()
		},
	}
	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "show at most this many runs (0 = all)")
	rootCmd.AddCommand(cmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
