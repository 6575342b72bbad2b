package rootfind

import (
	"encoding/json"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rootfind/rootfind/internal/functions"
	"github.com/spf13/cobra"
)

type functionInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DomainMin   float64   `json:"domain_min"`
	DomainMax   float64   `json:"domain_max"`
	Roots       int       `json:"roots"`
	Known       []float64 `json:"known,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "functions [pattern]",
		Short: "List the built-in target functions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}
			entries, err := functions.Match(pattern)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flagJSON {
				infos := make([]functionInfo, 0, len(entries))
				for _, e := range entries {
					infos = append(infos, functionInfo{e.Name, e.Description, e.DomainMin, e.DomainMax, e.Roots, e.Known})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			table := tablewriter.NewWriter(out)
			table.Header("NAME", "DOMAIN", "ROOTS", "DESCRIPTION")
			for _, e := range entries {
				domain := "[" + strconv.FormatFloat(e.DomainMin, 'g', -1, 64) + ", " + strconv.FormatFloat(e.DomainMax, 'g', -1, 64) + "]"
				_ = table.Append([]string{e.Name, domain, strconv.Itoa(e.Roots), e.Description})
			}
			return table.Render()
		},
	}
	rootCmd.AddCommand(cmd)
}
