package rootfind

import (
	"fmt"
	"os"
	"strings"

	"github.com/rootfind/rootfind/internal/config"
	"github.com/rootfind/rootfind/internal/functions"
	"github.com/rootfind/rootfind/internal/solver"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput   string
	cfgFunction string
	cfgStrategy string
	cfgSeed     uint64
	cfgNoColor  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .rootfind.yml with the defaults of a function",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".rootfind.yml", "output file path")
	initCmd.Flags().StringVar(&cfgFunction, "function", functions.Default, "function whose domain and root count are written")
	initCmd.Flags().StringVar(&cfgStrategy, "strategy", "random", "bracket strategy: random | scan")
	initCmd.Flags().Uint64Var(&cfgSeed, "seed", 0, "seed of the random strategy")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	e, err := functions.Lookup(cfgFunction)
	if err != nil {
		return err
	}
	fc := config.FileConfig{
		Function:           strPtr(e.Name),
		DomainMin:          floatPtr(e.DomainMin),
		DomainMax:          floatPtr(e.DomainMax),
		Roots:              intPtr(e.Roots),
		IterationCap:       intPtr(solver.DefaultIterationCap),
		CoarseTolerance:    floatPtr(solver.DefaultCoarseTolerance),
		FineTolerance:      floatPtr(solver.DefaultFineTolerance),
		TruncationConstant: floatPtr(solver.DefaultTruncationConstant),
		Strategy:           optStrPtr(cfgStrategy),
		Seed:               &cfgSeed,
		NoColor:            boolPtr(cfgNoColor),
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
