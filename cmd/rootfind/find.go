package rootfind

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rootfind/rootfind/internal/audit"
	"github.com/rootfind/rootfind/internal/bracket"
	"github.com/rootfind/rootfind/internal/cache"
	"github.com/rootfind/rootfind/internal/config"
	"github.com/rootfind/rootfind/internal/engine"
	"github.com/rootfind/rootfind/internal/functions"
	"github.com/rootfind/rootfind/internal/logging"
	"github.com/rootfind/rootfind/internal/report"
	"github.com/rootfind/rootfind/internal/types"
	"github.com/spf13/cobra"
)

// findOptions holds the find flags as parsed by cobra.
type findOptions struct {
	Function           string
	DomainMin          float64
	DomainMax          float64
	Roots              int
	IterationCap       int
	CoarseTolerance    float64
	FineTolerance      float64
	TruncationConstant float64
	Strategy           string
	MaxResamples       int
	ScanSteps          int
	Seed               uint64
	MinSeparation      float64
	Output             string
	Reference          string
	SaveReference      string
	Compare            bool
	Table              bool
	Text               bool
	FailOnDegraded     bool
}

var findOpts findOptions

func init() {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the roots of one or more functions",
		Example: `
# The five zeros of J0 on [0, 15]
rootfind find

# Every Bessel function in the catalog, deterministic bracketing
rootfind find --function 'j*,y0' --strategy scan

# sin on a custom domain, compared against the known zeros
rootfind find --function sin --min 1 --max 13 --roots 4 --compare
`,
		RunE: runFind,
	}
	rootCmd.AddCommand(cmd)

	f := cmd.Flags()
	f.StringVarP(&findOpts.Function, "function", "f", "", "comma-separated function names or globs (default j0)")
	f.Float64Var(&findOpts.DomainMin, "min", 0, "lower end of the search domain (default from the function)")
	f.Float64Var(&findOpts.DomainMax, "max", 0, "upper end of the search domain (default from the function)")
	f.IntVarP(&findOpts.Roots, "roots", "n", 0, "number of roots to find (default from the function)")
	f.IntVar(&findOpts.IterationCap, "iteration-cap", 0, "iteration budget per root shared by both solver phases (default 40)")
	f.Float64Var(&findOpts.CoarseTolerance, "coarse-tolerance", 0, "secant hand-off threshold (default 1e-4)")
	f.Float64Var(&findOpts.FineTolerance, "fine-tolerance", 0, "bisection convergence width (default 1e-10)")
	f.Float64Var(&findOpts.TruncationConstant, "truncation-constant", 0, "constant added to every error estimate (default 5e-11)")
	f.StringVar(&findOpts.Strategy, "strategy", "", "bracket strategy: random|scan (default random)")
	f.IntVar(&findOpts.MaxResamples, "max-resamples", 0, "random draws before giving up on a bracket (default 10000)")
	f.IntVar(&findOpts.ScanSteps, "scan-steps", 0, "cells of the scan strategy (default 1000)")
	f.Uint64Var(&findOpts.Seed, "seed", 0, "seed of the random strategy")
	f.Float64Var(&findOpts.MinSeparation, "min-separation", 0, "distance under which a root counts as already found (default 1e-6)")
	f.StringVarP(&findOpts.Output, "output", "o", "", "report file, '-' to skip (default roots.txt)")
	f.StringVar(&findOpts.Reference, "reference", "", "JSON file of known roots to compare against")
	f.StringVar(&findOpts.SaveReference, "save-reference", "", "write the found roots as a reference file")
	f.BoolVar(&findOpts.Compare, "compare", false, "compare against the built-in known roots")
	f.BoolVar(&findOpts.Table, "table", false, "output in table format with borders")
	f.BoolVar(&findOpts.Text, "text", false, "output in plain text format (default)")
	f.BoolVar(&findOpts.FailOnDegraded, "fail-on-degraded", false, "exit 1 if any root was confirmed on iteration exhaustion")
}

func runFind(cmd *cobra.Command, _ []string) error {
	log := logging.New("cli")
	dir, err := stateDir()
	if err != nil {
		return err
	}

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(dir); err == nil {
		lcfg = c
	}
	if err := gcfg.Validate(); err != nil {
		return fmt.Errorf("global config: %w", err)
	}
	if err := lcfg.Validate(); err != nil {
		return fmt.Errorf("local config: %w", err)
	}

	cfgs, entries, err := resolveConfigs(findOpts, cmd.Flags().Changed, lcfg, gcfg)
	if err != nil {
		return err
	}
	noColor := !colorEnabled(pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor))
	noCache := pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache)
	output := pickString(findOpts.Output, lcfg.Output, gcfg.Output)
	if output == "" {
		output = "roots.txt"
	}
	refPath := pickString(findOpts.Reference, lcfg.Reference, gcfg.Reference)

	fp := cache.Fingerprint(cfgs)
	start := time.Now()
	var results []engine.Result
	cached := false
	if !noCache {
		results, cached = cache.Lookup(dir, fp)
	}
	if cached {
		log.Info("using cached results", slog.String("fingerprint", fp))
	} else {
		if len(cfgs) == 1 && !flagJSON {
			cfgs[0].Progress = progressPrinter(os.Stderr, cfgs[0].Roots)
		}
		results, err = engine.RunAll(cmd.Context(), cfgs)
	}

	hist := audit.NewLog(dir)
	if lerr := hist.LogRun(audit.CreateRunRecord(results, fp, cached, time.Since(start), err)); lerr != nil {
		log.Warn("history not written", slog.Any("error", lerr))
	}
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	if !cached && !noCache {
		if cerr := cache.SaveResults(dir, fp, results); cerr != nil {
			log.Warn("results not cached", slog.Any("error", cerr))
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case flagJSON:
		if err := report.WriteJSON(out, results); err != nil {
			return err
		}
	default:
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			opts := report.PrintOptions{NoColor: noColor, Footer: true}
			if findOpts.Table {
				report.PrintTable(out, res, opts)
			} else {
				report.PrintText(out, res, opts)
			}
		}
	}

	if err := compareReferences(out, results, entries, refPath, findOpts.Compare); err != nil {
		return err
	}
	if output != "-" {
		if err := report.WriteFile(output, results); err != nil {
			return err
		}
	}
	if findOpts.SaveReference != "" && len(results) > 0 {
		if err := report.SaveReference(findOpts.SaveReference, results[0].Function, results[0].Roots); err != nil {
			return fmt.Errorf("save reference: %w", err)
		}
	}

	if findOpts.FailOnDegraded && report.HasDegraded(results) {
		return errDegraded
	}
	return nil
}

// resolveConfigs selects the target functions and applies flag and file
// overrides on top of each function's defaults.
func resolveConfigs(o findOptions, changed func(string) bool, lcfg, gcfg config.FileConfig) ([]engine.Config, []functions.Entry, error) {
	patterns := pickString(o.Function, lcfg.Function, gcfg.Function)
	if patterns == "" {
		patterns = functions.Default
	}
	entries, err := functions.Match(patterns)
	if err != nil {
		return nil, nil, err
	}

	cfgs := make([]engine.Config, 0, len(entries))
	for _, e := range entries {
		c := engine.ForFunction(e)
		if v, ok := pickSet(changed("min"), o.DomainMin, lcfg.DomainMin, gcfg.DomainMin); ok {
			c.DomainMin = v
		}
		if v, ok := pickSet(changed("max"), o.DomainMax, lcfg.DomainMax, gcfg.DomainMax); ok {
			c.DomainMax = v
		}
		if v, ok := pickSet(changed("seed"), o.Seed, lcfg.Seed, gcfg.Seed); ok {
			c.Seed = v
		}
		if v := pickInt(o.Roots, lcfg.Roots, gcfg.Roots); v != 0 {
			c.Roots = v
		}
		if v := pickInt(o.IterationCap, lcfg.IterationCap, gcfg.IterationCap); v != 0 {
			c.IterationCap = v
		}
		if v := pickFloat(o.CoarseTolerance, lcfg.CoarseTolerance, gcfg.CoarseTolerance); v != 0 {
			c.CoarseTolerance = v
		}
		if v := pickFloat(o.FineTolerance, lcfg.FineTolerance, gcfg.FineTolerance); v != 0 {
			c.FineTolerance = v
		}
		if v := pickFloat(o.TruncationConstant, lcfg.TruncationConstant, gcfg.TruncationConstant); v != 0 {
			c.TruncationConstant = v
		}
		if v := pickString(o.Strategy, lcfg.Strategy, gcfg.Strategy); v != "" {
			c.Strategy = bracket.Strategy(v)
		}
		if v := pickInt(o.MaxResamples, lcfg.MaxResamples, gcfg.MaxResamples); v != 0 {
			c.MaxResamples = v
		}
		if v := pickInt(o.ScanSteps, lcfg.ScanSteps, gcfg.ScanSteps); v != 0 {
			c.ScanSteps = v
		}
		if v := pickFloat(o.MinSeparation, lcfg.MinSeparation, gcfg.MinSeparation); v != 0 {
			c.MinSeparation = v
		}
		if err := c.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		cfgs = append(cfgs, c)
	}
	return cfgs, entries, nil
}

// compareReferences prints the difference to known roots: from the reference
// file when given, else the catalog values when compare is set.
func compareReferences(w io.Writer, results []engine.Result, entries []functions.Entry, refPath string, compare bool) error {
	if refPath != "" {
		ref, err := report.LoadReference(refPath)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		for _, res := range results {
			if ref.Function == "" || ref.Function == res.Function {
				report.PrintComparison(w, res.Function, report.Compare(res.Roots, ref.Roots))
			}
		}
		return nil
	}
	if !compare {
		return nil
	}
	for i, res := range results {
		if i < len(entries) {
			report.PrintComparison(w, res.Function, report.Compare(res.Roots, entries[i].Known))
		}
	}
	return nil
}

// progressPrinter writes a running root count, like "[2/5] 40%".
func progressPrinter(w io.Writer, total int) func(types.RootRecord) {
	found := 0
	return func(types.RootRecord) {
		found++
		pct := float64(found) / float64(total) * 100
		_, _ = fmt.Fprintf(w, "\r[%d/%d] %.0f%%", found, total, pct)
		if found == total {
			_, _ = fmt.Fprintln(w)
		}
	}
}
