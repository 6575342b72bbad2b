package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rootfind/rootfind/internal/bracket"
	"github.com/rootfind/rootfind/internal/evaluator"
	"github.com/rootfind/rootfind/internal/functions"
	"github.com/rootfind/rootfind/internal/logging"
	"github.com/rootfind/rootfind/internal/registry"
	"github.com/rootfind/rootfind/internal/solver"
	"github.com/rootfind/rootfind/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig is returned by Run for configurations that cannot be searched.
var ErrInvalidConfig = errors.New("invalid engine config")

// ErrDuplicates is returned when the solver keeps reconverging onto roots
// that were already confirmed.
var ErrDuplicates = errors.New("too many duplicate roots")

// DefaultMinSeparation is the distance under which a new root is treated as
// a rediscovery of a confirmed one.
const DefaultMinSeparation = 1e-6

// DefaultMaxRejections bounds how many duplicates are discarded per run.
const DefaultMaxRejections = 100

// Config controls one search: the target, the domain, how many roots to find
// and the numeric constants of the solver.
type Config struct {
	Function           string
	Func               evaluator.Func
	DomainMin          float64
	DomainMax          float64
	Roots              int
	IterationCap       int
	CoarseTolerance    float64
	FineTolerance      float64
	TruncationConstant float64

	Strategy      bracket.Strategy
	MaxResamples  int
	ScanSteps     int
	Seed          uint64
	MinSeparation float64
	MaxRejections int

	// Progress is called after each root is confirmed.
	Progress func(types.RootRecord)
}

// ForFunction returns a Config with the catalog entry's domain and root
// count and the default solver constants.
func ForFunction(e functions.Entry) Config {
	return Config{
		Function:           e.Name,
		Func:               e.Func,
		DomainMin:          e.DomainMin,
		DomainMax:          e.DomainMax,
		Roots:              e.Roots,
		IterationCap:       solver.DefaultIterationCap,
		CoarseTolerance:    solver.DefaultCoarseTolerance,
		FineTolerance:      solver.DefaultFineTolerance,
		TruncationConstant: solver.DefaultTruncationConstant,
		Strategy:           bracket.StrategyRandom,
		MaxResamples:       bracket.DefaultMaxResamples,
		ScanSteps:          bracket.DefaultScanSteps,
		MinSeparation:      DefaultMinSeparation,
		MaxRejections:      DefaultMaxRejections,
	}
}

// Validate reports the first problem that would prevent a search.
func (c Config) Validate() error {
	switch {
	case c.Func == nil:
		return fmt.Errorf("%w: no target function", ErrInvalidConfig)
	case math.IsNaN(c.DomainMin) || math.IsNaN(c.DomainMax) || math.IsInf(c.DomainMin, 0) || math.IsInf(c.DomainMax, 0):
		return fmt.Errorf("%w: domain must be finite", ErrInvalidConfig)
	case c.DomainMin >= c.DomainMax:
		return fmt.Errorf("%w: domain [%g, %g] is empty", ErrInvalidConfig, c.DomainMin, c.DomainMax)
	case c.Roots <= 0:
		return fmt.Errorf("%w: root count must be positive, got %d", ErrInvalidConfig, c.Roots)
	case c.IterationCap < 0:
		return fmt.Errorf("%w: iteration cap must not be negative", ErrInvalidConfig)
	case c.Strategy != "" && c.Strategy != bracket.StrategyRandom && c.Strategy != bracket.StrategyScan:
		return fmt.Errorf("%w: unknown bracket strategy %q", ErrInvalidConfig, c.Strategy)
	}
	return nil
}

// Result holds the confirmed roots in discovery order and run statistics.
type Result struct {
	Function    string
	Roots       []types.RootRecord
	Evaluations int64
	Duration    time.Duration
	Rejected    int
}

// Degraded counts roots confirmed on iteration exhaustion.
func (r Result) Degraded() int {
	n := 0
	for _, rec := range r.Roots {
		if rec.Degraded() {
			n++
		}
	}
	return n
}

// Run searches for cfg.Roots roots. Each root starts from the full domain
// as the initial bracket; after a duplicate the finder draws fresh
// candidates instead. On failure the roots confirmed so far are returned
// along with the error.
func Run(ctx context.Context, cfg Config) (Result, error) {
	result := Result{Function: cfg.Function}
	if err := cfg.Validate(); err != nil {
		return result, err
	}
	if cfg.MinSeparation <= 0 {
		cfg.MinSeparation = DefaultMinSeparation
	}
	if cfg.MaxRejections <= 0 {
		cfg.MaxRejections = DefaultMaxRejections
	}

	log := logging.New("engine").With("function", cfg.Function)
	start := time.Now()

	reg := registry.New(cfg.Roots)
	ev := evaluator.New(cfg.Func, reg)
	finder := bracket.NewFinder(ev, bracket.Config{
		DomainMin:    cfg.DomainMin,
		DomainMax:    cfg.DomainMax,
		Strategy:     cfg.Strategy,
		MaxResamples: cfg.MaxResamples,
		ScanSteps:    cfg.ScanSteps,
		Seed:         cfg.Seed,
	})
	slv := solver.New(ev, solver.Params{
		IterationCap:       cfg.IterationCap,
		CoarseTolerance:    cfg.CoarseTolerance,
		FineTolerance:      cfg.FineTolerance,
		TruncationConstant: cfg.TruncationConstant,
	}, logging.New("solver").With("function", cfg.Function))

	finish := func(err error) (Result, error) {
		result.Roots = reg.Confirmed()
		result.Evaluations = ev.Calls()
		result.Duration = time.Since(start)
		return result, err
	}

	fresh := true
	for !reg.Full() {
		var (
			b   bracket.Bracket
			err error
		)
		if fresh {
			b, err = finder.Find(ctx, cfg.DomainMin, cfg.DomainMax)
		} else {
			b, err = finder.Next(ctx)
		}
		if err != nil {
			return finish(fmt.Errorf("root %d of %d: %w", reg.Count()+1, cfg.Roots, err))
		}

		rec := slv.Solve(b)
		if dup, ok := nearest(reg, rec.Value, cfg.MinSeparation); ok {
			result.Rejected++
			log.Debug("discarded rediscovered root", "value", rec.Value, "confirmed", dup)
			if result.Rejected > cfg.MaxRejections {
				return finish(fmt.Errorf("%w: %d rejected", ErrDuplicates, result.Rejected))
			}
			fresh = false
			continue
		}
		fresh = true

		if err := reg.Record(rec); err != nil {
			return finish(err)
		}
		log.Debug("root confirmed",
			slog.Float64("value", rec.Value),
			slog.Float64("error", rec.ErrorEstimate),
			slog.Int("secant", rec.SecantIterations),
			slog.Int("bisection", rec.BisectionIterations),
			slog.String("status", string(rec.Status)),
		)
		if cfg.Progress != nil {
			cfg.Progress(rec)
		}
	}
	return finish(nil)
}

// RunAll runs independent searches concurrently. Each search owns its
// evaluator and registry, so nothing is shared between them. Results are
// returned in the order of cfgs.
func RunAll(ctx context.Context, cfgs []Config) ([]Result, error) {
	results := make([]Result, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := Run(gctx, cfg)
			results[i] = res
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.Function, err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func nearest(reg *registry.Registry, value, sep float64) (float64, bool) {
	var (
		hit   float64
		found bool
	)
	reg.Each(func(r float64) {
		if !found && math.Abs(r-value) < sep {
			hit, found = r, true
		}
	})
	return hit, found
}
