// Package solver refines a bracket into a confirmed root with a secant phase
// on the deflated target followed by a bisection phase on the clean target.
// Both phases draw from one iteration budget per root.
package solver

import (
	"log/slog"
	"math"

	"github.com/rootfind/rootfind/internal/bracket"
	"github.com/rootfind/rootfind/internal/types"
)

// Defaults used when Params fields are zero.
const (
	DefaultIterationCap       = 40
	DefaultCoarseTolerance    = 1e-4
	DefaultFineTolerance      = 1e-10
	DefaultTruncationConstant = 5e-11
)

// Function is what the solver needs from the evaluator. Isolated reports
// whether no confirmed root lies inside [lo, hi].
type Function interface {
	Clean(x float64) float64
	Deflated(x float64) float64
	Isolated(lo, hi float64) bool
}

// Params are the per-run numeric constants.
type Params struct {
	IterationCap       int
	CoarseTolerance    float64
	FineTolerance      float64
	TruncationConstant float64
}

func (p Params) withDefaults() Params {
	if p.IterationCap <= 0 {
		p.IterationCap = DefaultIterationCap
	}
	if p.CoarseTolerance <= 0 {
		p.CoarseTolerance = DefaultCoarseTolerance
	}
	if p.FineTolerance <= 0 {
		p.FineTolerance = DefaultFineTolerance
	}
	if p.TruncationConstant <= 0 {
		p.TruncationConstant = DefaultTruncationConstant
	}
	return p
}

// budget is the single iteration counter shared by both phases.
type budget struct {
	cap  int
	used int
}

func (b *budget) spend() { b.used++ }

func (b *budget) exhausted() bool { return b.used >= b.cap }

// Solver turns brackets into root records.
type Solver struct {
	fn     Function
	params Params
	log    *slog.Logger
}

// New returns a Solver over fn. A nil logger discards diagnostics.
func New(fn Function, params Params, log *slog.Logger) *Solver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Solver{fn: fn, params: params.withDefaults(), log: log}
}

// Params returns the effective parameters after defaults are applied.
func (s *Solver) Params() Params { return s.params }

// Solve runs the secant phase on b and, once the deflated residual drops
// below the coarse tolerance, the bisection phase. It always returns a
// record; a record confirmed on budget exhaustion has StatusMaxIterations.
func (s *Solver) Solve(b bracket.Bracket) types.RootRecord {
	bud := &budget{cap: s.params.IterationCap}
	lower, upper := b.Lower, b.Upper
	estimate := lower + (upper-lower)/2

	for {
		bud.spend()
		flo := s.fn.Deflated(lower)
		fup := s.fn.Deflated(upper)
		// An endpoint that is an exact zero is the root.
		switch {
		case flo == 0:
			return s.confirm(lower, lower, lower, bud.used, 0, types.StatusConverged)
		case fup == 0:
			return s.confirm(upper, upper, upper, bud.used, 0, types.StatusConverged)
		}
		if finite(flo) && finite(fup) && fup != flo {
			estimate = -flo*(upper-lower)/(fup-flo) + lower
		} else {
			estimate = lower + (upper-lower)/2
		}
		fe := s.fn.Deflated(estimate)
		if math.Abs(fe) < s.params.CoarseTolerance {
			return s.bisect(lower, upper, estimate, bud)
		}
		if fe*flo < 0 {
			upper = estimate
		} else {
			lower = estimate
		}
		if bud.exhausted() {
			s.log.Warn("max iterations reached", "phase", "secant", "estimate", estimate, "iterations", bud.used)
			return s.confirm(estimate, lower, upper, bud.used, 0, types.StatusMaxIterations)
		}
	}
}

// bisect halves [lower, upper] until both ends are within the fine
// tolerance of the estimate or the shared budget is spent. Sign tests use
// the clean target once no confirmed root lies inside the bracket.
func (s *Solver) bisect(lower, upper, estimate float64, bud *budget) types.RootRecord {
	secant := bud.used
	for {
		if math.Abs(upper-estimate) < s.params.FineTolerance && math.Abs(lower-estimate) < s.params.FineTolerance {
			return s.confirm(estimate, lower, upper, secant, bud.used-secant, types.StatusConverged)
		}
		if bud.exhausted() {
			s.log.Warn("max iterations reached", "phase", "bisection", "estimate", estimate, "iterations", bud.used)
			return s.confirm(estimate, lower, upper, secant, bud.used-secant, types.StatusMaxIterations)
		}
		bud.spend()
		mid := (upper + lower) / 2
		eval := s.fn.Clean
		if !s.fn.Isolated(math.Min(lower, upper), math.Max(lower, upper)) {
			eval = s.fn.Deflated
		}
		fm := eval(mid)
		switch {
		case fm == 0:
			lower, upper = mid, mid
		case fm*eval(lower) < 0:
			upper = mid
		default:
			lower = mid
		}
		estimate = mid
	}
}

func (s *Solver) confirm(value, lower, upper float64, secant, bisection int, status types.Status) types.RootRecord {
	return types.RootRecord{
		Value:               value,
		LowerBound:          lower,
		UpperBound:          upper,
		FunctionAtRoot:      s.fn.Clean(value),
		SecantIterations:    secant,
		BisectionIterations: bisection,
		ErrorEstimate:       math.Abs(upper-lower)/2 + s.params.TruncationConstant,
		Confirmed:           true,
		Status:              status,
	}
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }
