// Package bracket finds intervals over which the deflated target changes sign.
package bracket

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrNoBracket is returned when no sign change was found within the resample budget.
var ErrNoBracket = errors.New("bracket not found")

// Strategy selects how new candidate endpoints are drawn.
type Strategy string

const (
	// StrategyRandom draws both endpoints uniformly from the domain.
	StrategyRandom Strategy = "random"
	// StrategyScan walks the domain in fixed steps and stops at the first sign change.
	StrategyScan Strategy = "scan"
)

// DefaultMaxResamples bounds the random strategy when Config.MaxResamples is zero.
const DefaultMaxResamples = 10000

// DefaultScanSteps is the number of cells the scan strategy divides the domain into.
const DefaultScanSteps = 1000

// Function is the deflated view of the target used for sign tests.
type Function interface {
	Deflated(x float64) float64
}

// Config controls the search domain and the resampling budget.
type Config struct {
	DomainMin    float64
	DomainMax    float64
	Strategy     Strategy
	MaxResamples int
	ScanSteps    int
	Seed         uint64
}

// Bracket is an interval whose endpoints have opposite (or zero) sign.
type Bracket struct {
	Lower     float64
	Upper     float64
	Resamples int
}

// Width is the absolute width of the interval.
func (b Bracket) Width() float64 {
	if b.Upper > b.Lower {
		return b.Upper - b.Lower
	}
	return b.Lower - b.Upper
}

// Finder looks for brackets of a single function. The random source is
// seeded once so successive calls draw a reproducible sequence.
type Finder struct {
	cfg  Config
	fn   Function
	rng  *rand.Rand
	cell int
}

// NewFinder returns a Finder over fn. Zero budgets take their defaults.
func NewFinder(fn Function, cfg Config) *Finder {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyRandom
	}
	if cfg.MaxResamples <= 0 {
		cfg.MaxResamples = DefaultMaxResamples
	}
	if cfg.ScanSteps <= 0 {
		cfg.ScanSteps = DefaultScanSteps
	}
	return &Finder{
		cfg: cfg,
		fn:  fn,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Find returns (lower, upper) unchanged when it already brackets a sign
// change, and otherwise draws new candidates according to the strategy.
func (f *Finder) Find(ctx context.Context, lower, upper float64) (Bracket, error) {
	if f.changesSign(lower, upper) {
		return Bracket{Lower: lower, Upper: upper}, nil
	}
	return f.Next(ctx)
}

// Next skips the initial pair and draws candidates directly. The scan
// strategy resumes after the last cell it returned; cells it already passed
// cannot regain a sign change when more roots are deflated.
func (f *Finder) Next(ctx context.Context) (Bracket, error) {
	switch f.cfg.Strategy {
	case StrategyScan:
		return f.scan(ctx)
	case StrategyRandom:
		return f.resample(ctx)
	default:
		return Bracket{}, fmt.Errorf("unknown bracket strategy %q", f.cfg.Strategy)
	}
}

func (f *Finder) resample(ctx context.Context) (Bracket, error) {
	span := f.cfg.DomainMax - f.cfg.DomainMin
	for n := 1; n <= f.cfg.MaxResamples; n++ {
		if err := ctx.Err(); err != nil {
			return Bracket{}, err
		}
		lo := f.cfg.DomainMin + f.rng.Float64()*span
		hi := f.cfg.DomainMin + f.rng.Float64()*span
		if lo > hi {
			lo, hi = hi, lo
		}
		if f.changesSign(lo, hi) {
			return Bracket{Lower: lo, Upper: hi, Resamples: n}, nil
		}
	}
	return Bracket{}, fmt.Errorf("%w after %d resamples in [%g, %g]", ErrNoBracket, f.cfg.MaxResamples, f.cfg.DomainMin, f.cfg.DomainMax)
}

func (f *Finder) scan(ctx context.Context) (Bracket, error) {
	steps := f.cfg.ScanSteps
	h := (f.cfg.DomainMax - f.cfg.DomainMin) / float64(steps)
	at := func(i int) float64 {
		if i == steps {
			return f.cfg.DomainMax
		}
		return f.cfg.DomainMin + float64(i)*h
	}
	lo := at(f.cell)
	flo := f.fn.Deflated(lo)
	for n := 1; f.cell < steps && n <= f.cfg.MaxResamples; n++ {
		if err := ctx.Err(); err != nil {
			return Bracket{}, err
		}
		f.cell++
		hi := at(f.cell)
		fhi := f.fn.Deflated(hi)
		if straddles(flo, fhi) {
			return Bracket{Lower: lo, Upper: hi, Resamples: n}, nil
		}
		lo, flo = hi, fhi
	}
	return Bracket{}, fmt.Errorf("%w after scanning %d cells of [%g, %g]", ErrNoBracket, f.cell, f.cfg.DomainMin, f.cfg.DomainMax)
}

func (f *Finder) changesSign(lo, hi float64) bool {
	return straddles(f.fn.Deflated(lo), f.fn.Deflated(hi))
}

// straddles reports a sign change between two finite values. An infinite
// value marks a confirmed root, which is not a bracket of a new one.
func straddles(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a*b <= 0
}
