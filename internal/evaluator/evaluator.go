// Package evaluator wraps a target function with an evaluation counter and
// the deflation used to hide roots that were already found.
package evaluator

import "math"

// Func is a continuous scalar function of one variable.
type Func func(x float64) float64

// Roots exposes the values of confirmed roots for deflation.
type Roots interface {
	Each(fn func(value float64))
}

// Evaluator counts every evaluation of its target. It is owned by a single
// search and is not safe for concurrent use.
type Evaluator struct {
	fn    Func
	roots Roots
	calls int64
}

// New returns an Evaluator for fn deflated by the roots in roots. A nil
// roots disables deflation.
func New(fn Func, roots Roots) *Evaluator {
	return &Evaluator{fn: fn, roots: roots}
}

// Clean evaluates the undeflated target.
func (e *Evaluator) Clean(x float64) float64 {
	e.calls++
	return e.fn(x)
}

// Deflated evaluates the target divided by (x - r) for every confirmed root r.
// At exactly a confirmed root the quotient is undefined and signed infinity
// is returned instead, positive when the remaining numerator is zero.
func (e *Evaluator) Deflated(x float64) float64 {
	e.calls++
	v := e.fn(x)
	if e.roots == nil {
		return v
	}
	singular := false
	e.roots.Each(func(r float64) {
		d := x - r
		if d == 0 {
			singular = true
			return
		}
		v /= d
	})
	if singular {
		if v < 0 {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	return v
}

// Isolated reports whether no confirmed root lies in [lo, hi]. It does not
// evaluate the target.
func (e *Evaluator) Isolated(lo, hi float64) bool {
	if e.roots == nil {
		return true
	}
	isolated := true
	e.roots.Each(func(r float64) {
		if r >= lo && r <= hi {
			isolated = false
		}
	})
	return isolated
}

// Calls is the number of evaluations made so far. It never decreases.
func (e *Evaluator) Calls() int64 { return e.calls }
