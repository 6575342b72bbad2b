// Package functions is the catalog of target functions the CLI can search,
// each with the domain and root count it is usually run with.
package functions

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/rootfind/rootfind/internal/evaluator"
)

// ErrUnknown is returned for names or patterns that match no catalog entry.
var ErrUnknown = errors.New("unknown function")

// Entry describes one target function.
type Entry struct {
	Name        string
	Description string
	Func        evaluator.Func
	DomainMin   float64
	DomainMax   float64
	Roots       int
	// Known holds published root values inside the default domain, if any.
	Known []float64
}

var catalog = map[string]Entry{
	"j0": {
		Name: "j0", Description: "Bessel function of the first kind, order zero",
		Func: math.J0, DomainMin: 0, DomainMax: 15, Roots: 5,
		Known: []float64{2.404825557695773, 5.520078110286311, 8.653727912911012, 11.791534439014282, 14.930917708487786},
	},
	"j1": {
		Name: "j1", Description: "Bessel function of the first kind, order one",
		Func: math.J1, DomainMin: 1, DomainMax: 15, Roots: 4,
		Known: []float64{3.8317059702075123, 7.015586669815619, 10.173468135062722, 13.323691936314223},
	},
	"y0": {
		Name: "y0", Description: "Bessel function of the second kind, order zero",
		Func: math.Y0, DomainMin: 0.5, DomainMax: 15, Roots: 5,
		Known: []float64{0.8935769662791675, 3.957678419314858, 7.086051060301773, 10.222345043496417, 13.361097473872763},
	},
	"sin": {
		Name: "sin", Description: "sin(x)",
		Func: math.Sin, DomainMin: 1, DomainMax: 10, Roots: 3,
		Known: []float64{math.Pi, 2 * math.Pi, 3 * math.Pi},
	},
	"cos": {
		Name: "cos", Description: "cos(x)",
		Func: math.Cos, DomainMin: 0, DomainMax: 10, Roots: 3,
		Known: []float64{math.Pi / 2, 3 * math.Pi / 2, 5 * math.Pi / 2},
	},
	"cubic": {
		Name: "cubic", Description: "(x-1)(x-4)(x-9)",
		Func:      func(x float64) float64 { return (x - 1) * (x - 4) * (x - 9) },
		DomainMin: 0, DomainMax: 10, Roots: 3,
		Known: []float64{1, 4, 9},
	},
	"linear": {
		Name: "linear", Description: "x-5",
		Func:      func(x float64) float64 { return x - 5 },
		DomainMin: 0, DomainMax: 10, Roots: 1,
		Known: []float64{5},
	},
	"positive": {
		Name: "positive", Description: "x^2+1, no real roots",
		Func:      func(x float64) float64 { return x*x + 1 },
		DomainMin: 0, DomainMax: 10, Roots: 1,
	},
}

// Default is the function searched when none is configured.
const Default = "j0"

// Lookup returns the entry registered under name.
func Lookup(name string) (Entry, error) {
	e, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return e, nil
}

// Names returns all catalog names sorted.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Match resolves a comma-separated list of names or glob patterns (e.g.
// "j*,sin") to catalog entries in name order. Every pattern must match.
func Match(patterns string) ([]Entry, error) {
	seen := map[string]bool{}
	for _, p := range strings.Split(patterns, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid function pattern %q", p)
		}
		matched := false
		for _, name := range Names() {
			if ok, _ := doublestar.Match(p, name); ok {
				seen[name] = true
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: %q", ErrUnknown, p)
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrUnknown)
	}
	var out []Entry
	for _, name := range Names() {
		if seen[name] {
			out = append(out, catalog[name])
		}
	}
	return out, nil
}
