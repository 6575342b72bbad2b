package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/rootfind/rootfind/internal/types"
)

// Reference lists known roots of a function.
type Reference struct {
	Function string    `json:"function"`
	Roots    []float64 `json:"roots"`
}

// LoadReference reads a reference file written by SaveReference.
func LoadReference(path string) (Reference, error) {
	var ref Reference
	b, err := os.ReadFile(path)
	if err != nil {
		return ref, err
	}
	if err := json.Unmarshal(b, &ref); err != nil {
		return ref, fmt.Errorf("parse reference %s: %w", path, err)
	}
	return ref, nil
}

// SaveReference stores the values of the given records, sorted, as the
// reference for function.
func SaveReference(path, function string, roots []types.RootRecord) error {
	ref := Reference{Function: function, Roots: make([]float64, 0, len(roots))}
	for _, r := range roots {
		ref.Roots = append(ref.Roots, r.Value)
	}
	sort.Float64s(ref.Roots)
	buf, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Comparison pairs a known root with the nearest found root.
type Comparison struct {
	Known      float64 `json:"known"`
	Found      float64 `json:"found"`
	Difference float64 `json:"difference"`
	// Matched is false when nothing was found.
	Matched bool `json:"matched"`
}

// Compare matches every known root to the nearest found root, in ascending
// order of the known roots. The inputs are not modified.
func Compare(found []types.RootRecord, known []float64) []Comparison {
	ks := append([]float64(nil), known...)
	sort.Float64s(ks)
	out := make([]Comparison, 0, len(ks))
	for _, k := range ks {
		c := Comparison{Known: k, Difference: math.NaN()}
		best := math.Inf(1)
		for _, r := range found {
			if d := math.Abs(r.Value - k); d < best {
				best = d
				c.Found = r.Value
				c.Difference = r.Value - k
				c.Matched = true
			}
		}
		out = append(out, c)
	}
	return out
}

// MaxDifference is the largest absolute difference among matched
// comparisons, or +Inf if a known root went unmatched.
func MaxDifference(cmp []Comparison) float64 {
	m := 0.0
	for _, c := range cmp {
		if !c.Matched {
			return math.Inf(1)
		}
		m = math.Max(m, math.Abs(c.Difference))
	}
	return m
}

// PrintComparison writes one line per known root.
func PrintComparison(w io.Writer, function string, cmp []Comparison) {
	if len(cmp) == 0 {
		return
	}
	fmt.Fprintf(w, "\nReference roots of %s:\n", label(function))
	for _, c := range cmp {
		if !c.Matched {
			fmt.Fprintf(w, "  %.15f  not found\n", c.Known)
			continue
		}
		fmt.Fprintf(w, "  %.15f  found %.15f  diff %+.3e\n", c.Known, c.Found, c.Difference)
	}
}
