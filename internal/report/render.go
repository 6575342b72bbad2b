package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/rootfind/rootfind/internal/engine"
	"github.com/rootfind/rootfind/internal/types"
)

const separator = " _________________________________________________"

var (
	convergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	degradedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// PrintOptions controls styling and the summary footer of the renderers.
type PrintOptions struct {
	NoColor bool
	// Footer adds the duration and rejection summary after the roots.
	Footer bool
}

// PrintText writes one block per root in discovery order followed by the
// evaluation count line. The records are not modified.
func PrintText(w io.Writer, res engine.Result, opts PrintOptions) {
	name := label(res.Function)
	if len(res.Roots) == 0 {
		fmt.Fprintf(w, "No roots found for %s\n", name)
	}
	for _, r := range res.Roots {
		fmt.Fprintf(w, "\n Root found at %s(%.10e)=%.10e uncertainty=±%.10e \n", name, r.Value, r.FunctionAtRoot, r.ErrorEstimate)
		fmt.Fprintf(w, " iterations used by secant=%d, by bisection=%d", r.SecantIterations, r.BisectionIterations)
		if r.Degraded() {
			fmt.Fprintf(w, " (%s)", status(r.Status, opts.NoColor))
		}
		fmt.Fprintf(w, "\n%s", separator)
	}
	fmt.Fprintf(w, "\n No. of times %s evaluated = %d \n", name, res.Evaluations)
	if opts.Footer {
		footer(w, res)
	}
}

// PrintTable renders the roots as a bordered table.
func PrintTable(w io.Writer, res engine.Result, opts PrintOptions) {
	name := label(res.Function)
	if len(res.Roots) == 0 {
		fmt.Fprintf(w, "No roots found for %s\n", name)
	} else {
		fmt.Fprintf(w, "Roots of %s: %d\n", name, len(res.Roots))
		table := tablewriter.NewWriter(w)
		table.Header("#", "VALUE", "RESIDUAL", "UNCERTAINTY", "SECANT", "BISECTION", "STATUS")
		for i, r := range res.Roots {
			_ = table.Append([]string{
				strconv.Itoa(i + 1),
				strconv.FormatFloat(r.Value, 'e', 10, 64),
				strconv.FormatFloat(r.FunctionAtRoot, 'e', 3, 64),
				strconv.FormatFloat(r.ErrorEstimate, 'e', 3, 64),
				strconv.Itoa(r.SecantIterations),
				strconv.Itoa(r.BisectionIterations),
				status(r.Status, opts.NoColor),
			})
		}
		_ = table.Render()
	}
	fmt.Fprintf(w, "Evaluations: %d\n", res.Evaluations)
	if opts.Footer {
		footer(w, res)
	}
}

func footer(w io.Writer, res engine.Result) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Roots: %d (converged: %d, degraded: %d)\n", len(res.Roots), len(res.Roots)-res.Degraded(), res.Degraded())
	if res.Rejected > 0 {
		fmt.Fprintf(w, "Duplicates discarded: %d\n", res.Rejected)
	}
	if res.Duration > 0 {
		fmt.Fprintf(w, "Search duration: %.3fs\n", res.Duration.Seconds())
	}
}

func status(s types.Status, noColor bool) string {
	if noColor {
		return string(s)
	}
	if s == types.StatusMaxIterations {
		return degradedStyle.Render(string(s))
	}
	return convergedStyle.Render(string(s))
}

func label(fn string) string {
	if fn == "" {
		return "f"
	}
	return strings.ToUpper(fn[:1]) + fn[1:]
}

// Document is the JSON shape of one search.
type Document struct {
	Function    string             `json:"function"`
	Roots       []types.RootRecord `json:"roots"`
	Evaluations int64              `json:"evaluations"`
	Rejected    int                `json:"rejected,omitempty"`
	DurationMS  int64              `json:"duration_ms"`
}

// NewDocument converts a result into its JSON shape.
func NewDocument(res engine.Result) Document {
	roots := res.Roots
	if roots == nil {
		roots = []types.RootRecord{}
	}
	return Document{
		Function:    res.Function,
		Roots:       roots,
		Evaluations: res.Evaluations,
		Rejected:    res.Rejected,
		DurationMS:  res.Duration.Milliseconds(),
	}
}

// WriteJSON writes every result as an indented JSON array.
func WriteJSON(w io.Writer, results []engine.Result) error {
	docs := make([]Document, 0, len(results))
	for _, r := range results {
		docs = append(docs, NewDocument(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// WriteFile writes the plain text report of every result to path,
// replacing any previous content.
func WriteFile(path string, results []engine.Result) error {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		PrintText(&sb, r, PrintOptions{NoColor: true})
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// HasDegraded reports whether any result holds a root confirmed on
// iteration exhaustion.
func HasDegraded(results []engine.Result) bool {
	for _, r := range results {
		if r.Degraded() > 0 {
			return true
		}
	}
	return false
}

// Result converts a document back into an engine result.
func (d Document) Result() engine.Result {
	return engine.Result{
		Function:    d.Function,
		Roots:       d.Roots,
		Evaluations: d.Evaluations,
		Rejected:    d.Rejected,
		Duration:    time.Duration(d.DurationMS) * time.Millisecond,
	}
}
