package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rootfind/rootfind/internal/engine"
	"github.com/rootfind/rootfind/internal/report"
)

// RunResults stores the outcome of the last find command.
type RunResults struct {
	Fingerprint string            `json:"fingerprint"`
	Timestamp   time.Time         `json:"timestamp"`
	Results     []report.Document `json:"results"`
}

// Engine returns the stored results as engine results.
func (r RunResults) Engine() []engine.Result {
	out := make([]engine.Result, 0, len(r.Results))
	for _, d := range r.Results {
		out = append(out, d.Result())
	}
	return out
}

func resultsPath(dir string) string {
	return filepath.Join(dir, ".rootfind_last_run.json")
}

// SaveResults saves the results of a run under dir.
func SaveResults(dir, fingerprint string, results []engine.Result) error {
	docs := make([]report.Document, 0, len(results))
	for _, r := range results {
		docs = append(docs, report.NewDocument(r))
	}
	b, err := json.MarshalIndent(RunResults{
		Fingerprint: fingerprint,
		Timestamp:   time.Now(),
		Results:     docs,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resultsPath(dir), b, 0644)
}

// LoadResults loads the last run results from dir.
func LoadResults(dir string) (RunResults, error) {
	var results RunResults
	f, err := os.ReadFile(resultsPath(dir))
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}

// Lookup returns the cached results when they were produced by the same
// inputs.
func Lookup(dir, fingerprint string) ([]engine.Result, bool) {
	rr, err := LoadResults(dir)
	if err != nil || rr.Fingerprint != fingerprint {
		return nil, false
	}
	return rr.Engine(), true
}
