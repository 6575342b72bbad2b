package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rootfind/rootfind/internal/engine"
	"github.com/rootfind/rootfind/internal/functions"
	"github.com/rootfind/rootfind/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFor(t *testing.T, name string) engine.Config {
	t.Helper()
	e, err := functions.Lookup(name)
	require.NoError(t, err)
	return engine.ForFunction(e)
}

func TestFingerprint(t *testing.T) {
	j0 := configFor(t, "j0")
	base := Fingerprint([]engine.Config{j0})
	assert.Equal(t, base, Fingerprint([]engine.Config{configFor(t, "j0")}))

	changed := []func(c *engine.Config){
		func(c *engine.Config) { c.Seed = 1 },
		func(c *engine.Config) { c.Roots = 4 },
		func(c *engine.Config) { c.IterationCap = 41 },
		func(c *engine.Config) { c.FineTolerance = 1e-9 },
		func(c *engine.Config) { c.DomainMax = 14 },
		func(c *engine.Config) { c.Strategy = "scan" },
		func(c *engine.Config) { c.Function = "j1" },
	}
	for i, mut := range changed {
		c := configFor(t, "j0")
		mut(&c)
		assert.NotEqual(t, base, Fingerprint([]engine.Config{c}), "mutation %d", i)
	}

	sin := configFor(t, "sin")
	assert.NotEqual(t,
		Fingerprint([]engine.Config{j0, sin}),
		Fingerprint([]engine.Config{sin, j0}))
}

func TestSaveLoadResults(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadResults(dir); err == nil {
		t.Fatal("expected error before anything was saved")
	}
	res := []engine.Result{{
		Function:    "linear",
		Roots:       []types.RootRecord{{Value: 5, LowerBound: 5, UpperBound: 5, SecantIterations: 1, BisectionIterations: 1, ErrorEstimate: 5e-11, Confirmed: true, Status: types.StatusConverged}},
		Evaluations: 7,
		Duration:    3 * time.Millisecond,
	}}
	require.NoError(t, SaveResults(dir, "abc", res))
	if _, err := os.Stat(filepath.Join(dir, ".rootfind_last_run.json")); err != nil {
		t.Fatalf("results file not written: %v", err)
	}

	rr, err := LoadResults(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc", rr.Fingerprint)
	if diff := cmp.Diff(res, rr.Engine()); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	got, ok := Lookup(dir, "abc")
	assert.True(t, ok)
	assert.Len(t, got, 1)
	_, ok = Lookup(dir, "other")
	assert.False(t, ok)
}

func TestLoadResults_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rootfind_last_run.json"), []byte("{"), 0o644))
	_, err := LoadResults(dir)
	assert.Error(t, err)
	_, ok := Lookup(dir, "")
	assert.False(t, ok)
}
