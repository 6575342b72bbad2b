package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rootfind/rootfind/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_SaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ref.json")
	recs := []types.RootRecord{{Value: 7}, {Value: 2}, {Value: 4.5}}
	require.NoError(t, SaveReference(p, "cubic", recs))

	ref, err := LoadReference(p)
	require.NoError(t, err)
	assert.Equal(t, "cubic", ref.Function)
	assert.Equal(t, []float64{2, 4.5, 7}, ref.Roots)
	assert.Equal(t, 7.0, recs[0].Value)
}

func TestSaveReference_RejectsNaN(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ref.json")
	err := SaveReference(p, "j0", []types.RootRecord{{Value: math.NaN()}})
	require.Error(t, err)
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadReference_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadReference(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte("{roots"), 0o644))
	_, err = LoadReference(p)
	assert.ErrorContains(t, err, "parse reference")
}

func TestCompare(t *testing.T) {
	found := []types.RootRecord{{Value: 9.0000001}, {Value: 1}, {Value: 3.9999}}
	cmp := Compare(found, []float64{9, 4, 1})
	require.Len(t, cmp, 3)

	assert.Equal(t, 1.0, cmp[0].Known)
	assert.Equal(t, 1.0, cmp[0].Found)
	assert.Equal(t, 0.0, cmp[0].Difference)
	assert.Equal(t, 4.0, cmp[1].Known)
	assert.InDelta(t, -1e-4, cmp[1].Difference, 1e-12)
	assert.InDelta(t, 1e-7, cmp[2].Difference, 1e-12)
	for _, c := range cmp {
		assert.True(t, c.Matched)
	}
	assert.InDelta(t, 1e-4, MaxDifference(cmp), 1e-12)
}

func TestCompare_NothingFound(t *testing.T) {
	cmp := Compare(nil, []float64{2})
	require.Len(t, cmp, 1)
	assert.False(t, cmp[0].Matched)
	assert.True(t, math.IsNaN(cmp[0].Difference))
	assert.True(t, math.IsInf(MaxDifference(cmp), 1))
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	PrintComparison(&buf, "j0", Compare([]types.RootRecord{{Value: 2.5}}, []float64{2.5, 5.5}))
	out := buf.String()
	assert.Contains(t, out, "Reference roots of J0:")
	assert.Contains(t, out, "found 2.500000000000000  diff +0.000e+00")
	assert.Contains(t, out, "5.500000000000000  found 2.500000000000000  diff -3.000e+00")

	buf.Reset()
	PrintComparison(&buf, "j0", Compare(nil, []float64{5.5}))
	assert.Contains(t, buf.String(), "5.500000000000000  not found")

	buf.Reset()
	PrintComparison(&buf, "j0", nil)
	assert.Empty(t, buf.String())
}
