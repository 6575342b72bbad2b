package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	e, err := Lookup(" J0 ")
	require.NoError(t, err)
	assert.Equal(t, "j0", e.Name)
	assert.Equal(t, 5, e.Roots)
	assert.Len(t, e.Known, e.Roots)

	_, err = Lookup("gamma")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns string
		expected []string
	}{
		{name: "single", patterns: "sin", expected: []string{"sin"}},
		{name: "glob", patterns: "j*", expected: []string{"j0", "j1"}},
		{name: "mixed and deduplicated", patterns: "j0, j*, cos", expected: []string{"cos", "j0", "j1"}},
		{name: "character class", patterns: "[jy]0", expected: []string{"j0", "y0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Match(tt.patterns)
			require.NoError(t, err)
			var names []string
			for _, e := range entries {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestMatch_Errors(t *testing.T) {
	_, err := Match("nothing*")
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = Match(" , ")
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = Match("[j")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid function pattern")
}

func TestKnownRootsAreRoots(t *testing.T) {
	for _, name := range Names() {
		e, err := Lookup(name)
		require.NoError(t, err)
		for _, r := range e.Known {
			assert.GreaterOrEqual(t, r, e.DomainMin, name)
			assert.LessOrEqual(t, r, e.DomainMax, name)
			assert.Less(t, math.Abs(e.Func(r)), 1e-12, "%s(%v)", name, r)
		}
	}
}
