package rootfind

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rootfind/rootfind/internal/bracket"
	"github.com/rootfind/rootfind/internal/config"
	"github.com/rootfind/rootfind/internal/engine"
	"github.com/rootfind/rootfind/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickHelpers(t *testing.T) {
	l, g := "local", "global"
	assert.Equal(t, "cli", pickString("cli", &l, &g))
	assert.Equal(t, "local", pickString("", &l, &g))
	assert.Equal(t, "global", pickString("", nil, &g))
	assert.Equal(t, "", pickString("", nil, nil))

	li, gi := 3, 4
	assert.Equal(t, 2, pickInt(2, &li, &gi))
	assert.Equal(t, 4, pickInt(0, nil, &gi))

	f := false
	assert.False(t, pickBool(false, &f, nil))
	assert.True(t, pickBool(true, &f, nil))

	zero, five := 0.0, 5.0
	v, ok := pickSet(false, 9.0, &zero, &five)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	v, ok = pickSet(true, 0.0, &five, nil)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	_, ok = pickSet[float64](false, 0, nil, nil)
	assert.False(t, ok)
}

func TestResolveConfigs(t *testing.T) {
	none := func(string) bool { return false }

	cfgs, entries, err := resolveConfigs(findOptions{}, none, config.FileConfig{}, config.FileConfig{})
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, "j0", entries[0].Name)
	assert.Equal(t, 0.0, cfgs[0].DomainMin)
	assert.Equal(t, 15.0, cfgs[0].DomainMax)
	assert.Equal(t, 5, cfgs[0].Roots)
	assert.Equal(t, 40, cfgs[0].IterationCap)

	lo, itCap, strategy := 5.0, 12, "scan"
	local := config.FileConfig{DomainMin: &lo, IterationCap: &itCap}
	global := config.FileConfig{Strategy: &strategy, IterationCap: new(int)}
	opts := findOptions{Function: "sin,cos", DomainMax: 0, Roots: 2}
	changed := func(name string) bool { return name == "max" }
	_, _, err = resolveConfigs(opts, changed, local, global)
	require.ErrorIs(t, err, engine.ErrInvalidConfig, "explicit --max 0 is below the local domain_min")

	opts.DomainMax = 20
	cfgs, entries, err = resolveConfigs(opts, changed, local, global)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "cos", entries[0].Name)
	for _, c := range cfgs {
		assert.Equal(t, 5.0, c.DomainMin)
		assert.Equal(t, 20.0, c.DomainMax)
		assert.Equal(t, 2, c.Roots)
		assert.Equal(t, 12, c.IterationCap)
		assert.Equal(t, bracket.StrategyScan, c.Strategy)
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := progressPrinter(&buf, 2)
	p(types.RootRecord{})
	p(types.RootRecord{})
	assert.Equal(t, "\r[1/2] 50%\r[2/2] 100%\n", buf.String())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "01234567", shortID("0123456789abcdef"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestResolveConfigs_RejectsUnknownStrategy(t *testing.T) {
	none := func(string) bool { return false }
	_, _, err := resolveConfigs(findOptions{Function: "linear", Strategy: "bogus"}, none, config.FileConfig{}, config.FileConfig{})
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	assert.ErrorContains(t, err, "linear:")
}

func TestStateDir(t *testing.T) {
	old := flagDir
	t.Cleanup(func() { flagDir = old })

	flagDir = "state"
	dir, err := stateDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "state", filepath.Base(dir))
}
