package bracket

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rootfind/rootfind/internal/evaluator"
	"github.com/rootfind/rootfind/internal/registry"
	"github.com/rootfind/rootfind/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRoots(x float64) float64 { return (x - 2) * (x - 7) }

func TestFind_InitialPairAlreadyBrackets(t *testing.T) {
	ev := evaluator.New(func(x float64) float64 { return x - 5 }, nil)
	f := NewFinder(ev, Config{DomainMin: 0, DomainMax: 10})

	b, err := f.Find(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, Bracket{Lower: 0, Upper: 10}, b)
	assert.Equal(t, int64(2), ev.Calls())
}

func TestFind_RandomResampleFindsSignChange(t *testing.T) {
	ev := evaluator.New(twoRoots, nil)
	f := NewFinder(ev, Config{DomainMin: 0, DomainMax: 10, Seed: 42})

	b, err := f.Find(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, twoRoots(b.Lower)*twoRoots(b.Upper), 0.0)
	assert.LessOrEqual(t, b.Lower, b.Upper)
	assert.GreaterOrEqual(t, b.Lower, 0.0)
	assert.LessOrEqual(t, b.Upper, 10.0)
	assert.Greater(t, b.Resamples, 0)
}

func TestFind_RandomIsReproducible(t *testing.T) {
	run := func() Bracket {
		f := NewFinder(evaluator.New(twoRoots, nil), Config{DomainMin: 0, DomainMax: 10, Seed: 7})
		b, err := f.Find(context.Background(), 0, 10)
		require.NoError(t, err)
		return b
	}
	assert.Equal(t, run(), run())
}

func TestFind_NoSignChangeIsBounded(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
	}{
		{name: "random", strategy: StrategyRandom},
		{name: "scan", strategy: StrategyScan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := evaluator.New(func(x float64) float64 { return x*x + 1 }, nil)
			f := NewFinder(ev, Config{DomainMin: 0, DomainMax: 10, Strategy: tt.strategy, MaxResamples: 100, ScanSteps: 50})

			_, err := f.Find(context.Background(), 0, 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoBracket))
		})
	}
}

func TestFind_RandomCountsEvaluations(t *testing.T) {
	ev := evaluator.New(func(x float64) float64 { return 1 }, nil)
	f := NewFinder(ev, Config{DomainMin: 0, DomainMax: 10, MaxResamples: 25})
	_, err := f.Find(context.Background(), 0, 10)
	require.ErrorIs(t, err, ErrNoBracket)
	assert.Equal(t, int64(2+2*25), ev.Calls())
}

func TestNext_ScanResumesAfterLastCell(t *testing.T) {
	ev := evaluator.New(twoRoots, nil)
	f := NewFinder(ev, Config{DomainMin: 0, DomainMax: 10, Strategy: StrategyScan, ScanSteps: 8})

	first, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.25, first.Lower)
	assert.Equal(t, 2.5, first.Upper)
	assert.Equal(t, 2, first.Resamples)

	second, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6.25, second.Lower)
	assert.Equal(t, 7.5, second.Upper)

	_, err = f.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoBracket)
}

func TestFind_ConfirmedRootIsNotABracket(t *testing.T) {
	reg := registry.New(2)
	require.NoError(t, reg.Record(types.RootRecord{Value: 0}))
	ev := evaluator.New(math.Sin, reg)
	f := NewFinder(ev, Config{DomainMin: 0, DomainMax: 10, Strategy: StrategyScan, ScanSteps: 10})

	b, err := f.Find(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 3.0, b.Lower)
	assert.Equal(t, 4.0, b.Upper)
}

func TestStraddles(t *testing.T) {
	assert.True(t, straddles(-1, 1))
	assert.True(t, straddles(0, 1))
	assert.False(t, straddles(1, 2))
	assert.False(t, straddles(math.Inf(1), -1))
	assert.False(t, straddles(-1, math.Inf(-1)))
	assert.False(t, straddles(math.NaN(), -1))
}

func TestFind_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewFinder(evaluator.New(func(float64) float64 { return 1 }, nil), Config{DomainMin: 0, DomainMax: 1})
	_, err := f.Find(ctx, 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFind_UnknownStrategy(t *testing.T) {
	f := NewFinder(evaluator.New(twoRoots, nil), Config{DomainMin: 0, DomainMax: 10, Strategy: "grid"})
	_, err := f.Find(context.Background(), 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown bracket strategy")
}

func TestBracket_Width(t *testing.T) {
	assert.Equal(t, 3.0, Bracket{Lower: 1, Upper: 4}.Width())
	assert.Equal(t, 3.0, Bracket{Lower: 4, Upper: 1}.Width())
}
