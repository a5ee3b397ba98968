package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogBijection(t *testing.T) {
	// every 6-line sequence resolves, and every identity appears exactly once
	seen := make(map[int]bool)
	for pattern := 0; pattern < 64; pattern++ {
		var lines [6]Line
		for i := 0; i < 6; i++ {
			lines[i] = Line(pattern>>i) & 1
		}
		h, err := HexagramFromLines(lines)
		require.NoError(t, err, "sequence %06b should be cataloged", pattern)
		require.False(t, seen[h.ID()], "identity %d resolved twice", h.ID())
		require.Equal(t, lines, h.Lines(), "lookup should preserve the lines")
		seen[h.ID()] = true
	}
	require.Len(t, seen, 64, "catalog should cover all 64 identities")
}

func TestCatalogAnchors(t *testing.T) {
	allYang, err := HexagramFromLines([6]Line{Yang, Yang, Yang, Yang, Yang, Yang})
	require.NoError(t, err)
	require.Equal(t, 1, allYang.ID(), "the all-yang figure is #1")
	require.Equal(t, Qian, allYang.Lower())
	require.Equal(t, Qian, allYang.Upper())

	// #2 differs from #1 only at line 0
	second, err := HexagramFromLines([6]Line{Yin, Yang, Yang, Yang, Yang, Yang})
	require.NoError(t, err)
	require.Equal(t, 2, second.ID())

	allYin, err := HexagramFromLines([6]Line{Yin, Yin, Yin, Yin, Yin, Yin})
	require.NoError(t, err)
	require.Equal(t, 64, allYin.ID(), "the all-yin figure is #64")
}

func TestHexagramFromLinesRejectsBadLines(t *testing.T) {
	_, err := HexagramFromLines([6]Line{0, 1, 2, 0, 1, 0})
	require.ErrorIs(t, err, ErrInvalidHexagramSpec)
}

func TestHexagramByID(t *testing.T) {
	for id := 1; id <= 64; id++ {
		h, err := HexagramByID(id)
		require.NoError(t, err)
		require.Equal(t, id, h.ID())
	}
	_, err := HexagramByID(0)
	require.ErrorIs(t, err, ErrInvalidHexagramSpec)
	_, err = HexagramByID(65)
	require.ErrorIs(t, err, ErrInvalidHexagramSpec)
}

func TestHexagramFromTrigrams(t *testing.T) {
	for _, lower := range Trigrams {
		for _, upper := range Trigrams {
			h := HexagramFromTrigrams(lower, upper)
			require.Equal(t, lower, h.Lower())
			require.Equal(t, upper, h.Upper())
		}
	}
}

func TestTrigramHelpers(t *testing.T) {
	require.Equal(t, 3, Qian.YangCount())
	require.Equal(t, 0, Kun.YangCount())
	require.Equal(t, 1, Qian.Polarity())
	require.Equal(t, -1, Kun.Polarity())
	require.Equal(t, -1, Kan.Polarity(), "single yang line is yin-majority")

	lines := Dui.Lines()
	got, err := TrigramFromLines(lines)
	require.NoError(t, err)
	require.Equal(t, Dui, got)

	_, err = TrigramFromLines([3]Line{0, 3, 1})
	require.ErrorIs(t, err, ErrInvalidHexagramSpec)
}

func TestWuxingCycles(t *testing.T) {
	require.True(t, Metal.Generates(Water))
	require.True(t, Water.Generates(Wood))
	require.False(t, Metal.Generates(Fire))

	require.True(t, Metal.Overcomes(Wood))
	require.True(t, Water.Overcomes(Fire))
	require.False(t, Water.Overcomes(Earth))
}
