package match

import (
	"testing"

	"github.com/peco/flash/viewport"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	t.Parallel()
	require.Equal(t, int64(DistanceOffset), Distance(pos(3, 4), pos(3, 4)))
	require.Equal(t, int64(1000+4+DistanceOffset), Distance(pos(3, 4), pos(4, 6)))
	require.Equal(t, int64(1000+4+DistanceOffset), Distance(pos(4, 6), pos(3, 4)))
}

func TestRankNearestFirst(t *testing.T) {
	t.Parallel()
	matches := []Match{
		{View: "a", Start: pos(10, 0)},
		{View: "a", Start: pos(1, 0)},
		{View: "a", Start: pos(0, 9)},
		{View: "a", Start: pos(0, 2)},
	}
	ranked := Rank(matches, pos(0, 0), "a")
	require.Equal(t, []viewport.Position{pos(0, 2), pos(0, 9), pos(1, 0), pos(10, 0)}, starts(ranked))
	// input is untouched
	require.Equal(t, pos(10, 0), matches[0].Start)
}

func TestRankDropsSelfMatch(t *testing.T) {
	t.Parallel()
	matches := []Match{
		{View: "a", Start: pos(0, 0)},
		{View: "a", Start: pos(1, 0)},
		{View: "a", Start: pos(1, 0)},
	}
	ranked := Rank(matches, pos(1, 0), "a")
	require.Equal(t, []viewport.Position{pos(0, 0)}, starts(ranked))
	for _, m := range ranked {
		require.NotEqual(t, int64(DistanceOffset), Distance(pos(1, 0), m.Start))
	}
}

func TestRankKeepsCursorPositionInOtherViews(t *testing.T) {
	t.Parallel()
	matches := []Match{{View: "b", Start: pos(1, 0)}}
	ranked := Rank(matches, pos(1, 0), "a")
	require.Len(t, ranked, 1)
}

func TestRankSameViewFirst(t *testing.T) {
	t.Parallel()
	matches := []Match{
		{View: "b", Start: pos(0, 1)},
		{View: "a", Start: pos(5, 80)},
		{View: "b", Start: pos(0, 0)},
		{View: "a", Start: pos(2, 0)},
	}
	ranked := Rank(matches, pos(0, 0), "a")
	require.Equal(t, []Match{
		{View: "a", Start: pos(2, 0)},
		{View: "a", Start: pos(5, 80)},
		{View: "b", Start: pos(0, 0)},
		{View: "b", Start: pos(0, 1)},
	}, ranked)
}

func TestRankStableTies(t *testing.T) {
	t.Parallel()
	matches := []Match{
		{View: "a", Start: pos(1, 0), End: pos(1, 1)},
		{View: "a", Start: pos(1, 0), End: pos(1, 2)},
		{View: "a", Start: pos(0, 5), End: pos(0, 6)},
		{View: "a", Start: pos(0, 1), End: pos(0, 2)},
	}
	// cursor at (0,3): (0,5) and (0,1) tie, as do the two (1,0)
	ranked := Rank(matches, pos(0, 3), "a")
	require.Equal(t, []Match{matches[2], matches[3], matches[0], matches[1]}, ranked)
}

func TestRankScenario(t *testing.T) {
	t.Parallel()
	v := activeView("foo bar\nfoo baz")
	v.Cursor = pos(0, 4)
	c := collect(NewSubstring("foo", false), v)
	require.Equal(t, []viewport.Position{pos(0, 0), pos(1, 0)}, starts(c.Matches()))

	ranked := Rank(c.Matches(), v.Cursor, v.ID)
	require.Equal(t, pos(0, 0), ranked[0].Start)
}

func TestRankEmpty(t *testing.T) {
	t.Parallel()
	require.Empty(t, Rank(nil, pos(0, 0), "a"))
}
