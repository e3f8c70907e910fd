package label

import (
	"testing"

	"github.com/peco/flash/match"
	"github.com/peco/flash/viewport"
	"github.com/stretchr/testify/require"
)

func pos(line, col int) viewport.Position {
	return viewport.Position{Line: line, Column: col}
}

func views() []*viewport.Snapshot {
	return []*viewport.Snapshot{
		{ID: "left", Visible: []viewport.LineRange{{Start: 0, End: 20}}},
		{ID: "main", Active: true, Visible: []viewport.LineRange{{Start: 0, End: 9}}},
	}
}

func TestUsable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		alphabet string
		reserved string
		expect   string
	}{
		{"nothing reserved", "asdf", "", "asdf"},
		{"reserved removed", "asdf", "sx", "adf"},
		{"duplicates in reserved", "asdf", "ssss", "adf"},
		{"duplicates in alphabet", "aasd", "", "asd"},
		{"all reserved", "ab", "ba", ""},
		{"case matters", "aA", "a", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expect, string(Usable([]rune(tt.alphabet), []rune(tt.reserved))))
		})
	}
}

func TestTable(t *testing.T) {
	t.Parallel()
	tbl := NewTable()
	require.True(t, tbl.Set('a', Target{View: "x", Position: pos(1, 2)}))
	require.False(t, tbl.Set('a', Target{View: "y"}), "a character maps to one target")
	require.True(t, tbl.Set('b', Target{View: "y"}))

	v, ok := tbl.Lookup('a')
	require.True(t, ok)
	require.Equal(t, Target{View: "x", Position: pos(1, 2)}, v)
	_, ok = tbl.Lookup('z')
	require.False(t, ok)
	require.Equal(t, []rune{'a', 'b'}, tbl.Keys())

	var none *Table
	_, ok = none.Lookup('a')
	require.False(t, ok)
	require.Equal(t, 0, none.Len())
}

func TestAssignOrder(t *testing.T) {
	t.Parallel()
	ranked := []match.Match{
		{View: "main", Start: pos(1, 0)},
		{View: "main", Start: pos(3, 0)},
		{View: "left", Start: pos(0, 0)},
		{View: "main", Start: pos(5, 0)},
	}
	res := NewAssigner("asdf").Assign(ranked, views(), nil)

	var got []Target
	for _, k := range res.Table.Keys() {
		v, _ := res.Table.Lookup(k)
		got = append(got, v)
	}
	require.Equal(t, "asdf", string(res.Table.Keys()))
	require.Equal(t, []Target{
		{View: "main", Position: pos(1, 0)},
		{View: "main", Position: pos(3, 0)},
		{View: "main", Position: pos(5, 0)},
		{View: "left", Position: pos(0, 0)},
	}, got, "active view first, ranked order within a view")

	for _, o := range res.Overlays {
		require.Equal(t, o.Range.Start.Offset(1), o.Range.End, "overlays are a single column")
	}
}

func TestAssignSkipsOffscreenActiveMatches(t *testing.T) {
	t.Parallel()
	ranked := []match.Match{
		{View: "main", Start: pos(30, 0)},
		{View: "main", Start: pos(2, 0)},
	}
	res := NewAssigner("asdf").Assign(ranked, views(), nil)
	require.Len(t, res.Overlays, 1)
	v, ok := res.Table.Lookup('a')
	require.True(t, ok)
	require.Equal(t, pos(2, 0), v.Position)
}

func TestAssignReserved(t *testing.T) {
	t.Parallel()
	var ranked []match.Match
	for i := range 5 {
		ranked = append(ranked, match.Match{View: "main", Start: pos(i, 0)})
	}
	reserved := []rune{'a', 'a', 'd'}
	res := NewAssigner("asdfg").Assign(ranked, views(), reserved)

	require.Equal(t, "sfg", string(res.Usable))
	for _, r := range reserved {
		_, ok := res.Table.Lookup(r)
		require.False(t, ok, "reserved %q must not be a label", r)
	}
	require.Equal(t, 3, res.Table.Len())
	require.Equal(t, 2, res.Ambiguous())
}

func TestAssignAmbiguous(t *testing.T) {
	t.Parallel()
	var ranked []match.Match
	for i := range 7 {
		ranked = append(ranked, match.Match{View: "main", Start: pos(i, 0)})
	}
	res := NewAssigner("abc").Assign(ranked, views(), nil)

	require.Len(t, res.Overlays, 7)
	require.Equal(t, 3, res.Table.Len())
	require.Equal(t, 4, res.Ambiguous())
	for _, o := range res.Overlays[3:] {
		require.True(t, o.Ambiguous)
		require.Zero(t, o.Label)
	}
	for _, k := range res.Table.Keys() {
		v, _ := res.Table.Lookup(k)
		require.Less(t, v.Position.Line, 3, "ambiguous matches never reach the table")
	}
}

func TestAssignIdempotent(t *testing.T) {
	t.Parallel()
	ranked := []match.Match{
		{View: "left", Start: pos(4, 1)},
		{View: "main", Start: pos(2, 2)},
		{View: "main", Start: pos(0, 7)},
	}
	a := NewAssigner("xyz")
	first := a.Assign(ranked, views(), []rune{'y'})
	second := a.Assign(ranked, views(), []rune{'y'})
	require.Equal(t, first, second)
}

func TestAssignEmpty(t *testing.T) {
	t.Parallel()
	res := NewAssigner("abc").Assign(nil, views(), nil)
	require.Equal(t, 0, res.Table.Len())
	require.Empty(t, res.Overlays)
}
