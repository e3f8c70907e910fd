package match

import (
	"sort"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash/viewport"
)

// Distance is the unweighted squared distance between the cursor and
// p, plus DistanceOffset. It equals DistanceOffset only when p is the
// cursor position itself.
func Distance(cursor, p viewport.Position) int64 {
	dl := int64(cursor.Line - p.Line)
	dc := int64(cursor.Column - p.Column)
	return dl*dl*LineWeight + dc*dc + DistanceOffset
}

// Score weighs the distance of m to the cursor. Matches outside the
// active view are multiplied by CrossViewWeight.
func Score(m Match, cursor viewport.Position, activeView string) int64 {
	d := Distance(cursor, m.Start)
	if m.View != activeView {
		return d * CrossViewWeight
	}
	return d
}

type scored struct {
	Match
	score int64
}

// Rank orders matches by Score, keeping the original order of ties,
// and removes matches sitting exactly on the cursor of the active
// view. The input slice is not modified.
func Rank(matches []Match, cursor viewport.Position, activeView string) []Match {
	if pdebug.Enabled {
		g := pdebug.Marker("match.Rank (%d candidates)", len(matches))
		defer g.End()
	}

	list := make([]scored, len(matches))
	for i, m := range matches {
		list[i] = scored{Match: m, score: Score(m, cursor, activeView)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score < list[j].score
	})

	// The nearest entries may be the cursor itself (outlines can hold
	// several symbols starting at the same place).
	skip := 0
	for skip < len(list) && list[skip].View == activeView && Distance(cursor, list[skip].Start) == DistanceOffset {
		skip++
	}
	if pdebug.Enabled && skip > 0 {
		pdebug.Printf("dropped %d match(es) at the cursor %d:%d", skip, cursor.Line, cursor.Column)
	}

	out := make([]Match, 0, len(list)-skip)
	for _, s := range list[skip:] {
		out = append(out, s.Match)
	}
	return out
}
