package match

import "github.com/peco/flash/viewport"

// Constants used by the ranking function. Lines weigh much more than
// columns, a constant offset keeps the cursor's own location apart
// from every other candidate, and matches outside the active view
// are pushed behind every match inside it.
const (
	LineWeight      = 1000
	DistanceOffset  = 4
	CrossViewWeight = 10000
)

// SortKeyLineFactor makes the line the dominant term of Match.SortKey.
const SortKeyLineFactor = 1000

// Match is a candidate jump target. Matches are recreated on every
// recomputation cycle and never modified.
type Match struct {
	View  string
	Start viewport.Position
	End   viewport.Position
}

// Collector accumulates the candidates of one cycle, along with the
// characters that directly follow a search match. Those characters
// could extend the query, so they must not be used as labels.
type Collector struct {
	matches  []Match
	reserved []rune
}

// Source turns a snapshot into candidates. Implementations exist for
// incremental search, vertical line hops and outline symbols.
type Source interface {
	Apply(*viewport.Snapshot, *Collector)
	String() string
}

// Direction selects which way a VerticalHop walks.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Substring finds every occurrence of the query, overlaps included.
type Substring struct {
	query         []rune
	caseSensitive bool
}

// VerticalHop offers the lines above or below the cursor.
type VerticalHop struct {
	direction  Direction
	count      int
	hugContent bool
}
