package label

import (
	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash/match"
	"github.com/peco/flash/viewport"
)

// Usable returns the characters of alphabet that are not reserved,
// preserving alphabet order. Repeated alphabet characters are only
// returned once.
func Usable(alphabet, reserved []rune) []rune {
	skip := make(map[rune]struct{}, len(reserved)+len(alphabet))
	for _, r := range reserved {
		skip[r] = struct{}{}
	}

	out := make([]rune, 0, len(alphabet))
	for _, r := range alphabet {
		if _, ok := skip[r]; ok {
			continue
		}
		skip[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// NewAssigner creates an Assigner for the given alphabet.
func NewAssigner(alphabet string) *Assigner {
	return &Assigner{alphabet: []rune(alphabet)}
}

// Alphabet returns the configured label characters.
func (a *Assigner) Alphabet() []rune {
	return a.alphabet
}

// Assign labels the ranked matches. Views are walked with the active
// view first and the rest in the order given, and within each view
// matches keep their ranked order. Matches of the active view that
// are outside every visible range are not labeled at all. Once the
// usable characters run out the remaining matches are marked
// ambiguous.
//
// The same inputs always produce the same Result.
func (a *Assigner) Assign(ranked []match.Match, views []*viewport.Snapshot, reserved []rune) *Result {
	if pdebug.Enabled {
		g := pdebug.Marker("label.Assign (%d matches, %d reserved)", len(ranked), len(reserved))
		defer g.End()
	}

	usable := Usable(a.alphabet, reserved)
	res := &Result{
		Table:  NewTable(),
		Usable: usable,
	}

	var n int
	for _, v := range orderViews(views) {
		for _, m := range ranked {
			if m.View != v.ID {
				continue
			}
			if v.Active && !v.IsVisible(m.Start.Line) {
				continue
			}

			o := Overlay{
				View:  m.View,
				Range: viewport.Range{Start: m.Start, End: m.Start.Offset(1)},
			}
			if n < len(usable) {
				o.Label = usable[n]
				res.Table.Set(o.Label, Target{View: m.View, Position: m.Start})
			} else {
				o.Ambiguous = true
			}
			n++
			res.Overlays = append(res.Overlays, o)
		}
	}

	if pdebug.Enabled && n > len(usable) {
		pdebug.Printf("%d match(es) left ambiguous", n-len(usable))
	}
	return res
}

// orderViews moves the active view to the front, keeping the order of
// the others.
func orderViews(views []*viewport.Snapshot) []*viewport.Snapshot {
	out := make([]*viewport.Snapshot, 0, len(views))
	for _, v := range views {
		if v.Active {
			out = append(out, v)
		}
	}
	for _, v := range views {
		if !v.Active {
			out = append(out, v)
		}
	}
	return out
}

// Ambiguous returns the number of ambiguous overlays in r.
func (r *Result) Ambiguous() int {
	var n int
	for _, o := range r.Overlays {
		if o.Ambiguous {
			n++
		}
	}
	return n
}
