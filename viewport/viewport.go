package viewport

import "strings"

// Less reports whether p comes before o in document order.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Offset returns the position n columns to the right of p.
func (p Position) Offset(n int) Position {
	return Position{Line: p.Line, Column: p.Column + n}
}

// Contains reports whether line falls within r.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

func (r LineRange) normalize() LineRange {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// SplitLines splits s into Lines, dropping the carriage return of
// CRLF line endings.
func SplitLines(s string) Lines {
	l := strings.Split(s, "\n")
	for i, v := range l {
		l[i] = strings.TrimSuffix(v, "\r")
	}
	return Lines(l)
}

func (l Lines) LineCount() int {
	return len(l)
}

func (l Lines) LineAt(n int) string {
	if n < 0 || n >= len(l) {
		return ""
	}
	return l[n]
}

// LineCount returns the number of lines in the snapshot's text,
// or 0 if the snapshot carries no text.
func (s *Snapshot) LineCount() int {
	if s.Text == nil {
		return 0
	}
	return s.Text.LineCount()
}

// LineAt returns the text of line n. Lines beyond the end of the
// document (a stale snapshot) read as empty.
func (s *Snapshot) LineAt(n int) string {
	if s.Text == nil {
		return ""
	}
	return s.Text.LineAt(n)
}

// VisibleSet returns the visible ranges as a merged RangeSet.
func (s *Snapshot) VisibleSet() *RangeSet {
	s.once.Do(func() {
		s.visible = NewRangeSet(s.Visible...)
	})
	return s.visible
}

// IsVisible reports whether line is inside any visible range.
func (s *Snapshot) IsVisible(line int) bool {
	return s.VisibleSet().Contains(line)
}
