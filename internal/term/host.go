package term

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/lestrrat-go/pdebug"
	"github.com/mattn/go-runewidth"
	"github.com/peco/flash"
	"github.com/peco/flash/config"
	"github.com/peco/flash/viewport"
	"github.com/pkg/errors"
)

// OpenPane reads path into a new Pane.
func OpenPane(path string) (*Pane, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	return &Pane{
		ID:   path,
		Path: abs,
		Text: viewport.SplitLines(string(buf)),
	}, nil
}

// New creates a Host drawing on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, styles config.StyleSet, panes ...*Pane) *Host {
	return &Host{
		screen: screen,
		styles: styles,
		panes:  panes,
		frame:  &flash.Frame{Mode: flash.ModeIdle},
	}
}

// Panes returns the panes in display order.
func (h *Host) Panes() []*Pane {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.panes
}

// Active returns the pane holding the cursor.
func (h *Host) Active() *Pane {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.activePane()
}

func (h *Host) activePane() *Pane {
	if len(h.panes) == 0 {
		return nil
	}
	return h.panes[h.active]
}

// SetStyles replaces the overlay styles.
func (h *Host) SetStyles(styles config.StyleSet) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.styles = styles
}

// Session returns the mode of the last frame rendered.
func (h *Host) Session() flash.Mode {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.frame.Mode
}

// paneHeight is the number of text rows; the last row of the screen
// is the status line.
func (h *Host) paneHeight() int {
	_, height := h.screen.Size()
	return max(height-1, 1)
}

func (h *Host) paneGeometry(i int) (x, width int) {
	w, _ := h.screen.Size()
	n := len(h.panes)
	if n == 0 {
		return 0, w
	}
	width = w / n
	x = i * width
	if i == n-1 {
		width = w - x
	}
	return x, width
}

// Snapshots fulfills flash.Host
func (h *Host) Snapshots() []*viewport.Snapshot {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	height := h.paneHeight()
	out := make([]*viewport.Snapshot, 0, len(h.panes))
	for i, p := range h.panes {
		last := min(p.Top+height, p.Text.LineCount()) - 1
		out = append(out, &viewport.Snapshot{
			ID:       p.ID,
			Document: p.Path,
			Text:     p.Text,
			Visible:  []viewport.LineRange{{Start: p.Top, End: max(last, p.Top)}},
			Active:   i == h.active,
			Cursor:   p.Cursor,
		})
	}
	return out
}

// Render fulfills flash.Host
func (h *Host) Render(_ context.Context, f *flash.Frame) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.frame = f
	h.status = ""
	h.draw()
}

// Jump fulfills flash.Host
func (h *Host) Jump(_ context.Context, j *flash.Jump) error {
	if pdebug.Enabled {
		g := pdebug.Marker("term.Host.Jump %s %d:%d", j.View, j.Target.Line, j.Target.Column)
		defer g.End()
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	idx := -1
	for i, p := range h.panes {
		if p.ID == j.View {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Errorf("no pane named %s", j.View)
	}

	origin := h.activePane()
	if j.Focus {
		h.active = idx
	}

	p := h.panes[idx]
	p.Cursor = clampPosition(p.Text, j.Target)
	if j.Select && p == origin {
		p.Selection = &viewport.Range{Start: j.Anchor, End: p.Cursor}
	} else {
		p.Selection = nil
	}

	height := h.paneHeight()
	if j.Center {
		p.Top = p.Cursor.Line - height/2
	} else {
		h.reveal(p, height)
	}
	p.Top = clampTop(p, height)
	return nil
}

// ReportError fulfills flash.ErrorReporter
func (h *Host) ReportError(_ context.Context, err error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.status = err.Error()
	h.draw()
}

// MoveCursor moves the cursor of the active pane, scrolling as needed.
func (h *Host) MoveCursor(lines, columns int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	p := h.activePane()
	if p == nil {
		return
	}
	p.Selection = nil
	p.Cursor = clampPosition(p.Text, viewport.Position{
		Line:   p.Cursor.Line + lines,
		Column: p.Cursor.Column + columns,
	})
	h.reveal(p, h.paneHeight())
	h.draw()
}

// Scroll scrolls the active pane by n lines without moving the cursor.
func (h *Host) Scroll(n int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	p := h.activePane()
	if p == nil {
		return
	}
	height := h.paneHeight()
	p.Top += n
	p.Top = clampTop(p, height)
	h.draw()
}

// FocusNext moves the cursor to the next pane.
func (h *Host) FocusNext() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if len(h.panes) == 0 {
		return
	}
	h.active = (h.active + 1) % len(h.panes)
	h.draw()
}

// Draw redraws the whole screen.
func (h *Host) Draw() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.draw()
}

func (h *Host) reveal(p *Pane, height int) {
	if p.Cursor.Line < p.Top {
		p.Top = p.Cursor.Line
	} else if p.Cursor.Line >= p.Top+height {
		p.Top = p.Cursor.Line - height + 1
	}
}

func clampTop(p *Pane, height int) int {
	top := min(p.Top, p.Text.LineCount()-height)
	return max(top, 0)
}

func clampPosition(text viewport.Lines, pos viewport.Position) viewport.Position {
	line := min(max(pos.Line, 0), max(text.LineCount()-1, 0))
	col := min(max(pos.Column, 0), len([]rune(text.LineAt(line))))
	return viewport.Position{Line: line, Column: col}
}

func (h *Host) draw() {
	h.screen.Clear()
	h.screen.HideCursor()

	views := make(map[string]*flash.ViewFrame, len(h.frame.Views))
	for _, v := range h.frame.Views {
		views[v.View] = v
	}

	height := h.paneHeight()
	for i, p := range h.panes {
		x, width := h.paneGeometry(i)
		h.drawPane(p, views[p.ID], x, width, height, i == h.active)
	}
	h.drawStatus(height)
	h.screen.Show()
}

// cellStyle is the style of the cell showing column col of line.
func (h *Host) cellStyle(p *Pane, vf *flash.ViewFrame, line, col int) tcell.Style {
	style := tcell.StyleDefault
	if vf != nil {
		for _, r := range vf.Dim {
			if r.Contains(line) {
				style = styleToTcell(h.styles.Dim)
				break
			}
		}
		at := viewport.Position{Line: line, Column: col}
		for _, m := range vf.Matches {
			if !at.Less(m.Start) && at.Less(m.End) {
				style = styleToTcell(h.styles.Match)
				break
			}
		}
	}
	if s := p.Selection; s != nil {
		start, end := s.Start, s.End
		if end.Less(start) {
			start, end = end, start
		}
		at := viewport.Position{Line: line, Column: col}
		if !at.Less(start) && !end.Less(at) {
			style = style.Reverse(true)
		}
	}
	return style
}

func (h *Host) drawPane(p *Pane, vf *flash.ViewFrame, x0, width, height int, active bool) {
	// a bar in the last column of the previous pane separates them
	if x0 > 0 {
		for y := range height {
			h.screen.SetContent(x0-1, y, '│', nil, tcell.StyleDefault)
		}
	}

	labels := make(map[viewport.Position]rune)
	if vf != nil {
		for _, o := range vf.Labels {
			if o.Ambiguous {
				labels[o.Range.Start] = -1
				continue
			}
			labels[o.Range.Start] = o.Label
		}
	}

	for row := range height {
		line := p.Top + row
		if line >= p.Text.LineCount() {
			break
		}
		runes := []rune(p.Text.LineAt(line))

		x := 0
		for col := 0; col <= len(runes); col++ {
			if x >= width-1 {
				break
			}

			ch := ' '
			w := 1
			if col < len(runes) {
				ch = runes[col]
				w = runeWidth(ch, x)
			}

			style := h.cellStyle(p, vf, line, col)
			if l, ok := labels[viewport.Position{Line: line, Column: col}]; ok {
				if l < 0 {
					ch = '?'
					style = styleToTcell(h.styles.LabelQuestion)
				} else {
					ch = l
					style = styleToTcell(h.styles.Label)
				}
				w = max(w, 1)
				h.screen.SetContent(x0+x, row, ch, nil, style)
				for i := 1; i < w; i++ {
					h.screen.SetContent(x0+x+i, row, ' ', nil, style)
				}
			} else if col < len(runes) {
				if ch == '\t' {
					for i := range w {
						h.screen.SetContent(x0+x+i, row, ' ', nil, style)
					}
				} else {
					h.screen.SetContent(x0+x, row, ch, nil, style)
				}
			}

			if active && line == p.Cursor.Line && col == p.Cursor.Column {
				h.screen.ShowCursor(x0+x, row)
			}
			x += w
		}
	}
}

// runeWidth is the number of cells ch occupies when drawn at cell x.
func runeWidth(ch rune, x int) int {
	if ch == '\t' {
		return TabWidth - x%TabWidth
	}
	return max(runewidth.RuneWidth(ch), 1)
}

func (h *Host) drawStatus(y int) {
	var msg string
	switch {
	case h.status != "":
		msg = h.status
	case h.frame.Mode != flash.ModeIdle:
		msg = fmt.Sprintf("[%s] %s", h.frame.Mode, h.frame.Query)
	default:
		if p := h.activePane(); p != nil {
			msg = fmt.Sprintf("%s %d:%d", p.ID, p.Cursor.Line+1, p.Cursor.Column+1)
		}
	}

	x := 0
	for _, r := range msg {
		h.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Reverse(true))
		x += runewidth.RuneWidth(r)
	}
}
