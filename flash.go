package flash

import (
	"context"
	"errors"
	"fmt"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash/config"
	"github.com/peco/flash/label"
	"github.com/peco/flash/match"
	"github.com/peco/flash/outline"
	"github.com/peco/flash/viewport"
)

// New creates an idle session. provider may be nil, in which case
// outline jumps never offer any target. A nil cfg means the defaults.
func New(host Host, provider outline.Provider, cfg *config.Config) *Flash {
	if cfg == nil {
		cfg = config.New()
	}
	f := &Flash{
		host:     host,
		provider: provider,
		config:   cfg,
		assigner: label.NewAssigner(cfg.LabelChars),
	}
	f.reset()
	return f
}

func (f *Flash) Mode() Mode {
	return f.mode
}

func (f *Flash) Query() string {
	return f.query.String()
}

// Labels returns the label table of the last cycle.
func (f *Flash) Labels() *label.Table {
	return f.labels
}

// Frame returns the last frame handed to the host.
func (f *Flash) Frame() *Frame {
	return f.frame
}

// Selecting reports whether the next jump extends the selection.
func (f *Flash) Selecting() bool {
	return f.selecting
}

func (f *Flash) Config() *config.Config {
	return f.config
}

// reset returns to idle. Mode, query, labels, selection flag and the
// cached outline all go at once.
func (f *Flash) reset() {
	f.mode = ModeIdle
	f.query.Reset()
	f.selecting = false
	f.labels = label.NewTable()
	f.outlines.Reset()
	f.frame = &Frame{Mode: ModeIdle}
}

// Go starts an incremental search. A running session switches to
// incremental search and starts over with an empty query.
func (f *Flash) Go(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Go")
		defer g.End()
	}
	f.enter(ctx, ModeIncrementalSearch, false)
}

// Select is like Go, but the jump will extend the selection.
func (f *Flash) Select(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Select")
		defer g.End()
	}
	f.enter(ctx, ModeIncrementalSearch, true)
}

// GoUp offers the lines above the cursor. Any running session is
// stopped first.
func (f *Flash) GoUp(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.GoUp")
		defer g.End()
	}
	f.reset()
	f.enter(ctx, ModeLineUp, false)
}

// GoDown offers the lines below the cursor. Any running session is
// stopped first.
func (f *Flash) GoDown(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.GoDown")
		defer g.End()
	}
	f.reset()
	f.enter(ctx, ModeLineDown, false)
}

// Outline offers the symbols of the active document. It can be used
// from idle or to switch a running session over, keeping the session's
// selection flag and cached outline.
func (f *Flash) Outline(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Outline")
		defer g.End()
	}
	f.enter(ctx, ModeOutlineJump, f.selecting)
}

func (f *Flash) enter(ctx context.Context, mode Mode, selecting bool) {
	if f.mode == ModeIdle {
		f.reset()
	}
	f.mode = mode
	f.selecting = selecting
	f.query.Reset()
	f.refresh(ctx)
}

// Type handles a typed character. If ch is a label the jump is
// performed and the session ends, even when the host fails to jump.
// Otherwise ch extends the query. Outside of a session ch is ignored.
func (f *Flash) Type(ctx context.Context, ch rune) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Type %q (mode=%s)", ch, f.mode)
		defer g.End()
	}

	if f.mode == ModeIdle {
		return nil
	}

	if target, ok := f.labels.Lookup(ch); ok {
		return f.jump(ctx, target)
	}

	f.query.Append(ch)
	f.refresh(ctx)
	return nil
}

func (f *Flash) jump(ctx context.Context, target label.Target) error {
	j := &Jump{
		View:   target.View,
		Target: target.Position,
		Center: f.mode.IsLineHop(),
		Focus:  target.View != f.origin,
		Select: f.selecting,
		Anchor: f.cursor,
	}
	if pdebug.Enabled {
		pdebug.Printf("jumping to %s %d:%d (select=%t)", j.View, j.Target.Line, j.Target.Column, j.Select)
	}

	err := f.host.Jump(ctx, j)
	f.Stop(ctx)
	if err != nil {
		return fmt.Errorf("failed to jump to %s %d:%d: %w", j.View, j.Target.Line, j.Target.Column, err)
	}
	return nil
}

// Backspace removes the last query character. With an empty query
// the session is cancelled.
func (f *Flash) Backspace(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Backspace")
		defer g.End()
	}

	if f.mode == ModeIdle {
		return
	}
	if !f.query.Backspace() {
		f.Stop(ctx)
		return
	}
	f.refresh(ctx)
}

// Stop ends the session and clears every overlay.
func (f *Flash) Stop(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Stop")
		defer g.End()
	}
	f.reset()
	f.host.Render(ctx, f.frame)
}

// ViewportChanged recomputes the labels for the new visible lines,
// keeping the query.
func (f *Flash) ViewportChanged(ctx context.Context) {
	if f.mode == ModeIdle {
		return
	}
	f.refresh(ctx)
}

// SetConfig replaces the configuration, recomputing if a session is
// running. An invalid configuration is rejected and the current one
// kept.
func (f *Flash) SetConfig(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return errors.New("nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to apply configuration: %w", err)
	}

	f.config = cfg
	f.assigner = label.NewAssigner(cfg.LabelChars)
	if f.mode != ModeIdle {
		f.refresh(ctx)
	}
	return nil
}

// refresh runs one full recomputation cycle against fresh snapshots
// and hands the result to the host.
func (f *Flash) refresh(ctx context.Context) {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.refresh (mode=%s, query=%q)", f.mode, f.query.String())
		defer g.End()
	}

	views := f.host.Snapshots()

	var active *viewport.Snapshot
	for _, v := range views {
		if v.Active {
			active = v
			break
		}
	}

	var c match.Collector
	if src := f.source(ctx, active); src != nil {
		for _, v := range views {
			if f.mode.ActiveOnly() && !v.Active {
				continue
			}
			src.Apply(v, &c)
		}
	}

	ranked := c.Matches()
	if active != nil {
		f.origin = active.ID
		f.cursor = active.Cursor
		ranked = match.Rank(ranked, active.Cursor, active.ID)
	} else {
		f.origin = ""
		f.cursor = viewport.Position{}
	}

	res := f.assigner.Assign(ranked, views, c.Reserved())
	f.labels = res.Table
	f.frame = f.buildFrame(views, ranked, res)
	f.host.Render(ctx, f.frame)
}

// source picks the match source for the current mode.
func (f *Flash) source(ctx context.Context, active *viewport.Snapshot) match.Source {
	switch f.mode {
	case ModeIncrementalSearch:
		q := f.query.String()
		return match.NewSubstring(q, f.query.CaseSensitive(f.config.CaseSensitive))
	case ModeLineUp:
		return match.NewVerticalHop(match.Up, len(f.assigner.Alphabet()), f.config.LineHugsTheContent)
	case ModeLineDown:
		return match.NewVerticalHop(match.Down, len(f.assigner.Alphabet()), f.config.LineHugsTheContent)
	case ModeOutlineJump:
		if active == nil || f.provider == nil {
			return nil
		}
		symbols, err := f.outlines.Load(ctx, f.provider, active.Document)
		if err != nil {
			if pdebug.Enabled {
				pdebug.Printf("no outline for %s: %s", active.Document, err)
			}
			return nil
		}
		return match.NewOutline(symbols)
	default:
		return nil
	}
}

func (f *Flash) buildFrame(views []*viewport.Snapshot, ranked []match.Match, res *label.Result) *Frame {
	frame := &Frame{
		Mode:  f.mode,
		Query: f.query.String(),
		Views: make([]*ViewFrame, 0, len(views)),
	}

	byView := make(map[string]*ViewFrame, len(views))
	for _, v := range views {
		vf := &ViewFrame{View: v.ID}
		// modes confined to the active view leave the others alone
		if v.Active || !f.mode.ActiveOnly() {
			vf.Dim = v.VisibleSet().Ranges()
		}
		byView[v.ID] = vf
		frame.Views = append(frame.Views, vf)
	}
	for _, m := range ranked {
		if vf, ok := byView[m.View]; ok {
			vf.Matches = append(vf.Matches, m.Range())
		}
	}
	for _, o := range res.Overlays {
		if vf, ok := byView[o.View]; ok {
			vf.Labels = append(vf.Labels, o)
		}
	}
	return frame
}
