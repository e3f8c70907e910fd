package flash

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/peco/flash/config"
	"github.com/peco/flash/hub"
	"github.com/stretchr/testify/require"
)

// lockedHost guards recordingHost, since Loop calls it from its own
// goroutine.
type lockedHost struct {
	mutex sync.Mutex
	*recordingHost
}

func (h *lockedHost) Render(ctx context.Context, f *Frame) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.recordingHost.Render(ctx, f)
}

func (h *lockedHost) ReportError(ctx context.Context, err error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.recordingHost.ReportError(ctx, err)
}

func TestLoop(t *testing.T) {
	t.Parallel()
	h := &lockedHost{recordingHost: fooHost()}
	cfg := config.New()
	cfg.LabelChars = "asdf"
	f := New(h, nil, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hb := hub.New(5)
	done := make(chan error, 1)
	go func() { done <- f.Loop(ctx, hb) }()

	hb.Batch(ctx, func(ctx context.Context) {
		require.NoError(t, hb.SendAction(ctx, "flash.Go"))
		for _, ch := range "foo" {
			require.NoError(t, hb.SendKey(ctx, ch))
		}
		require.NoError(t, hb.SendViewportChanged(ctx))
		require.NoError(t, hb.SendAction(ctx, "flash.Bogus"))
		require.NoError(t, hb.SendConfig(ctx, &config.Config{}))
	})

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Loop did not return")
	}

	require.Equal(t, "foo", f.Query())
	require.Equal(t, 2, f.Labels().Len())
	require.Len(t, h.frames, 5)
	require.Len(t, h.errs, 2, "unknown action and invalid configuration")
}

func TestLoopClosedHub(t *testing.T) {
	t.Parallel()
	f := New(fooHost(), nil, nil)
	hb := hub.New(1)
	close(hb.EventCh())
	require.NoError(t, f.Loop(context.Background(), hb))
}

func TestActions(t *testing.T) {
	t.Parallel()
	names := ActionNames()
	for _, name := range []string{
		"flash.Go",
		"flash.Select",
		"flash.GoUp",
		"flash.GoDown",
		"flash.Outline",
		"flash.Backspace",
		"flash.Stop",
		"flash.ViewportChanged",
		"flash.Type",
	} {
		require.Contains(t, names, name)
		require.True(t, IsAction(name))
	}
	require.False(t, IsAction("flash.Nope"))

	h := fooHost()
	f := New(h, nil, nil)
	ctx := context.Background()
	require.NoError(t, ExecuteAction(ctx, f, "flash.GoDown", hub.Event{}))
	require.Equal(t, ModeLineDown, f.Mode())
	require.NoError(t, ExecuteAction(ctx, f, "flash.Type", hub.Event{Type: hub.EventKey, Ch: 'z'}))
	require.Equal(t, "z", f.Query())
	require.NoError(t, ExecuteAction(ctx, f, "flash.Stop", hub.Event{}))
	require.Equal(t, ModeIdle, f.Mode())
	require.Error(t, ExecuteAction(ctx, f, "flash.Nope", hub.Event{}))
}
