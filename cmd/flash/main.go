package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash"
	"github.com/peco/flash/config"
	"github.com/peco/flash/hub"
	"github.com/peco/flash/internal/sig"
	"github.com/peco/flash/internal/term"
	"github.com/peco/flash/outline"
	"github.com/pkg/errors"
)

var version = "v0.1.0"

// replaced in tests
var newScreen = tcell.NewScreen

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	var opts cmdOptions
	args, err := opts.parse(argv, stderr)
	if err != nil {
		return err
	}

	switch {
	case opts.OptHelp:
		stdout.Write(opts.help())
		return nil
	case opts.OptVersion:
		fmt.Fprintf(stdout, "flash version %s\n", version)
		return nil
	case opts.OptListActions:
		for _, name := range flash.ActionNames() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	if len(args) == 0 {
		stderr.Write(opts.help())
		return errors.New("no files given")
	}

	cfg, err := loadConfig(opts.OptRcfile)
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	panes := make([]*term.Pane, 0, len(args))
	for _, path := range args {
		p, err := term.OpenPane(path)
		if err != nil {
			return err
		}
		panes = append(panes, p)
	}

	provider, err := outline.NewGoProvider(outline.DefaultGoProviderSize)
	if err != nil {
		return errors.Wrap(err, "failed to create outline provider")
	}

	screen, err := newScreen()
	if err != nil {
		return errors.Wrap(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}
	defer screen.Fini()

	host := term.New(screen, cfg.Style, panes...)
	h := hub.New(5)
	f := flash.New(host, provider, cfg)

	input, err := term.NewInput(host, h, cfg.Keymap)
	if err != nil {
		return errors.Wrap(err, "invalid keymap")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		reload := sig.ReceivedHandlerFunc(func(os.Signal) {
			if err := reloadConfig(ctx, &opts, host, input, h); err != nil {
				host.ReportError(ctx, err)
			}
		})
		sig.New(nil, syscall.SIGTERM, syscall.SIGINT).
			OnReload(reload, syscall.SIGHUP).
			Loop(ctx, cancel)
	}()
	go func() {
		defer wg.Done()
		if err := f.Loop(ctx, h); err != nil && pdebug.Enabled {
			pdebug.Printf("flash loop exited: %s", err)
		}
	}()

	host.Draw()
	err = input.Loop(ctx)
	cancel()
	wg.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "input loop failed")
	}
	return nil
}

// loadConfig reads rcfile, or the first settings file found in the
// usual places. A missing settings file leaves the defaults alone.
func loadConfig(rcfile string) (*config.Config, error) {
	cfg := config.New()
	if rcfile == "" {
		found, err := config.LocateRcfile(config.DefaultConfigLocator)
		if err != nil {
			return cfg, nil
		}
		rcfile = found
	}

	if err := cfg.ReadFilename(rcfile); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", rcfile)
	}
	return cfg, nil
}

// reloadConfig reads the settings again and hands them to the engine,
// the screen and the key bindings. It returns once the engine has
// switched over. Nothing changes if the settings are invalid.
func reloadConfig(ctx context.Context, opts *cmdOptions, host *term.Host, input *term.Input, h *hub.Hub) error {
	if pdebug.Enabled {
		g := pdebug.Marker("reloadConfig")
		defer g.End()
	}

	cfg, err := loadConfig(opts.OptRcfile)
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}
	if err := input.SetKeymap(cfg.Keymap); err != nil {
		return errors.Wrap(err, "invalid keymap")
	}

	h.Batch(ctx, func(ctx context.Context) {
		err = h.SendConfig(ctx, cfg.Clone())
	})
	if err != nil {
		return errors.Wrap(err, "failed to apply settings")
	}
	host.SetStyles(cfg.Style)
	host.Draw()
	return nil
}
