package outline

import (
	"context"
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/peco/flash/viewport"
)

// ErrStale is returned by Cache.Load when the session that requested
// an outline was reset before the provider answered.
var ErrStale = errors.New("outline request belongs to a previous session")

// Symbol is one named range of a structural outline.
type Symbol struct {
	Name     string
	Kind     string
	Start    viewport.Position
	Children []*Symbol
}

// Provider computes the outline of a document. An empty result is
// not an error.
type Provider interface {
	Outline(context.Context, string) ([]*Symbol, error)
}

// ProviderFunc is a function that implements Provider.
type ProviderFunc func(context.Context, string) ([]*Symbol, error)

// Cache keeps the outline fetched for the current navigation session.
// Every Reset starts a new session; answers that arrive for an older
// session are dropped.
type Cache struct {
	mutex    sync.Mutex
	session  uint64
	loaded   bool
	document string
	symbols  []*Symbol
}

// GoProvider outlines Go source files read from disk. Parsed outlines
// are memoised until the file changes.
type GoProvider struct {
	memo *lru.Cache[string, goEntry]
}

type goEntry struct {
	size    int64
	modTime time.Time
	symbols []*Symbol
}
