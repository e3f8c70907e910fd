package outline

import (
	"context"

	"github.com/lestrrat-go/pdebug"
)

// Outline calls the underlying function.
func (f ProviderFunc) Outline(ctx context.Context, doc string) ([]*Symbol, error) {
	return f(ctx, doc)
}

// Flatten lists every symbol of the tree in pre-order: a node is
// followed by its children, depth first. An explicit stack is used
// so that deeply nested outlines cannot exhaust the goroutine stack.
func Flatten(roots []*Symbol) []*Symbol {
	var out []*Symbol
	stack := make([]*Symbol, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s == nil {
			continue
		}
		out = append(out, s)
		for i := len(s.Children) - 1; i >= 0; i-- {
			stack = append(stack, s.Children[i])
		}
	}
	return out
}

// Session returns the token of the current session.
func (c *Cache) Session() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.session
}

// Get returns the cached outline for doc, if one was loaded during
// the current session.
func (c *Cache) Get(doc string) ([]*Symbol, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if !c.loaded || c.document != doc {
		return nil, false
	}
	return c.symbols, true
}

// Resolve stores symbols fetched on behalf of session. It returns
// false and leaves the cache untouched if the session is over.
func (c *Cache) Resolve(session uint64, doc string, symbols []*Symbol) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if session != c.session {
		return false
	}
	c.loaded = true
	c.document = doc
	c.symbols = symbols
	return true
}

// Reset drops the cached outline and starts a new session.
func (c *Cache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.session++
	c.loaded = false
	c.document = ""
	c.symbols = nil
}

// Load returns the outline of doc, asking p only if nothing has been
// cached for doc during the current session.
func (c *Cache) Load(ctx context.Context, p Provider, doc string) ([]*Symbol, error) {
	if symbols, ok := c.Get(doc); ok {
		return symbols, nil
	}

	if pdebug.Enabled {
		g := pdebug.Marker("Cache.Load %s", doc)
		defer g.End()
	}

	session := c.Session()
	symbols, err := p.Outline(ctx, doc)
	if err != nil {
		return nil, err
	}

	if !c.Resolve(session, doc, symbols) {
		if pdebug.Enabled {
			pdebug.Printf("discarding outline of %s fetched for session %d", doc, session)
		}
		return nil, ErrStale
	}
	return symbols, nil
}
