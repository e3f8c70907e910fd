package flash

import (
	"context"
	"fmt"
	"slices"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash/hub"
)

// This is the global map of canonical action name to actions
var nameToActions map[string]Action

// Execute fulfills the Action interface for ActionFunc
func (a ActionFunc) Execute(ctx context.Context, f *Flash, e hub.Event) error {
	return a(ctx, f, e)
}

// Register registers `a` into the global action registry by the name
// `name`. Called during package init() to set up built-in actions.
func (a ActionFunc) Register(name string) {
	nameToActions["flash."+name] = a
}

// wrap adapts the session methods that cannot fail.
func wrap(fn func(*Flash, context.Context)) ActionFunc {
	return func(ctx context.Context, f *Flash, _ hub.Event) error {
		fn(f, ctx)
		return nil
	}
}

func init() {
	nameToActions = map[string]Action{}

	wrap((*Flash).Go).Register("Go")
	wrap((*Flash).Select).Register("Select")
	wrap((*Flash).GoUp).Register("GoUp")
	wrap((*Flash).GoDown).Register("GoDown")
	wrap((*Flash).Outline).Register("Outline")
	wrap((*Flash).Backspace).Register("Backspace")
	wrap((*Flash).Stop).Register("Stop")
	wrap((*Flash).ViewportChanged).Register("ViewportChanged")
	ActionFunc(doType).Register("Type")
}

func doType(ctx context.Context, f *Flash, e hub.Event) error {
	return f.Type(ctx, e.Ch)
}

// ActionNames returns the names of every registered action, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(nameToActions))
	for name := range nameToActions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsAction reports whether name is a registered action.
func IsAction(name string) bool {
	_, ok := nameToActions[name]
	return ok
}

// ExecuteAction runs the action registered as name.
func ExecuteAction(ctx context.Context, f *Flash, name string, e hub.Event) error {
	if pdebug.Enabled {
		g := pdebug.Marker("ExecuteAction %s", name)
		defer g.End()
	}

	a, ok := nameToActions[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	return a.Execute(ctx, f, e)
}
