package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

var keyToName = map[tcell.Key]string{
	tcell.KeyEscape:     "Esc",
	tcell.KeyBackspace:  "BS",
	tcell.KeyBackspace2: "BS",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "BackTab",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyPgUp:       "Pgup",
	tcell.KeyPgDn:       "Pgdn",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyDelete:     "Delete",
}

// KeyName returns the name used for ev in keymaps: "C-f" for control
// keys, "Esc", "BS", "ArrowUp" and so on for special keys, and the
// character itself for anything typed. Alt adds an "M-" prefix.
func KeyName(ev *tcell.EventKey) string {
	var name string
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			name = "C-" + string(unicode.ToLower(r))
		} else {
			name = string(r)
		}
	case keyToName[k] != "":
		name = keyToName[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		name = "C-" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	case k == tcell.KeyCtrlSpace:
		name = "C-space"
	default:
		return ""
	}

	if ev.Modifiers()&tcell.ModAlt != 0 {
		name = "M-" + name
	}
	return name
}
