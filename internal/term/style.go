package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/peco/flash/config"
)

const paletteMask = 0x1ff

func attributeToColor(a config.Attribute) tcell.Color {
	if a&config.AttrTrueColor != 0 {
		return tcell.NewHexColor(int32(a & 0xffffff))
	}
	idx := a & paletteMask
	if idx == 0 {
		return tcell.ColorDefault
	}
	// palette entries are stored off by one so that 0 means "default"
	return tcell.PaletteColor(int(idx - 1))
}

// styleToTcell converts a configured style. Bold and underline are
// taken from the foreground, reverse from either side.
func styleToTcell(s config.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(attributeToColor(s.Fg)).
		Background(attributeToColor(s.Bg))

	if (s.Fg|s.Bg)&config.AttrBold != 0 {
		st = st.Bold(true)
	}
	if s.Fg&config.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if (s.Fg|s.Bg)&config.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	return st
}
