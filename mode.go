package flash

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeIncrementalSearch:
		return "incrementalSearch"
	case ModeOutlineJump:
		return "outlineJump"
	case ModeLineUp:
		return "lineUp"
	case ModeLineDown:
		return "lineDown"
	default:
		return "unknown"
	}
}

// ActiveOnly reports whether matches in this mode only ever come from
// the view holding the cursor.
func (m Mode) ActiveOnly() bool {
	switch m {
	case ModeOutlineJump, ModeLineUp, ModeLineDown:
		return true
	default:
		return false
	}
}

// IsLineHop reports whether m is one of the vertical line modes.
func (m Mode) IsLineHop() bool {
	return m == ModeLineUp || m == ModeLineDown
}
