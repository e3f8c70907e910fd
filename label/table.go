package label

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{targets: make(map[rune]Target)}
}

// Set maps ch to t. It returns false, and leaves the table untouched,
// if ch is already taken.
func (t *Table) Set(ch rune, target Target) bool {
	if _, ok := t.targets[ch]; ok {
		return false
	}
	t.targets[ch] = target
	t.keys = append(t.keys, ch)
	return true
}

// Lookup returns the target for ch.
func (t *Table) Lookup(ch rune) (Target, bool) {
	if t == nil {
		return Target{}, false
	}
	v, ok := t.targets[ch]
	return v, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the label characters in the order they were assigned.
func (t *Table) Keys() []rune {
	if t == nil {
		return nil
	}
	return t.keys
}
