package query

import (
	"sync"

	"github.com/peco/flash/internal/util"
)

// Text holds the query typed so far during a navigation session.
// It only ever grows or shrinks at its end.
type Text struct {
	query []rune
	mutex sync.Mutex
}

func (q *Text) Reset() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.query = []rune(nil)
}

// Append adds ch to the end of the query.
func (q *Text) Append(ch rune) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.query = append(q.query, ch)
}

// Backspace removes the last rune of the query. It returns false
// if the query was already empty.
func (q *Text) Backspace() bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if len(q.query) == 0 {
		return false
	}
	q.query = q.query[:len(q.query)-1]
	return true
}

func (q *Text) String() string {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return string(q.query)
}

func (q *Text) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.query)
}

// CaseSensitive decides whether this query must be matched with case
// sensitivity. Any uppercase rune forces it on; otherwise the
// configured default applies.
func (q *Text) CaseSensitive(def bool) bool {
	return def || util.ContainsUpper(q.String())
}
