// Package persistence hides where journal data is stored. Callers load and
// save values by scope key through one contract whether the active backend
// is local storage or the remote server.
package persistence

import (
	"context"
	"strings"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Adapter stores values of type T by scope key. Load reports found=false
// for an absent value; absence is never an error.
type Adapter[T any] interface {
	Load(ctx context.Context, key string) (value T, found bool, err error)
	Save(ctx context.Context, key string, value T) error
	Delete(ctx context.Context, key string) error
}

// Scope keys.
const (
	DailyPrefix    = "daily:"
	GlobalTodosKey = "todos:global"
	QuotesKey      = "quotes"
)

// DailyKey is the scope key of one date's entry.
func DailyKey(d journal.Date) string {
	return DailyPrefix + d.String()
}

// DateOf extracts the date from a daily scope key.
func DateOf(key string) (journal.Date, bool) {
	s, ok := strings.CutPrefix(key, DailyPrefix)
	if !ok {
		return "", false
	}
	d, err := journal.ParseDate(s)
	if err != nil {
		return "", false
	}
	return d, true
}

