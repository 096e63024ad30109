package txlog

import (
	"sort"
	"sync"

	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
)

// Log is the append-only withdrawal history per employee.
type Log struct {
	mu      sync.RWMutex
	entries map[string][]transaction.Record
}

func New() *Log {
	return &Log{entries: make(map[string][]transaction.Record)}
}

func (l *Log) Append(employeeID string, r transaction.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[employeeID] = append(l.entries[employeeID], r)
}

// History returns the employee's records newest first. Records with the same
// timestamp keep reverse insertion order. Unknown employees get an empty
// slice.
func (l *Log) History(employeeID string) []transaction.Record {
	l.mu.RLock()
	src := l.entries[employeeID]
	out := make([]transaction.Record, len(src))
	for i, r := range src {
		out[len(src)-1-i] = r
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (l *Log) Len(employeeID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries[employeeID])
}
