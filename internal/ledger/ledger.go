package ledger

import (
	"sort"
	"sync"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
)

// RepositoryAPI is the employee ledger as seen by the services. Every method
// is individually atomic and returns copies.
type RepositoryAPI interface {
	Get(id string) (employee.Record, error)
	ApplyDeduction(id string, total int64) (employee.Record, error)
	AttachBankLink(id string, link employee.BankLink) (employee.Record, error)
}

// Ledger keeps employee records in memory for the life of the process. It
// never checks limits; that is the withdrawal processor's job.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]*employee.Record
}

func New() *Ledger {
	return &Ledger{records: make(map[string]*employee.Record)}
}

// Put inserts or replaces a record. Only used for seeding.
func (l *Ledger) Put(r employee.Record) {
	cp := r.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[cp.ID] = &cp
}

func (l *Ledger) Get(id string) (employee.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, ok := l.records[id]
	if !ok {
		return employee.Record{}, errors.ErrEmployeeNotFound
	}
	return r.Clone(), nil
}

func (l *Ledger) ApplyDeduction(id string, total int64) (employee.Record, error) {
	if total < 0 {
		return employee.Record{}, errors.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.records[id]
	if !ok {
		return employee.Record{}, errors.ErrEmployeeNotFound
	}
	r.AdvancedAmount += total
	return r.Clone(), nil
}

func (l *Ledger) AttachBankLink(id string, link employee.BankLink) (employee.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.records[id]
	if !ok {
		return employee.Record{}, errors.ErrEmployeeNotFound
	}
	r.LinkedBank = &link
	return r.Clone(), nil
}

// List returns every record ordered by id.
func (l *Ledger) List() []employee.Record {
	l.mu.RLock()
	out := make([]employee.Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r.Clone())
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
