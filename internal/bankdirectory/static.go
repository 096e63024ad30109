package bankdirectory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/bankaccount"
)

// Static serves lookups from an in-memory table, optionally after a fixed
// delay to mimic a bank round trip.
type Static struct {
	mu       sync.RWMutex
	accounts map[string]string
	latency  time.Duration
	logger   *slog.Logger
}

func NewStatic(accounts []bankaccount.DirectoryAccount, latency time.Duration, logger *slog.Logger) *Static {
	s := &Static{
		accounts: make(map[string]string, len(accounts)),
		latency:  latency,
		logger:   logger,
	}
	for _, a := range accounts {
		s.accounts[Key(a.BankCode, a.AccountNo)] = a.AccountName
	}
	return s
}

func (s *Static) Add(a bankaccount.DirectoryAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[Key(a.BankCode, a.AccountNo)] = a.AccountName
}

func (s *Static) LookupHolder(ctx context.Context, bankCode, accountNo string) (string, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.RLock()
	name, ok := s.accounts[Key(bankCode, accountNo)]
	s.mu.RUnlock()

	if !ok {
		s.logger.Debug("static directory miss", "bank_code", bankCode)
		return "", ErrAccountNotFound
	}
	return name, nil
}
