package withdrawal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/banklink"
	"github.com/frahmantamala/earned-wage-access/internal/core/common/validation"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
	"github.com/frahmantamala/earned-wage-access/internal/core/events"
	"github.com/frahmantamala/earned-wage-access/internal/wage"
)

type ServiceAPI interface {
	Withdraw(ctx context.Context, employeeID string, amount int64) (Result, error)
	Quote(employeeID string, amount int64) (wage.Quote, error)
}

// Processor is the only writer of advanced amounts. The check against the
// limit and the deduction run under one per-employee lock.
type Processor struct {
	ledger    LedgerAPI
	log       LogAPI
	publisher events.Publisher
	locks     *keyedMutex
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

type Option func(*Processor)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithIDGenerator overrides how transaction ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(p *Processor) { p.newID = newID }
}

func NewProcessor(ledger LedgerAPI, log LogAPI, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Processor {
	p := &Processor{
		ledger:    ledger,
		log:       log,
		publisher: publisher,
		locks:     newKeyedMutex(),
		logger:    logger,
		now:       time.Now,
		newID:     newTransactionID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return TransactionIDPrefix + id.String()
}

// Withdraw draws amount against the employee's limit. On any error the
// ledger and the transaction log are left untouched.
func (p *Processor) Withdraw(ctx context.Context, employeeID string, amount int64) (Result, error) {
	if appErr := validation.ValidateWithdrawalAmount(amount); appErr != nil {
		return Result{}, appErr
	}

	result, err := p.withdrawLocked(employeeID, amount)
	if err != nil {
		return Result{}, err
	}

	if p.publisher != nil {
		tx := result.Transaction
		event := events.NewWithdrawalCompletedEvent(tx.ID, employeeID, tx.Amount, tx.Fee, result.NewLimit, tx.BankName)
		if err := p.publisher.Publish(ctx, event); err != nil {
			p.logger.Error("failed to publish withdrawal event", "employee_id", employeeID, "transaction_id", tx.ID, "error", err)
		}
	}

	return result, nil
}

func (p *Processor) withdrawLocked(employeeID string, amount int64) (Result, error) {
	unlock := p.locks.Lock(employeeID)
	defer unlock()

	record, err := p.ledger.Get(employeeID)
	if err != nil {
		return Result{}, err
	}

	if !record.HasLinkedBank() {
		p.logger.Warn("withdrawal without linked bank", "employee_id", employeeID)
		return Result{}, errors.ErrBankNotLinked
	}

	limit := wage.AvailableLimit(record)
	fee := wage.Fee(amount)
	total := wage.TotalDeduction(amount)

	if !wage.WithinLimit(amount, limit) {
		p.logger.Warn("withdrawal exceeds limit",
			"employee_id", employeeID,
			"amount", amount,
			"fee", fee,
			"limit", limit)
		return Result{}, errors.NewLimitExceededError(total, limit)
	}

	updated, err := p.ledger.ApplyDeduction(employeeID, total)
	if err != nil {
		p.logger.Error("failed to apply deduction", "employee_id", employeeID, "error", err)
		return Result{}, err
	}

	tx := transaction.Record{
		ID:        p.newID(),
		Amount:    amount,
		Fee:       fee,
		NetAmount: amount,
		Status:    transaction.StatusSuccess,
		CreatedAt: p.now(),
		BankName:  banklink.BankName(record.LinkedBank.BankCode),
	}
	p.log.Append(employeeID, tx)

	newLimit := wage.AvailableLimit(updated)

	p.logger.Info("withdrawal completed",
		"employee_id", employeeID,
		"transaction_id", tx.ID,
		"amount", amount,
		"fee", fee,
		"new_limit", newLimit)

	return Result{Transaction: tx, NewLimit: newLimit}, nil
}

// Quote previews a withdrawal without changing anything.
func (p *Processor) Quote(employeeID string, amount int64) (wage.Quote, error) {
	if appErr := validation.ValidateWithdrawalAmount(amount); appErr != nil {
		return wage.Quote{}, appErr
	}

	record, err := p.ledger.Get(employeeID)
	if err != nil {
		return wage.Quote{}, err
	}
	return wage.NewQuote(record, amount), nil
}
