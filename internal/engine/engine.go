package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	"github.com/frahmantamala/earned-wage-access/internal/banklink"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/bankaccount"
	datamodel "github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
	"github.com/frahmantamala/earned-wage-access/internal/core/events"
	"github.com/frahmantamala/earned-wage-access/internal/employee"
	"github.com/frahmantamala/earned-wage-access/internal/ledger"
	"github.com/frahmantamala/earned-wage-access/internal/session"
	"github.com/frahmantamala/earned-wage-access/internal/txlog"
	"github.com/frahmantamala/earned-wage-access/internal/wage"
	"github.com/frahmantamala/earned-wage-access/internal/withdrawal"
)

// Engine owns one ledger, transaction log and session gate and exposes the
// operations the transport layer is allowed to call.
type Engine struct {
	ledger    *ledger.Ledger
	log       *txlog.Log
	bus       *events.EventBus
	processor *withdrawal.Processor
	links     *banklink.Service
	gate      *session.Gate
	logger    *slog.Logger
}

type options struct {
	bcryptCost int
	now        func() time.Time
}

type Option func(*options)

// WithBcryptCost sets the cost used to hash the one-time code.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// WithClock overrides the clock for sessions and transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(cfg *internal.Config, directory bankdirectory.Directory, logger *slog.Logger, opts ...Option) (*Engine, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		ledger: ledger.New(),
		log:    txlog.New(),
		bus:    events.NewEventBus(logger),
		logger: logger,
	}

	e.processor = withdrawal.NewProcessor(e.ledger, e.log, e.bus, logger, withdrawal.WithClock(o.now))
	e.links = banklink.NewService(e.ledger, directory, e.bus, cfg.BankDirectory.LookupTimeout, logger)

	gate, err := session.NewGate(session.Config{
		OneTimeCode:  cfg.Security.OneTimeCode,
		ChallengeTTL: cfg.Security.ChallengeTTL,
		BcryptCost:   o.bcryptCost,
		Now:          o.now,
	}, e.ledger, session.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.SessionTTL), e.bus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session gate: %w", err)
	}
	e.gate = gate

	e.seed(cfg.Seed.Employees)
	e.subscribeAudit()

	return e, nil
}

func (e *Engine) seed(seeds []internal.EmployeeSeed) {
	if len(seeds) > 0 {
		for _, r := range recordsFromSeed(seeds) {
			e.ledger.Put(r)
		}
		e.logger.Info("ledger seeded from config", "employees", len(seeds))
		return
	}

	for _, r := range FixtureEmployees() {
		e.ledger.Put(r)
	}
	for employeeID, history := range FixtureHistory() {
		for _, tx := range history {
			e.log.Append(employeeID, tx)
		}
	}
	e.logger.Info("ledger seeded with fixture employees")
}

func (e *Engine) subscribeAudit() {
	audit := func(ctx context.Context, event events.Event) error {
		e.logger.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	e.bus.Subscribe(events.EventTypeWithdrawalCompleted, audit)
	e.bus.Subscribe(events.EventTypeBankLinked, audit)
	e.bus.Subscribe(events.EventTypeSessionAuthenticated, audit)
}

// Events exposes the bus so callers can subscribe further handlers.
func (e *Engine) Events() *events.EventBus {
	return e.bus
}

// Shutdown waits for in-flight event handlers.
func (e *Engine) Shutdown() {
	e.bus.Wait()
}

// Employees lists every ledger record, sorted by id.
func (e *Engine) Employees() []datamodel.Record {
	return e.ledger.List()
}

func (e *Engine) IdentifyEmployee(code string) (session.Challenge, error) {
	return e.gate.Identify(code)
}

// VerifyOneTimeCode verifies the code and opens the session in one step.
func (e *Engine) VerifyOneTimeCode(ctx context.Context, challengeID, code string) (session.Session, error) {
	if err := e.gate.VerifyCode(challengeID, code); err != nil {
		return session.Session{}, err
	}
	return e.gate.Authenticate(ctx, challengeID)
}

func (e *Engine) Resolve(token string) (*internal.Identity, error) {
	return e.gate.Resolve(token)
}

func (e *Engine) Logout(sessionID string) {
	e.gate.Logout(sessionID)
}

func (e *Engine) GetAvailableLimit(employeeID string) (int64, error) {
	record, err := e.ledger.Get(employeeID)
	if err != nil {
		return 0, err
	}
	return wage.AvailableLimit(record), nil
}

// GetTransactionHistory returns the employee's withdrawals newest first.
func (e *Engine) GetTransactionHistory(employeeID string) []transaction.Record {
	return e.log.History(employeeID)
}

func (e *Engine) Profile(employeeID string) (employee.Profile, error) {
	record, err := e.ledger.Get(employeeID)
	if err != nil {
		return employee.Profile{}, err
	}
	return employee.NewProfile(record), nil
}

func (e *Engine) LookupBankAccountHolder(ctx context.Context, bankCode, accountNo string) (string, error) {
	return e.links.LookupAccountHolder(ctx, bankCode, accountNo)
}

func (e *Engine) LinkBankAccount(ctx context.Context, employeeID, bankCode, accountNo, holderName string) (datamodel.BankLink, error) {
	return e.links.Link(ctx, employeeID, bankCode, accountNo, holderName)
}

// BankLinks is the bank-link validator as consumed by its HTTP handler.
func (e *Engine) BankLinks() banklink.ServiceAPI {
	return e.links
}

func (e *Engine) Withdraw(ctx context.Context, employeeID string, amount int64) (withdrawal.Result, error) {
	return e.processor.Withdraw(ctx, employeeID, amount)
}

func (e *Engine) Quote(employeeID string, amount int64) (wage.Quote, error) {
	return e.processor.Quote(employeeID, amount)
}

func (e *Engine) Banks() []bankaccount.Bank {
	return banklink.Banks()
}
