package banklink

import (
	"context"
	goerrors "errors"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/events"
)

type LedgerAPI interface {
	Get(id string) (employee.Record, error)
	AttachBankLink(id string, link employee.BankLink) (employee.Record, error)
}

type ServiceAPI interface {
	LookupAccountHolder(ctx context.Context, bankCode, accountNo string) (string, error)
	Link(ctx context.Context, employeeID, bankCode, accountNo, holderName string) (employee.BankLink, error)
}

// Service validates and attaches payout accounts.
type Service struct {
	ledger        LedgerAPI
	directory     bankdirectory.Directory
	publisher     events.Publisher
	lookupTimeout time.Duration
	logger        *slog.Logger
}

func NewService(ledger LedgerAPI, directory bankdirectory.Directory, publisher events.Publisher, lookupTimeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		ledger:        ledger,
		directory:     directory,
		publisher:     publisher,
		lookupTimeout: lookupTimeout,
		logger:        logger,
	}
}

// LookupAccountHolder asks the directory for the registered holder name.
// A missing account is AccountNotFound; every other failure, timeouts
// included, is a retryable LookupFailed.
func (s *Service) LookupAccountHolder(ctx context.Context, bankCode, accountNo string) (string, error) {
	req := LookupRequest{BankCode: bankCode, AccountNo: accountNo}
	if err := req.Validate(); err != nil {
		return "", err
	}

	lookupCtx, cancel := errors.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	name, err := s.directory.LookupHolder(lookupCtx, bankCode, accountNo)
	if err != nil {
		if goerrors.Is(err, bankdirectory.ErrAccountNotFound) {
			s.logger.Info("bank account not found", "bank_code", bankCode)
			return "", errors.ErrAccountNotFound
		}
		s.logger.Error("bank directory lookup failed", "bank_code", bankCode, "error", err)
		return "", errors.NewLookupFailedError(err)
	}

	s.logger.Info("bank account resolved", "bank_code", bankCode)
	return name, nil
}

// Link checks the holder name against the employee's legal name and attaches
// the account on success. The directory is not consulted again here.
func (s *Service) Link(ctx context.Context, employeeID, bankCode, accountNo, holderName string) (employee.BankLink, error) {
	req := LinkRequest{BankCode: bankCode, AccountNo: accountNo, AccountName: holderName}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.BankLink{}, err
	}

	record, err := s.ledger.Get(employeeID)
	if err != nil {
		return employee.BankLink{}, err
	}

	if !NameMatches(record.Name, req.AccountName) {
		s.logger.Warn("bank holder name mismatch", "employee_id", employeeID, "bank_code", req.BankCode)
		return employee.BankLink{}, errors.ErrNameMismatch
	}

	link := employee.BankLink{
		BankCode:    req.BankCode,
		AccountNo:   req.AccountNo,
		AccountName: NormalizeName(req.AccountName),
	}
	if _, err := s.ledger.AttachBankLink(employeeID, link); err != nil {
		return employee.BankLink{}, err
	}

	s.logger.Info("bank account linked", "employee_id", employeeID, "bank_code", link.BankCode)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewBankLinkedEvent(employeeID, link.BankCode, link.AccountNo, link.AccountName)); err != nil {
			s.logger.Error("failed to publish bank linked event", "employee_id", employeeID, "error", err)
		}
	}

	return link, nil
}
