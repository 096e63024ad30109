package bankdirectory

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/bankaccount"
)

// ErrAccountNotFound is returned by every Directory when the bank has no
// such account. Any other error means the lookup itself failed.
var ErrAccountNotFound = errors.New("bank directory: account not found")

// Directory resolves the registered holder name of a bank account.
type Directory interface {
	LookupHolder(ctx context.Context, bankCode, accountNo string) (string, error)
}

// Key is the canonical "<BANK>-<ACCOUNT>" form used by the fixture table.
func Key(bankCode, accountNo string) string {
	return strings.ToUpper(strings.TrimSpace(bankCode)) + "-" + strings.TrimSpace(accountNo)
}

// FixtureAccounts is the demo directory content.
func FixtureAccounts() []bankaccount.DirectoryAccount {
	return []bankaccount.DirectoryAccount{
		{BankCode: "VCB", AccountNo: "1234567890", AccountName: "TRAN THI B"},
		{BankCode: "VCB", AccountNo: "0987654321", AccountName: "NGUYEN VAN A"},
		{BankCode: "TCB", AccountNo: "1111222233", AccountName: "NGUYEN VAN A"},
		{BankCode: "MB", AccountNo: "5555666677", AccountName: "LE VAN C"},
	}
}
