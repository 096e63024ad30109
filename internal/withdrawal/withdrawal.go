package withdrawal

import (
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
)

const TransactionIDPrefix = "TXN-"

type LedgerAPI interface {
	Get(id string) (employee.Record, error)
	ApplyDeduction(id string, total int64) (employee.Record, error)
}

type LogAPI interface {
	Append(employeeID string, r transaction.Record)
}

// Result is a completed withdrawal and the limit left after it.
type Result struct {
	Transaction transaction.Record `json:"transaction"`
	NewLimit    int64              `json:"new_limit"`
}
