package transaction

import "time"

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPending Status = "PENDING"
	StatusFailed  Status = "FAILED"
)

type Record struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Fee       int64     `json:"fee"`
	NetAmount int64     `json:"net_amount"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	BankName  string    `json:"bank_name"`
}

// TotalDeduction is what the record took off the employee's limit.
func (r Record) TotalDeduction() int64 {
	return r.Amount + r.Fee
}
