package wage

import (
	"math"

	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
)

// Quote is the breakdown shown before a withdrawal is confirmed.
type Quote struct {
	Amount         int64 `json:"amount"`
	Fee            int64 `json:"fee"`
	TotalDeduction int64 `json:"total_deduction"`
	NetAmount      int64 `json:"net_amount"`
	AvailableLimit int64 `json:"available_limit"`
	LimitAfter     int64 `json:"limit_after"`
	WithinLimit    bool  `json:"within_limit"`
}

func NewQuote(r employee.Record, amount int64) Quote {
	fee := Fee(amount)
	limit := AvailableLimit(r)
	total := TotalDeduction(amount)
	after := limit - total
	if after > limit {
		after = math.MinInt64
	}
	return Quote{
		Amount:         amount,
		Fee:            fee,
		TotalDeduction: total,
		NetAmount:      amount,
		AvailableLimit: limit,
		LimitAfter:     after,
		WithinLimit:    WithinLimit(amount, limit),
	}
}
