package wage

import (
	"math"

	"github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
)

const (
	StandardCycleDays = internal.StandardCycleDays
	// AdvancePercent of earned wages may be drawn early.
	AdvancePercent   = 50
	LimitGranularity = 1000

	FeeThreshold int64 = 1_000_000
	FeeLow       int64 = 10_000
	FeeHigh      int64 = 20_000
)

// EarnedCeiling is the part of the wages earned so far that may be advanced
// in this cycle, before subtracting what was already drawn.
func EarnedCeiling(r employee.Record) int64 {
	if r.GrossSalary <= 0 || r.WorkingDays <= 0 {
		return 0
	}
	return r.GrossSalary * int64(r.WorkingDays) * AdvancePercent / (StandardCycleDays * 100)
}

// AvailableLimit floors (ceiling - advanced) to a multiple of
// LimitGranularity. The result may be negative and is not clamped.
func AvailableLimit(r employee.Record) int64 {
	return floorTo(EarnedCeiling(r)-r.AdvancedAmount, LimitGranularity)
}

// Fee is the flat charge for a withdrawal of amount.
func Fee(amount int64) int64 {
	if amount < FeeThreshold {
		return FeeLow
	}
	return FeeHigh
}

// TotalDeduction is amount plus its fee, saturating at math.MaxInt64.
func TotalDeduction(amount int64) int64 {
	fee := Fee(amount)
	if amount > math.MaxInt64-fee {
		return math.MaxInt64
	}
	return amount + fee
}

// WithinLimit reports whether amount and its fee together fit in limit.
// It never adds the two, so huge amounts cannot wrap around.
func WithinLimit(amount, limit int64) bool {
	fee := Fee(amount)
	return limit >= fee && amount <= limit-fee
}

func floorTo(v, step int64) int64 {
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	return q * step
}
