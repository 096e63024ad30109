package engine

import (
	"time"

	"github.com/frahmantamala/earned-wage-access/internal"
	datamodel "github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
)

var fixtureZone = time.FixedZone("ICT", 7*60*60)

// FixtureEmployees are the demo employees loaded when the config seeds none.
func FixtureEmployees() []datamodel.Record {
	return []datamodel.Record{
		{
			ID:             "NV001",
			Name:           "Nguyễn Văn A",
			Phone:          "0901234567",
			GrossSalary:    20_000_000,
			WorkingDays:    15,
			AdvancedAmount: 2_000_000,
		},
		{
			ID:          "NV002",
			Name:        "Trần Thị B",
			Phone:       "0909876543",
			GrossSalary: 15_000_000,
			WorkingDays: 20,
			LinkedBank: &datamodel.BankLink{
				BankCode:    "VCB",
				AccountNo:   "1234567890",
				AccountName: "TRAN THI B",
			},
		},
	}
}

// FixtureHistory is NV001's prior withdrawals. These rows predate the
// current fee policy and carry net = amount - fee.
func FixtureHistory() map[string][]transaction.Record {
	return map[string][]transaction.Record{
		"NV001": {
			{
				ID:        "TXN002",
				Amount:    1_000_000,
				Fee:       10_000,
				NetAmount: 990_000,
				Status:    transaction.StatusSuccess,
				CreatedAt: time.Date(2026, time.January, 25, 14, 15, 0, 0, fixtureZone),
				BankName:  "Vietcombank",
			},
			{
				ID:        "TXN001",
				Amount:    1_000_000,
				Fee:       10_000,
				NetAmount: 990_000,
				Status:    transaction.StatusSuccess,
				CreatedAt: time.Date(2026, time.January, 28, 10, 30, 0, 0, fixtureZone),
				BankName:  "Vietcombank",
			},
		},
	}
}

func recordsFromSeed(seeds []internal.EmployeeSeed) []datamodel.Record {
	records := make([]datamodel.Record, 0, len(seeds))
	for _, s := range seeds {
		r := datamodel.Record{
			ID:             internal.NormalizeEmployeeID(s.ID),
			Name:           s.Name,
			Phone:          s.Phone,
			GrossSalary:    s.GrossSalary,
			WorkingDays:    s.WorkingDays,
			AdvancedAmount: s.AdvancedAmount,
		}
		if s.LinkedBank != nil {
			r.LinkedBank = &datamodel.BankLink{
				BankCode:    s.LinkedBank.BankCode,
				AccountNo:   s.LinkedBank.AccountNo,
				AccountName: s.LinkedBank.AccountName,
			}
		}
		records = append(records, r)
	}
	return records
}
