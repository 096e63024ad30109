package employee

import (
	"github.com/frahmantamala/earned-wage-access/internal/banklink"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/employee"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
	"github.com/frahmantamala/earned-wage-access/internal/wage"
)

type ServiceAPI interface {
	Profile(employeeID string) (Profile, error)
	GetAvailableLimit(employeeID string) (int64, error)
	GetTransactionHistory(employeeID string) []transaction.Record
}

type LinkedBank struct {
	BankCode    string `json:"bank_code"`
	BankName    string `json:"bank_name"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}

// Profile is a fresh read of the ledger, unlike the identity captured at login.
type Profile struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Phone          string      `json:"phone"`
	GrossSalary    int64       `json:"gross_salary"`
	WorkingDays    int         `json:"working_days"`
	AdvancedAmount int64       `json:"advanced_amount"`
	EarnedAmount   int64       `json:"earned_amount"`
	AvailableLimit int64       `json:"available_limit"`
	LinkedBank     *LinkedBank `json:"linked_bank"`
}

func NewProfile(r employee.Record) Profile {
	p := Profile{
		ID:             r.ID,
		Name:           r.Name,
		Phone:          r.Phone,
		GrossSalary:    r.GrossSalary,
		WorkingDays:    r.WorkingDays,
		AdvancedAmount: r.AdvancedAmount,
		EarnedAmount:   wage.EarnedCeiling(r),
		AvailableLimit: wage.AvailableLimit(r),
	}
	if r.LinkedBank != nil {
		p.LinkedBank = &LinkedBank{
			BankCode:    r.LinkedBank.BankCode,
			BankName:    banklink.BankName(r.LinkedBank.BankCode),
			AccountNo:   r.LinkedBank.AccountNo,
			AccountName: r.LinkedBank.AccountName,
		}
	}
	return p
}

type LimitResponse struct {
	EmployeeID     string `json:"employee_id"`
	AvailableLimit int64  `json:"available_limit"`
}

type HistoryResponse struct {
	Transactions []transaction.Record `json:"transactions"`
}
