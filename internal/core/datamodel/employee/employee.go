package employee

// BankLink is the payout account attached to an employee. A link is never
// edited in place; linking again replaces it.
type BankLink struct {
	BankCode    string `json:"bank_code"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}

type Record struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	GrossSalary    int64     `json:"gross_salary"`
	WorkingDays    int       `json:"working_days"`
	AdvancedAmount int64     `json:"advanced_amount"`
	LinkedBank     *BankLink `json:"linked_bank,omitempty"`
}

// Clone returns a deep copy so callers never share the LinkedBank pointer.
func (r Record) Clone() Record {
	if r.LinkedBank != nil {
		link := *r.LinkedBank
		r.LinkedBank = &link
	}
	return r
}

func (r Record) HasLinkedBank() bool {
	return r.LinkedBank != nil
}
