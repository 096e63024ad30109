package banklink

import (
	"strings"

	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/bankaccount"
)

var supportedBanks = []bankaccount.Bank{
	{Code: "VCB", Name: "Vietcombank"},
	{Code: "TCB", Name: "Techcombank"},
	{Code: "MB", Name: "MB Bank"},
	{Code: "ACB", Name: "ACB"},
	{Code: "VPB", Name: "VPBank"},
}

// Banks returns a copy of the supported bank catalogue.
func Banks() []bankaccount.Bank {
	out := make([]bankaccount.Bank, len(supportedBanks))
	copy(out, supportedBanks)
	return out
}

func IsSupportedBank(code string) bool {
	_, ok := lookupBank(code)
	return ok
}

// BankName resolves a display name, falling back to the code itself.
func BankName(code string) string {
	if b, ok := lookupBank(code); ok {
		return b.Name
	}
	return code
}

func lookupBank(code string) (bankaccount.Bank, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, b := range supportedBanks {
		if b.Code == code {
			return b, true
		}
	}
	return bankaccount.Bank{}, false
}
