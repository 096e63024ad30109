package banklink

import (
	"strings"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/core/common/validation"
)

type LinkRequest struct {
	BankCode    string `json:"bank_code"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}

func (r *LinkRequest) Normalize() {
	r.BankCode = strings.ToUpper(strings.TrimSpace(r.BankCode))
	r.AccountNo = strings.TrimSpace(r.AccountNo)
	r.AccountName = strings.TrimSpace(r.AccountName)
}

func (r *LinkRequest) Validate() error {
	validator := validation.NewValidator()
	validator.Field("bank_code", r.BankCode).Required().Custom(supportedBankRule("bank_code"))
	validator.Field("account_no", r.AccountNo).Required().Digits().MinLength(6).MaxLength(20)
	validator.Field("account_name", r.AccountName).Required().MaxLength(100)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type LookupRequest struct {
	BankCode  string
	AccountNo string
}

func (r *LookupRequest) Validate() error {
	validator := validation.NewValidator()
	validator.Field("bank_code", r.BankCode).Required().Custom(supportedBankRule("bank_code"))
	validator.Field("account_no", r.AccountNo).Required().Digits().MinLength(6).MaxLength(20)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type LookupResponse struct {
	BankCode    string `json:"bank_code"`
	BankName    string `json:"bank_name"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}

type LinkResponse struct {
	BankCode    string `json:"bank_code"`
	BankName    string `json:"bank_name"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}

func supportedBankRule(field string) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		code, _ := value.(string)
		if code != "" && !IsSupportedBank(code) {
			return errors.NewValidationFieldError(field, "bank_code is not supported", errors.ErrCodeValidationFailed)
		}
		return nil
	}
}
