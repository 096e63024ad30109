package session

import (
	"github.com/frahmantamala/earned-wage-access/internal/core/common/validation"
)

type IdentifyRequest struct {
	EmployeeCode string `json:"employee_code"`
}

func (r IdentifyRequest) Validate() error {
	validator := validation.NewValidator()
	validator.Field("employee_code", r.EmployeeCode).Required().MaxLength(32)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type VerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

func (r VerifyRequest) Validate() error {
	validator := validation.NewValidator()
	validator.Field("challenge_id", r.ChallengeID).Required()
	validator.Field("code", r.Code).Required().Digits().MinLength(6).MaxLength(6)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
