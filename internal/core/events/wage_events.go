package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeWithdrawalCompleted  = "withdrawal.completed"
	EventTypeBankLinked           = "bank.linked"
	EventTypeSessionAuthenticated = "session.authenticated"
)

type WithdrawalCompletedEvent struct {
	BaseEvent
	TransactionID string `json:"transaction_id"`
	EmployeeID    string `json:"employee_id"`
	Amount        int64  `json:"amount"`
	Fee           int64  `json:"fee"`
	NewLimit      int64  `json:"new_limit"`
	BankName      string `json:"bank_name"`
}

func NewWithdrawalCompletedEvent(transactionID, employeeID string, amount, fee, newLimit int64, bankName string) *WithdrawalCompletedEvent {
	return &WithdrawalCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeWithdrawalCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"employee_id":    employeeID,
				"amount":         amount,
				"fee":            fee,
				"new_limit":      newLimit,
				"bank_name":      bankName,
			},
		},
		TransactionID: transactionID,
		EmployeeID:    employeeID,
		Amount:        amount,
		Fee:           fee,
		NewLimit:      newLimit,
		BankName:      bankName,
	}
}

type BankLinkedEvent struct {
	BaseEvent
	EmployeeID  string `json:"employee_id"`
	BankCode    string `json:"bank_code"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}

func NewBankLinkedEvent(employeeID, bankCode, accountNo, accountName string) *BankLinkedEvent {
	return &BankLinkedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBankLinked,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id":  employeeID,
				"bank_code":    bankCode,
				"account_no":   accountNo,
				"account_name": accountName,
			},
		},
		EmployeeID:  employeeID,
		BankCode:    bankCode,
		AccountNo:   accountNo,
		AccountName: accountName,
	}
}

type SessionAuthenticatedEvent struct {
	BaseEvent
	SessionID  string `json:"session_id"`
	EmployeeID string `json:"employee_id"`
}

func NewSessionAuthenticatedEvent(sessionID, employeeID string) *SessionAuthenticatedEvent {
	return &SessionAuthenticatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSessionAuthenticated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"session_id":  sessionID,
				"employee_id": employeeID,
			},
		},
		SessionID:  sessionID,
		EmployeeID: employeeID,
	}
}
