package bankaccount

import "time"

// DirectoryAccount is a row of the bank directory: the registered holder
// name of an account at a bank.
type DirectoryAccount struct {
	ID          int64     `gorm:"primaryKey"`
	BankCode    string    `gorm:"column:bank_code;not null;uniqueIndex:idx_bank_directory_account"`
	AccountNo   string    `gorm:"column:account_no;not null;uniqueIndex:idx_bank_directory_account"`
	AccountName string    `gorm:"column:account_name;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DirectoryAccount) TableName() string {
	return "bank_directory_accounts"
}

// Bank is an entry of the supported bank catalogue.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
