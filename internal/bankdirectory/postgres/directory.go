package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/bankaccount"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DirectoryRepository serves directory lookups from the
// bank_directory_accounts table.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) LookupHolder(ctx context.Context, bankCode, accountNo string) (string, error) {
	var account bankaccount.DirectoryAccount
	err := r.db.WithContext(ctx).
		Where("bank_code = ? AND account_no = ?", strings.ToUpper(strings.TrimSpace(bankCode)), strings.TrimSpace(accountNo)).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", bankdirectory.ErrAccountNotFound
		}
		return "", err
	}
	return account.AccountName, nil
}

// Upsert inserts the accounts, updating the holder name of existing rows.
func (r *DirectoryRepository) Upsert(ctx context.Context, accounts []bankaccount.DirectoryAccount) error {
	if len(accounts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bank_code"}, {Name: "account_no"}},
		DoUpdates: clause.AssignmentColumns([]string{"account_name", "updated_at"}),
	}).Create(&accounts).Error
}

func (r *DirectoryRepository) List(ctx context.Context) ([]bankaccount.DirectoryAccount, error) {
	var accounts []bankaccount.DirectoryAccount
	err := r.db.WithContext(ctx).Order("bank_code ASC, account_no ASC").Find(&accounts).Error
	return accounts, err
}

func (r *DirectoryRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&bankaccount.DirectoryAccount{}).Error
}
