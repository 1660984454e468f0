package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gamewallet/internal/domain"
	"gamewallet/internal/service"
)

// GormStore implements service.Store on top of a GORM-managed MySQL database.
type GormStore struct {
	db *gorm.DB
}

// New wraps an open GORM handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// UserByID fetches a user by primary key.
func (s *GormStore) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateTransaction appends a transaction row.
func (s *GormStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// TransactionsByUser returns one user's transactions, newest first.
func (s *GormStore) TransactionsByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&txs).Error
	return txs, err
}

// entryColumns selects the transaction columns joined with the owner's
// name and player ID for the admin review queue.
const entryColumns = "transactions.id, transactions.user_id, users.name, users.player_id, " +
	"transactions.type, transactions.amount, transactions.payment_proof, " +
	"transactions.status, transactions.edited_by_admin, transactions.created_at"

// AllTransactions returns every transaction joined with its owner, newest first.
func (s *GormStore) AllTransactions(ctx context.Context) ([]service.TransactionEntry, error) {
	var entries []service.TransactionEntry
	err := s.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select(entryColumns).
		Joins("JOIN users ON users.id = transactions.user_id").
		Order("transactions.created_at desc, transactions.id desc").
		Scan(&entries).Error
	return entries, err
}

// Withdrawals returns the withdraw subset of the queue in the same order.
func (s *GormStore) Withdrawals(ctx context.Context) ([]service.TransactionEntry, error) {
	var entries []service.TransactionEntry
	err := s.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select(entryColumns).
		Joins("JOIN users ON users.id = transactions.user_id").
		Where("transactions.type = ?", domain.TypeWithdraw).
		Order("transactions.created_at desc, transactions.id desc").
		Scan(&entries).Error
	return entries, err
}

// AllUsers returns all users, newest first.
func (s *GormStore) AllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&users).Error
	return users, err
}

// SettleWallet overwrites the balance and bulk-marks the user's transactions
// inside one database transaction, so no reader sees a half-applied settlement.
func (s *GormStore) SettleWallet(ctx context.Context, userID uint, balance float64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrUserNotFound
			}
			return err
		}
		if err := tx.Model(&user).Update("wallet_balance", balance).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Transaction{}).
			Where("user_id = ?", userID).
			Update("edited_by_admin", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
