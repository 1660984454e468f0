package service

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"gamewallet/internal/domain"
)

// AdminService provides privileged views over the whole transaction and
// user universe, and SetWalletBalance, the single settlement operation.
type AdminService struct {
	store Store
}

// NewAdminService builds an AdminService on top of a store.
func NewAdminService(store Store) *AdminService {
	return &AdminService{store: store}
}

// ListAllTransactions returns every transaction across all users, joined
// with the owner's name and player ID, newest first.
func (s *AdminService) ListAllTransactions(ctx context.Context) ([]TransactionEntry, error) {
	return s.store.AllTransactions(ctx)
}

// ListWithdrawals returns the withdraw-only subset of the review queue,
// keeping the same relative order as ListAllTransactions.
func (s *AdminService) ListWithdrawals(ctx context.Context) ([]TransactionEntry, error) {
	return s.store.Withdrawals(ctx)
}

// ListUsers returns all users, newest first. The credential field never
// leaves the projection (excluded at serialization).
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.AllUsers(ctx)
}

// SetWalletBalance overwrites the user's balance to exactly newBalance and
// marks every existing transaction of that user as edited by an admin, as
// one atomic effect. This is an absolute set, not a delta against the
// pending queue; the admin inspects the queue and asserts the new total.
func (s *AdminService) SetWalletBalance(ctx context.Context, userID uint, newBalance float64) (*domain.User, error) {
	if math.IsNaN(newBalance) || math.IsInf(newBalance, 0) {
		return nil, ErrBalanceRequired
	}
	user, err := s.store.SettleWallet(ctx, userID, newBalance)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"wallet_balance": newBalance,
	}).Info("Wallet settled by admin")
	return user, nil
}
