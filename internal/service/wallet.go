package service

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"gamewallet/internal/domain"
)

// WalletService records funding-intent requests from authenticated players.
// It never moves money itself: deposits and withdrawals are persisted as
// pending transactions for an admin to review.
type WalletService struct {
	store    Store
	notifier Notifier
}

// NewWalletService builds a WalletService on top of a store and a notifier.
func NewWalletService(store Store, notifier Notifier) *WalletService {
	return &WalletService{store: store, notifier: notifier}
}

// validAmount rejects non-positive and non-finite amounts before they
// reach persistence or arithmetic.
func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// GetBalance returns the user's current wallet balance.
func (s *WalletService) GetBalance(ctx context.Context, userID uint) (float64, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.WalletBalance, nil
}

// RequestDeposit records a pending deposit backed by an uploaded payment
// proof URL. The proof must already be stored; a deposit without evidence
// is never recorded.
func (s *WalletService) RequestDeposit(ctx context.Context, userID uint, amount float64, proofURL string) (*domain.Transaction, error) {
	if !validAmount(amount) {
		return nil, ErrAmountNotPositive
	}
	if proofURL == "" {
		return nil, ErrProofRequired
	}
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	t := &domain.Transaction{
		UserID:       userID,
		Type:         domain.TypeDeposit,
		Amount:       amount,
		PaymentProof: &proofURL,
		Status:       domain.StatusPending,
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    domain.TypeDeposit,
	}).Info("Deposit request recorded")
	s.notifier.Send(ctx, fmt.Sprintf(
		"💰 <b>New Deposit Request</b>\nName: %s\nPlayerID: %s\nAmount: ₹%v",
		user.Name, user.PlayerID, amount))
	return t, nil
}

// RequestWithdraw records a pending withdrawal. The amount is deliberately
// not checked against the current balance: funds only move when an admin
// settles the wallet, and the admin reconciles against the pending queue.
func (s *WalletService) RequestWithdraw(ctx context.Context, userID uint, amount float64) (*domain.Transaction, error) {
	if !validAmount(amount) {
		return nil, ErrAmountNotPositive
	}
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	t := &domain.Transaction{
		UserID: userID,
		Type:   domain.TypeWithdraw,
		Amount: amount,
		Status: domain.StatusPending,
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    domain.TypeWithdraw,
	}).Info("Withdrawal request recorded")
	s.notifier.Send(ctx, fmt.Sprintf(
		"🏧 <b>Withdrawal Request</b>\nName: %s\nPlayerID: %s\nAmount: ₹%v",
		user.Name, user.PlayerID, amount))
	return t, nil
}

// ListMyTransactions returns the user's own transaction history, newest first.
func (s *WalletService) ListMyTransactions(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	return s.store.TransactionsByUser(ctx, userID)
}
