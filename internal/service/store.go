package service

import (
	"context"
	"time"

	"gamewallet/internal/domain"
)

// Store is the persistence boundary for users and transactions.
// Implementations must return ErrUserNotFound when a user lookup misses.
type Store interface {
	// UserByID fetches a single user by primary key.
	UserByID(ctx context.Context, id uint) (*domain.User, error)
	// CreateTransaction appends a new transaction record.
	CreateTransaction(ctx context.Context, t *domain.Transaction) error
	// TransactionsByUser returns one user's transactions, newest first.
	TransactionsByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
	// AllTransactions returns every transaction joined with its owner, newest first.
	AllTransactions(ctx context.Context) ([]TransactionEntry, error)
	// Withdrawals returns the withdraw subset of AllTransactions, same order.
	Withdrawals(ctx context.Context) ([]TransactionEntry, error)
	// AllUsers returns all users, newest first.
	AllUsers(ctx context.Context) ([]domain.User, error)
	// SettleWallet atomically overwrites the user's balance and marks every
	// transaction of that user as edited by an admin. No reader may observe
	// one half of the effect without the other.
	SettleWallet(ctx context.Context, userID uint, balance float64) (*domain.User, error)
}

// TransactionEntry is a transaction joined with its owner's identity,
// the shape the admin review queue renders.
type TransactionEntry struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	Name          string    `json:"name"`
	PlayerID      string    `json:"playerId"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	PaymentProof  *string   `json:"paymentProof"`
	Status        string    `json:"status"`
	EditedByAdmin bool      `json:"editedByAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Notifier delivers best-effort human-readable messages to the operators.
// Implementations absorb their own failures; a messaging outage must never
// block a financial request.
type Notifier interface {
	Send(ctx context.Context, text string)
}
