package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"gamewallet/internal/domain"
	"gamewallet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory service.Store used to exercise the services
// without a database.
type memStore struct {
	users  map[uint]*domain.User
	txs    []domain.Transaction
	nextID uint
	clock  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uint]*domain.User),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) addUser(u domain.User) *domain.User {
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = &u
	return &u
}

func (m *memStore) UserByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memStore) CreateTransaction(_ context.Context, t *domain.Transaction) error {
	m.nextID++
	t.ID = m.nextID
	m.clock = m.clock.Add(time.Second)
	t.CreatedAt = m.clock
	m.txs = append(m.txs, *t)
	return nil
}

// newestFirst returns the stored transactions in reverse insertion order,
// mirroring the created_at desc listings of the real store.
func (m *memStore) newestFirst() []domain.Transaction {
	out := make([]domain.Transaction, 0, len(m.txs))
	for i := len(m.txs) - 1; i >= 0; i-- {
		out = append(out, m.txs[i])
	}
	return out
}

func (m *memStore) TransactionsByUser(_ context.Context, userID uint) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range m.newestFirst() {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) entry(t domain.Transaction) service.TransactionEntry {
	owner := m.users[t.UserID]
	return service.TransactionEntry{
		ID:            t.ID,
		UserID:        t.UserID,
		Name:          owner.Name,
		PlayerID:      owner.PlayerID,
		Type:          t.Type,
		Amount:        t.Amount,
		PaymentProof:  t.PaymentProof,
		Status:        t.Status,
		EditedByAdmin: t.EditedByAdmin,
		CreatedAt:     t.CreatedAt,
	}
}

func (m *memStore) AllTransactions(_ context.Context) ([]service.TransactionEntry, error) {
	var out []service.TransactionEntry
	for _, t := range m.newestFirst() {
		out = append(out, m.entry(t))
	}
	return out, nil
}

func (m *memStore) Withdrawals(_ context.Context) ([]service.TransactionEntry, error) {
	var out []service.TransactionEntry
	for _, t := range m.newestFirst() {
		if t.Type == domain.TypeWithdraw {
			out = append(out, m.entry(t))
		}
	}
	return out, nil
}

func (m *memStore) AllUsers(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for id := m.nextID; id > 0; id-- {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) SettleWallet(_ context.Context, userID uint, balance float64) (*domain.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	u.WalletBalance = balance
	for i := range m.txs {
		if m.txs[i].UserID == userID {
			m.txs[i].EditedByAdmin = true
		}
	}
	copied := *u
	return &copied, nil
}

// memNotifier records every message it was asked to deliver.
type memNotifier struct {
	sent []string
}

func (n *memNotifier) Send(_ context.Context, text string) {
	n.sent = append(n.sent, text)
}

func newPlayer(store *memStore) *domain.User {
	return store.addUser(domain.User{
		Name:     "Arjun",
		Email:    "arjun@example.com",
		Password: "hash",
		PlayerID: "LUDO123",
		Role:     domain.RolePlayer,
	})
}

func TestGetBalance(t *testing.T) {
	store := newMemStore()
	notifier := &memNotifier{}
	svc := service.NewWalletService(store, notifier)

	user := store.addUser(domain.User{Name: "Arjun", PlayerID: "LUDO123", WalletBalance: 240})

	balance, err := svc.GetBalance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 240.0, balance)

	_, err = svc.GetBalance(context.Background(), 999)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestRequestDepositValidation(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		proof   string
		wantErr error
	}{
		{name: "zero amount", amount: 0, proof: "https://res.example/proof.png", wantErr: service.ErrAmountNotPositive},
		{name: "negative amount", amount: -50, proof: "https://res.example/proof.png", wantErr: service.ErrAmountNotPositive},
		{name: "NaN amount", amount: math.NaN(), proof: "https://res.example/proof.png", wantErr: service.ErrAmountNotPositive},
		{name: "infinite amount", amount: math.Inf(1), proof: "https://res.example/proof.png", wantErr: service.ErrAmountNotPositive},
		{name: "missing proof", amount: 100, proof: "", wantErr: service.ErrProofRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			notifier := &memNotifier{}
			svc := service.NewWalletService(store, notifier)
			user := newPlayer(store)

			_, err := svc.RequestDeposit(context.Background(), user.ID, tt.amount, tt.proof)
			assert.ErrorIs(t, err, tt.wantErr)
			// A failed request leaves no partial record and sends nothing
			assert.Empty(t, store.txs)
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestRequestDepositCreatesPendingTransaction(t *testing.T) {
	store := newMemStore()
	notifier := &memNotifier{}
	svc := service.NewWalletService(store, notifier)
	user := newPlayer(store)

	// A pre-existing entry to check ordering against
	_, err := svc.RequestWithdraw(context.Background(), user.ID, 25)
	require.NoError(t, err)

	tx, err := svc.RequestDeposit(context.Background(), user.ID, 100, "https://res.example/img1.png")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeDeposit, tx.Type)
	assert.Equal(t, 100.0, tx.Amount)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.False(t, tx.EditedByAdmin)
	require.NotNil(t, tx.PaymentProof)
	assert.Equal(t, "https://res.example/img1.png", *tx.PaymentProof)

	// The new deposit lists before the older withdrawal
	txs, err := svc.ListMyTransactions(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, tx.ID, txs[0].ID)

	// Notification names the requester, their player ID, and the amount
	require.Len(t, notifier.sent, 2)
	assert.Contains(t, notifier.sent[1], "New Deposit Request")
	assert.Contains(t, notifier.sent[1], "Arjun")
	assert.Contains(t, notifier.sent[1], "LUDO123")
	assert.Contains(t, notifier.sent[1], "100")
}

func TestRequestDepositUnknownUser(t *testing.T) {
	store := newMemStore()
	svc := service.NewWalletService(store, &memNotifier{})

	_, err := svc.RequestDeposit(context.Background(), 42, 100, "https://res.example/img.png")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Empty(t, store.txs)
}

func TestRequestWithdraw(t *testing.T) {
	store := newMemStore()
	notifier := &memNotifier{}
	svc := service.NewWalletService(store, notifier)
	user := newPlayer(store)

	// Withdrawals may exceed the current balance: the request only records
	// intent, and the admin reconciles against the queue before settling
	tx, err := svc.RequestWithdraw(context.Background(), user.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeWithdraw, tx.Type)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Nil(t, tx.PaymentProof)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Withdrawal Request")
	assert.Contains(t, notifier.sent[0], "LUDO123")

	_, err = svc.RequestWithdraw(context.Background(), user.ID, -1)
	assert.ErrorIs(t, err, service.ErrAmountNotPositive)
}

func TestListMyTransactionsIsScopedToOwner(t *testing.T) {
	store := newMemStore()
	svc := service.NewWalletService(store, &memNotifier{})
	a := newPlayer(store)
	b := store.addUser(domain.User{Name: "Bala", PlayerID: "LUDO456", Role: domain.RolePlayer})

	_, err := svc.RequestWithdraw(context.Background(), a.ID, 10)
	require.NoError(t, err)
	_, err = svc.RequestWithdraw(context.Background(), b.ID, 20)
	require.NoError(t, err)

	txs, err := svc.ListMyTransactions(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, a.ID, txs[0].UserID)
}
