package service_test

import (
	"context"
	"math"
	"testing"

	"gamewallet/internal/domain"
	"gamewallet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWalletBalance(t *testing.T) {
	store := newMemStore()
	walletSvc := service.NewWalletService(store, &memNotifier{})
	adminSvc := service.NewAdminService(store)
	user := newPlayer(store)

	// Three outstanding requests, none acknowledged yet
	for _, amount := range []float64{100, 200, 50} {
		_, err := walletSvc.RequestWithdraw(context.Background(), user.ID, amount)
		require.NoError(t, err)
	}

	updated, err := adminSvc.SetWalletBalance(context.Background(), user.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.WalletBalance)

	// Settlement overwrites the balance and flags every transaction
	balance, err := walletSvc.GetBalance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, balance)

	txs, err := walletSvc.ListMyTransactions(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		assert.True(t, tx.EditedByAdmin)
	}

	// Idempotent: settling the same value again changes nothing observable
	again, err := adminSvc.SetWalletBalance(context.Background(), user.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, again.WalletBalance)
	txs, err = walletSvc.ListMyTransactions(context.Background(), user.ID)
	require.NoError(t, err)
	for _, tx := range txs {
		assert.True(t, tx.EditedByAdmin)
	}
}

func TestSetWalletBalanceUnknownUser(t *testing.T) {
	store := newMemStore()
	adminSvc := service.NewAdminService(store)
	user := newPlayer(store)
	walletSvc := service.NewWalletService(store, &memNotifier{})
	_, err := walletSvc.RequestWithdraw(context.Background(), user.ID, 10)
	require.NoError(t, err)

	_, err = adminSvc.SetWalletBalance(context.Background(), 999, 500)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	// Nothing mutated
	balance, err := walletSvc.GetBalance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
	txs, err := walletSvc.ListMyTransactions(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, txs[0].EditedByAdmin)
}

func TestSetWalletBalanceRejectsNonFinite(t *testing.T) {
	store := newMemStore()
	adminSvc := service.NewAdminService(store)
	user := newPlayer(store)

	_, err := adminSvc.SetWalletBalance(context.Background(), user.ID, math.NaN())
	assert.ErrorIs(t, err, service.ErrBalanceRequired)
	_, err = adminSvc.SetWalletBalance(context.Background(), user.ID, math.Inf(-1))
	assert.ErrorIs(t, err, service.ErrBalanceRequired)
}

func TestListWithdrawalsIsOrderedSubset(t *testing.T) {
	store := newMemStore()
	walletSvc := service.NewWalletService(store, &memNotifier{})
	adminSvc := service.NewAdminService(store)
	a := newPlayer(store)
	b := store.addUser(domain.User{Name: "Bala", PlayerID: "LUDO456", Role: domain.RolePlayer})

	_, err := walletSvc.RequestWithdraw(context.Background(), a.ID, 10)
	require.NoError(t, err)
	_, err = walletSvc.RequestDeposit(context.Background(), b.ID, 20, "https://res.example/p.png")
	require.NoError(t, err)
	_, err = walletSvc.RequestWithdraw(context.Background(), b.ID, 30)
	require.NoError(t, err)

	all, err := adminSvc.ListAllTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first, joined with the owner's identity
	assert.Equal(t, domain.TypeWithdraw, all[0].Type)
	assert.Equal(t, "Bala", all[0].Name)
	assert.Equal(t, "LUDO456", all[0].PlayerID)

	withdrawals, err := adminSvc.ListWithdrawals(context.Background())
	require.NoError(t, err)
	require.Len(t, withdrawals, 2)
	for _, w := range withdrawals {
		assert.Equal(t, domain.TypeWithdraw, w.Type)
	}
	// Same relative order as the full listing
	assert.Equal(t, all[0].ID, withdrawals[0].ID)
	assert.Equal(t, all[2].ID, withdrawals[1].ID)
}

func TestListUsersNewestFirst(t *testing.T) {
	store := newMemStore()
	adminSvc := service.NewAdminService(store)
	newPlayer(store)
	b := store.addUser(domain.User{Name: "Bala", PlayerID: "LUDO456", Role: domain.RolePlayer})

	users, err := adminSvc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, b.ID, users[0].ID)
}

// Full deposit-withdraw-settle flow across both services.
func TestSettlementScenario(t *testing.T) {
	store := newMemStore()
	walletSvc := service.NewWalletService(store, &memNotifier{})
	adminSvc := service.NewAdminService(store)
	a := newPlayer(store)

	dep, err := walletSvc.RequestDeposit(context.Background(), a.ID, 200, "https://res.example/img1.png")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, dep.Status)

	wd, err := walletSvc.RequestWithdraw(context.Background(), a.ID, 50)
	require.NoError(t, err)
	assert.Nil(t, wd.PaymentProof)

	_, err = adminSvc.SetWalletBalance(context.Background(), a.ID, 150)
	require.NoError(t, err)

	balance, err := walletSvc.GetBalance(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, balance)

	txs, err := walletSvc.ListMyTransactions(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.True(t, tx.EditedByAdmin)
	}
}
