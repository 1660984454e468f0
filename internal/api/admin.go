package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"gamewallet/internal/domain"  // Importing domain models
	"gamewallet/internal/service" // Service layer
	"gamewallet/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Admin cache keys; invalidated as a group via the "admin:" prefix
const (
	cacheKeyAdminTransactions = "admin:transactions"
	cacheKeyAdminWithdrawals  = "admin:withdrawals"
	cacheKeyAdminUsers        = "admin:users"
)

// ListTransactionsHandler returns every transaction across all users,
// joined with the owner's name and player ID, most recent first
func ListTransactionsHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []service.TransactionEntry
		// Try to get from cache first
		found, err := utils.GetCache(ctx, rdb, cacheKeyAdminTransactions, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		entries, err := svc.ListAllTransactions(ctx) // Full review queue
		if err != nil {
			serviceError(c, err, "Failed to fetch transactions")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKeyAdminTransactions, entries, utils.CacheTTL)
		c.JSON(http.StatusOK, entries)
	}
}

// ListWithdrawalsHandler returns the withdraw-only subset of the queue
func ListWithdrawalsHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []service.TransactionEntry
		// Try to get from cache first
		found, err := utils.GetCache(ctx, rdb, cacheKeyAdminWithdrawals, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		entries, err := svc.ListWithdrawals(ctx) // Withdrawals only
		if err != nil {
			serviceError(c, err, "Failed to fetch withdrawals")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKeyAdminWithdrawals, entries, utils.CacheTTL)
		c.JSON(http.StatusOK, entries)
	}
}

// ListUsersHandler returns all users for the wallet editor, newest first;
// the password hash never serializes
func ListUsersHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.User
		// Try to get from cache first
		found, err := utils.GetCache(ctx, rdb, cacheKeyAdminUsers, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		users, err := svc.ListUsers(ctx) // All users
		if err != nil {
			serviceError(c, err, "Failed to fetch users")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKeyAdminUsers, users, utils.CacheTTL)
		c.JSON(http.StatusOK, users)
	}
}

// UpdateWalletRequest carries the new absolute balance. A pointer
// distinguishes a missing field from an explicit zero.
type UpdateWalletRequest struct {
	WalletBalance *float64 `json:"walletBalance"` // New balance, absolute set
}

// UpdateWalletHandler performs the settlement: overwrite the user's balance
// and acknowledge their whole transaction queue in one atomic step
func UpdateWalletHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Resolve the target user from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": service.ErrUserNotFound.Error()})
			return
		}
		var req UpdateWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.WalletBalance == nil {
			// Missing or non-numeric balance
			c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrBalanceRequired.Error()})
			return
		}
		ctx := c.Request.Context()
		user, err := svc.SetWalletBalance(ctx, uint(id), *req.WalletBalance)
		if err != nil {
			serviceError(c, err, "Failed to update wallet")
			return
		}
		// Drop every cached view the settlement makes stale: the user's
		// balance and history plus all admin listings
		_ = utils.DeleteCache(ctx, rdb, balanceKey(user.ID))
		_ = utils.DeleteCache(ctx, rdb, historyKey(user.ID))
		_ = utils.DeleteCacheByPrefix(ctx, rdb, "admin:")
		c.JSON(http.StatusOK, gin.H{
			"message":       "Wallet updated successfully",
			"walletBalance": user.WalletBalance,
			"user":          user,
		})
	}
}
