package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation

	"gamewallet/internal/domain"     // Importing domain models
	"gamewallet/internal/middleware" // Authenticated user helpers
	"gamewallet/internal/service"    // Service layer
	"gamewallet/internal/utils"      // Utility functions
	"gamewallet/pkg/cloudinary"      // Payment-proof storage

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Public IDs for uploaded proofs
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// balanceKey is the cache key for one user's wallet balance
func balanceKey(userID uint) string {
	return "wallet:balance:" + strconv.Itoa(int(userID))
}

// historyKey is the cache key for one user's transaction history
func historyKey(userID uint) string {
	return "txhistory:user:" + strconv.Itoa(int(userID))
}

// invalidateAfterRequest drops every cached view a new deposit or
// withdrawal makes stale: the requester's history and the admin queues
func invalidateAfterRequest(c *gin.Context, rdb *redis.Client, userID uint) {
	ctx := c.Request.Context()
	_ = utils.DeleteCache(ctx, rdb, historyKey(userID))
	_ = utils.DeleteCacheByPrefix(ctx, rdb, "admin:")
}

// GetBalanceHandler returns the authenticated user's wallet balance
func GetBalanceHandler(svc *service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			// If not set, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		var cached struct {
			WalletBalance float64 `json:"walletBalance"` // Cached balance
		}
		// Try to get from cache first
		found, err := utils.GetCache(ctx, rdb, balanceKey(userID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"walletBalance": cached.WalletBalance, "cached": true})
			return
		}
		balance, err := svc.GetBalance(ctx, userID) // Read from the ledger store
		if err != nil {
			serviceError(c, err, "Failed to fetch balance")
			return
		}
		cached.WalletBalance = balance
		_ = utils.SetCache(ctx, rdb, balanceKey(userID), cached, utils.CacheTTL) // Cache the balance
		c.JSON(http.StatusOK, gin.H{"walletBalance": balance, "cached": false})
	}
}

// MyTransactionsHandler returns the authenticated user's transaction
// history, most recent first
func MyTransactionsHandler(svc *service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		var cached []domain.Transaction
		// Try to get from cache first
		found, err := utils.GetCache(ctx, rdb, historyKey(userID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		txs, err := svc.ListMyTransactions(ctx, userID) // Fresh query per call
		if err != nil {
			serviceError(c, err, "Failed to fetch transactions")
			return
		}
		_ = utils.SetCache(ctx, rdb, historyKey(userID), txs, utils.CacheTTL) // Cache the listing
		c.JSON(http.StatusOK, txs)
	}
}

// DepositRequestHandler accepts a multipart form with an amount and a
// payment screenshot, stores the screenshot, and records a pending deposit
func DepositRequestHandler(svc *service.WalletService, cloud cloudinary.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		// Parse the amount explicitly: multipart fields arrive as strings and
		// must be rejected before any arithmetic or persistence
		amount, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("amount")), 64)
		if err != nil || amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrAmountNotPositive.Error()})
			return
		}
		// The screenshot is mandatory; a deposit without evidence is never recorded
		file, err := c.FormFile("paymentProof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrProofRequired.Error()})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read payment proof"})
			return
		}
		defer f.Close()
		// Upload the proof before creating the record; a failed upload means
		// no transaction row is ever written
		folder := "gamewallet/proofs/" + strconv.Itoa(int(userID))
		publicID := "proof_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		proofURL, err := cloud.UploadImage(c.Request.Context(), f, folder, publicID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Payment proof upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store payment proof"})
			return
		}
		tx, err := svc.RequestDeposit(c.Request.Context(), userID, amount, proofURL)
		if err != nil {
			serviceError(c, err, "Failed to submit deposit request")
			return
		}
		invalidateAfterRequest(c, rdb, userID) // Drop stale cached views
		c.JSON(http.StatusCreated, gin.H{"message": "Deposit request submitted", "transaction": tx})
	}
}

// WithdrawRequest represents a withdrawal request body
type WithdrawRequest struct {
	Amount float64 `json:"amount"` // Requested amount; validated by the service
}

// WithdrawRequestHandler records a pending withdrawal for admin review
func WithdrawRequestHandler(svc *service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req WithdrawRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Non-numeric or malformed body
			c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrAmountNotPositive.Error()})
			return
		}
		tx, err := svc.RequestWithdraw(c.Request.Context(), userID, req.Amount)
		if err != nil {
			serviceError(c, err, "Failed to submit withdrawal request")
			return
		}
		invalidateAfterRequest(c, rdb, userID) // Drop stale cached views
		c.JSON(http.StatusCreated, gin.H{"message": "Withdrawal request submitted", "transaction": tx})
	}
}
