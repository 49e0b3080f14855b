package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"coinshop/internal/utils"  // Utility functions
	"coinshop/internal/wallet" // Wallet and ledger service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// AmountRequest carries a deposit or withdraw amount
type AmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Amount must be positive
}

// respondWalletError maps wallet service failures to one response
func respondWalletError(c *gin.Context, userID uint, op string, err error) {
	var insufficient *wallet.InsufficientBalanceError
	switch {
	case errors.Is(err, wallet.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
	case errors.As(err, &insufficient):
		// Include the figures the client needs to display the refusal
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Insufficient balance",
			"required": insufficient.Required,
			"balance":  insufficient.Balance,
		})
	case errors.Is(err, wallet.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, wallet.ErrUserNotFound):
		// The token's user vanished after the middleware re-fetch
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		// Log the error with context, return a generic message
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // User ID
			"op":      op,          // Failing operation
			"error":   err.Error(), // Error message
		}).Error("Wallet operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// GetBalanceHandler returns the wallet balance for the authenticated user
func GetBalanceHandler(svc *wallet.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		ctx := context.Background()          // Context for Redis operations
		cacheKey := utils.BalanceKey(userID) // Cache key for the balance
		var balance float64
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &balance); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"balance": balance})
			return
		}
		// If not in cache, read through the wallet service
		balance, err := svc.Balance(c.Request.Context(), userID)
		if err != nil {
			respondWalletError(c, userID, "balance", err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, balance, utils.CacheTTL) // Cache the balance
		c.JSON(http.StatusOK, gin.H{"balance": balance})                // Return the balance
	}
}

// DepositHandler credits the authenticated user's wallet
func DepositHandler(svc *wallet.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		var req AmountRequest                // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		balance, err := svc.Deposit(c.Request.Context(), userID, req.Amount)
		if err != nil {
			respondWalletError(c, userID, "deposit", err)
			return
		}
		// Log successful deposit
		logrus.WithFields(logrus.Fields{
			"user_id": userID,     // User ID
			"amount":  req.Amount, // Deposit amount
			"type":    "deposit",  // Transaction type
		}).Info("Deposit transaction")
		// Invalidate the cached balance
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(userID))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Deposit successful", "balance": balance})
	}
}

// WithdrawHandler debits the authenticated user's wallet
func WithdrawHandler(svc *wallet.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		var req AmountRequest                // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		balance, err := svc.Withdraw(c.Request.Context(), userID, req.Amount)
		if err != nil {
			respondWalletError(c, userID, "withdraw", err)
			return
		}
		// Log successful withdrawal
		logrus.WithFields(logrus.Fields{
			"user_id": userID,     // User ID
			"amount":  req.Amount, // Withdrawal amount
			"type":    "withdraw", // Transaction type
		}).Info("Withdraw transaction")
		// Invalidate the cached balance
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(userID))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Withdrawal successful", "balance": balance})
	}
}
