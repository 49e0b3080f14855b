package api

import (
	"net/http" // HTTP status codes

	"coinshop/internal/wallet" // Wallet and ledger service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListPurchasesHandler returns the authenticated user's purchase
// history, newest first.
func ListPurchasesHandler(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		purchases, err := svc.Purchases(c.Request.Context(), userID)
		if err != nil {
			respondWalletError(c, userID, "purchases", err)
			return
		}
		c.JSON(http.StatusOK, purchases) // Return the purchase history
	}
}

// ListTransactionsHandler returns the authenticated user's ledger
// history, newest first, capped at the 50 most recent entries.
func ListTransactionsHandler(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		transactions, err := svc.Transactions(c.Request.Context(), userID)
		if err != nil {
			respondWalletError(c, userID, "transactions", err)
			return
		}
		c.JSON(http.StatusOK, transactions) // Return the ledger history
	}
}
