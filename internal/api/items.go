package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"coinshop/internal/domain" // Importing domain models
	"coinshop/internal/utils"  // Utility functions
	"coinshop/internal/wallet" // Wallet and ledger service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ItemRequest carries the item payload for create and update
type ItemRequest struct {
	Name        string  `json:"name" binding:"required"`        // Item name must be provided
	Icon        string  `json:"icon" binding:"required"`        // Icon must be provided
	Description string  `json:"description" binding:"required"` // Description must be provided
	Price       float64 `json:"price" binding:"required,gt=0"`  // Price must be positive
}

// itemID parses the :id path parameter
func itemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return 0, false
	}
	return uint(id), true
}

// ListItemsHandler returns the full catalog, newest first. Public, no auth.
func ListItemsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var items []domain.Item
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, utils.ItemsKey, &items); err == nil && found {
			c.JSON(http.StatusOK, items)
			return
		}
		// If not in cache, fetch from DB
		if err := db.Order("created_at desc").Find(&items).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch items")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.ItemsKey, items, utils.CacheTTL) // Cache the catalog
		c.JSON(http.StatusOK, items)                                        // Return the catalog
	}
}

// CreateItemHandler adds a catalog item. Admin only.
func CreateItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, icon, description and price are required"})
			return
		}
		// The creating admin's username is stamped on the item
		item := domain.Item{
			Name:        req.Name,
			Icon:        req.Icon,
			Description: req.Description,
			Price:       req.Price,
			CreatedBy:   c.MustGet("username").(string),
		}
		// Attempt to create the item in the database
		if err := db.Create(&item).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}
		// Invalidate the cached catalog
		_ = utils.DeleteCache(context.Background(), rdb, utils.ItemsKey)
		c.JSON(http.StatusCreated, item) // Return the created item
	}
}

// UpdateItemHandler overwrites an item's fields. Admin only.
func UpdateItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := itemID(c) // Parse the :id path parameter
		if !ok {
			return
		}
		var req ItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, icon, description and price are required"})
			return
		}
		var item domain.Item // Resolve the existing item
		if err := db.First(&item, id).Error; err != nil {
			// If item not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		// Overwrite the mutable fields
		item.Name = req.Name
		item.Icon = req.Icon
		item.Description = req.Description
		item.Price = req.Price
		if err := db.Save(&item).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to update item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
			return
		}
		// Invalidate the cached catalog
		_ = utils.DeleteCache(context.Background(), rdb, utils.ItemsKey)
		c.JSON(http.StatusOK, item) // Return the updated item
	}
}

// DeleteItemHandler removes an item permanently. Admin only. Past
// purchases keep their snapshots, so history is unaffected.
func DeleteItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := itemID(c) // Parse the :id path parameter
		if !ok {
			return
		}
		var item domain.Item // Resolve the existing item
		if err := db.First(&item, id).Error; err != nil {
			// If item not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to delete item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		// Invalidate the cached catalog
		_ = utils.DeleteCache(context.Background(), rdb, utils.ItemsKey)
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted"}) // Return success response
	}
}

// BuyItemHandler purchases an item for the authenticated user
func BuyItemHandler(svc *wallet.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		id, ok := itemID(c)                  // Parse the :id path parameter
		if !ok {
			return
		}
		balance, purchase, err := svc.Purchase(c.Request.Context(), userID, id)
		if err != nil {
			respondWalletError(c, userID, "purchase", err)
			return
		}
		// Log successful purchase
		logrus.WithFields(logrus.Fields{
			"user_id": userID,            // User ID
			"item_id": id,                // Item ID
			"amount":  purchase.Price,    // Purchase amount
			"type":    "purchase",        // Transaction type
			"item":    purchase.ItemName, // Item name at purchase time
		}).Info("Purchase transaction")
		// Invalidate the cached balance
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(userID))
		// Return success response
		c.JSON(http.StatusOK, gin.H{
			"message":  "Purchase successful",
			"balance":  balance,
			"purchase": purchase,
		})
	}
}
