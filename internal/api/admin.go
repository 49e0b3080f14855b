package api

import (
	"net/http" // HTTP status codes

	"coinshop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// StatsResponse carries the aggregate store-wide figures
type StatsResponse struct {
	TotalUsers     int64   `json:"totalUsers"`     // Users with role=user, admin excluded
	TotalItems     int64   `json:"totalItems"`     // Catalog size
	TotalPurchases int64   `json:"totalPurchases"` // All-time purchase count
	TotalRevenue   float64 `json:"totalRevenue"`   // Sum of purchase price snapshots
}

// ListUsersHandler returns all users without their password hash. Admin only.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold users
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		// Map users to the public view
		resp := make([]domain.PublicUser, len(users))
		for i := range users {
			resp[i] = users[i].Public()
		}
		c.JSON(http.StatusOK, resp) // Return the user list
	}
}

// GetStatsHandler returns aggregate counts and the revenue sum,
// computed fresh on every call. Admin only.
func GetStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats StatsResponse
		// Count regular users, the admin itself is excluded
		if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleUser).Count(&stats.TotalUsers).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to count users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Count catalog items
		if err := db.Model(&domain.Item{}).Count(&stats.TotalItems).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to count items")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Count purchases
		if err := db.Model(&domain.Purchase{}).Count(&stats.TotalPurchases).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to count purchases")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Sum revenue from the purchase snapshots, 0 when none exist
		if err := db.Model(&domain.Purchase{}).
			Select("COALESCE(SUM(price), 0)").
			Scan(&stats.TotalRevenue).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to sum revenue")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		c.JSON(http.StatusOK, stats) // Return the stats
	}
}
