package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"coinshop/internal/domain" // Importing domain models
	"coinshop/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// JWTAuthMiddleware validates JWT tokens and resolves the current user.
// The user record is re-fetched from the database so a token for a
// deleted account stops working immediately.
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		var user domain.User // Resolve the current user record
		if err := db.First(&user, claims.UserID).Error; err != nil {
			// Token user no longer exists, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", user.ID)         // Store userID in context
		c.Set("username", user.Username) // Store username in context
		c.Next()                         // Proceed to the next handler
	}
}
