package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"coinshop/internal/domain" // Importing domain models
	"coinshop/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// signupBonus is credited to every newly registered wallet
const signupBonus = 1000

// RegisterRequest carries the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name must be provided
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Valid email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// LoginRequest carries the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse is returned on successful register or login
type AuthResponse struct {
	Token string            `json:"token"` // JWT token
	User  domain.PublicUser `json:"user"`  // Public user view
}

// RegisterHandler creates a new user account with the signup bonus
func RegisterHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := strings.ToLower(req.Username) // Lowercase username to ensure uniqueness
		email := strings.ToLower(req.Email)       // Lowercase email to ensure uniqueness
		// Reject duplicate username or email. One message for both fields,
		// same stance as login: don't reveal which one collided.
		var existing domain.User
		err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// A store failure is not a conflict; log it and return a generic error
			logrus.WithField("error", err.Error()).Error("Failed to check for existing user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// New accounts start as plain users with the signup bonus
		user := domain.User{
			Name:     req.Name,
			Username: username,
			Email:    email,
			Password: string(hash),
			Role:     domain.RoleUser,
			Wallet:   signupBonus,
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		// Issue a token for the fresh account
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User registered")
		// Return the token and public user view
		c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user.Public()})
	}
}

// LoginHandler authenticates a user and returns a fresh JWT token.
// Unknown username and wrong password produce the same message so the
// response cannot be used to enumerate accounts.
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token and public user view
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user.Public()})
	}
}
