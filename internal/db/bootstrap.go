package db

import (
	"errors"

	"coinshop/internal/domain"

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// adminWallet is the effectively-unlimited balance given to the bootstrap admin
const adminWallet = 1_000_000_000

// adminEmail is fixed; the bootstrap admin is not a real mailbox owner
const adminEmail = "admin@coinshop.local"

// EnsureAdmin creates the bootstrap admin account if no admin exists yet.
// Runs once at startup, before serving; re-running against an existing
// admin is a no-op.
func EnsureAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already present
	}
	if username == "" || password == "" {
		return errors.New("no admin exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		Name:     "Administrator",
		Username: username,
		Email:    adminEmail,
		Password: string(hash),
		Role:     domain.RoleAdmin,
		Wallet:   adminWallet,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("Bootstrap admin created")
	return nil
}
