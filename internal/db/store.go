package db

import (
	"context"
	"errors"

	"coinshop/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// GormStore implements wallet.Store on top of a gorm connection
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetUserByID returns the user or (nil, nil) when no row exists
func (s *GormStore) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateWallet writes the user's new balance
func (s *GormStore) UpdateWallet(ctx context.Context, userID uint, balance float64) error {
	return s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("wallet", balance).Error
}

// GetItemByID returns the item or (nil, nil) when no row exists
func (s *GormStore) GetItemByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateTransaction appends a ledger entry
func (s *GormStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	return s.db.WithContext(ctx).Create(tx).Error
}

// CreatePurchase appends a purchase record
func (s *GormStore) CreatePurchase(ctx context.Context, p *domain.Purchase) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// ListPurchases returns a user's purchases, newest first
func (s *GormStore) ListPurchases(ctx context.Context, userID uint) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&purchases).Error
	return purchases, err
}

// ListTransactions returns a user's ledger entries, newest first, capped at limit
func (s *GormStore) ListTransactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}
