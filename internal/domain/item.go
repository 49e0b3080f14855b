package domain

import "time"

// Item Model
type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`  // Primary key
	Name        string    `gorm:"not null" json:"name"`  // Item name
	Icon        string    `json:"icon"`                  // Icon identifier or URL
	Description string    `json:"description"`           // Item description
	Price       float64   `gorm:"not null" json:"price"` // Price, must be positive
	CreatedBy   string    `json:"createdBy"`             // Username of the creating admin
	CreatedAt   time.Time `json:"createdAt"`             // Timestamp of creation
}
