package domain

import "time"

// Purchase Model: append-only record of an item acquisition.
// Name and price are snapshotted at purchase time, so later item
// edits or deletions do not rewrite history.
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`         // Primary key
	UserID    uint      `gorm:"index;not null" json:"userId"` // Foreign key to User
	ItemID    uint      `gorm:"not null" json:"itemId"`       // Foreign key to Item
	ItemName  string    `gorm:"not null" json:"itemName"`     // Item name at purchase time
	Price     float64   `gorm:"not null" json:"price"`        // Item price at purchase time
	CreatedAt time.Time `json:"createdAt"`                    // Timestamp of purchase
}
