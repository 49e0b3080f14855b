package domain

// Transaction types
const (
	TxDeposit  = "deposit"
	TxWithdraw = "withdraw"
	TxPurchase = "purchase"
)

// Transaction statuses
const (
	TxCompleted = "completed"
	TxPending   = "pending"
	TxFailed    = "failed"
)

// Transaction Model: append-only ledger entry for a balance-affecting event
type Transaction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`                  // Primary key
	UserID      uint    `gorm:"index;not null" json:"userId"`          // Foreign key to User
	Type        string  `gorm:"not null" json:"type"`                  // deposit, withdraw or purchase
	Amount      float64 `gorm:"not null" json:"amount"`                // Amount of the wallet delta
	ItemID      *uint   `json:"itemId,omitempty"`                      // Foreign key to Item (purchases only)
	Status      string  `gorm:"default:completed" json:"status"`       // completed, pending or failed
	Description string  `json:"description"`                           // Human-readable description
	CreatedAt   int64   `gorm:"autoCreateTime:milli" json:"createdAt"` // Timestamp of creation in milliseconds
}
