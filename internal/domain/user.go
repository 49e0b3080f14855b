package domain

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Name      string    `gorm:"not null" json:"name"`                 // Display name
	Username  string    `gorm:"uniqueIndex;not null" json:"username"` // Unique username
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`    // Unique email
	Password  string    `gorm:"not null" json:"-"`                    // Hashed password, never serialized
	Role      string    `gorm:"default:user" json:"role"`             // Role: user or admin
	Wallet    float64   `gorm:"not null;default:0" json:"wallet"`     // Spendable balance
	CreatedAt time.Time `json:"createdAt"`                            // Timestamp of creation
}

// PublicUser is the user view returned by the API (password hash stripped)
type PublicUser struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Wallet   float64 `json:"wallet"`
}

// Public converts a user record to its API view
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Wallet:   u.Wallet,
	}
}
