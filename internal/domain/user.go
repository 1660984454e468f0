package domain

import "time"

// User Model
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                    // Primary key
	Name          string    `gorm:"not null" json:"name"`                    // Display name
	Email         string    `gorm:"unique;not null" json:"email"`            // Unique login email
	Password      string    `gorm:"not null" json:"-"`                       // Bcrypt hash, never serialized
	PlayerID      string    `gorm:"unique;not null" json:"playerId"`         // Unique game-side handle
	Role          string    `gorm:"default:player" json:"role"`              // Role: player or admin
	WalletBalance float64   `gorm:"not null;default:0" json:"walletBalance"` // Custodial funds, mutated only by admin settlement
	CreatedAt     time.Time `json:"createdAt"`                               // Registration time
}
