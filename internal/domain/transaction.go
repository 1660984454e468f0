package domain

import "time"

// Transaction Model
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`             // Primary key
	UserID        uint      `gorm:"index;not null" json:"userId"`     // Owning user, immutable after creation
	Type          string    `gorm:"not null" json:"type"`             // Transaction type: deposit or withdraw
	Amount        float64   `gorm:"not null" json:"amount"`           // Requested amount, always > 0
	PaymentProof  *string   `json:"paymentProof"`                     // Uploaded proof URL, set only for deposits
	Status        string    `gorm:"default:pending" json:"status"`    // Free-form status, starts as pending
	EditedByAdmin bool      `gorm:"default:false" json:"editedByAdmin"` // Flipped true when the owner's wallet is settled
	CreatedAt     time.Time `json:"createdAt"`                        // Creation time, listing order key
}
