package models

import "time"

// Expense represents a dated monetary record belonging to a user.
// Amount carries no currency and no sign constraint; negative and zero
// amounts are stored as given.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:50;not null;index" json:"category"`
	Description string    `gorm:"size:255" json:"description"`
	Date        Date      `gorm:"type:date;not null;index" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
