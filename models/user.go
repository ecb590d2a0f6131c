package models

import (
	"time"
)

// User model
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Username       string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	Expenses       []Expense `gorm:"foreignKey:UserID" json:"-"`
}
