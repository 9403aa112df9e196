package models

import "gorm.io/gorm"

// User represents a registered account.
// Username and email are unique across all users; both are checked at
// signup and backed by unique columns.
type User struct {
	gorm.Model
	Username     string `gorm:"size:150;unique;not null"`
	Email        string `gorm:"size:150;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
}
