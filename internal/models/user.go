// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt
// hashes and never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:250;not null" json:"name"`
	Email     string    `gorm:"size:250;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
