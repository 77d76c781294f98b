// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Users are created at registration and
// never mutated or deleted afterwards; Username is the natural key carried in
// the session cookie pair.
type User struct {
	ID           UserID    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Salt         string    `gorm:"not null" json:"-"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
