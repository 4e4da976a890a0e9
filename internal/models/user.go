// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered editor account.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email          string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	HashedPassword string     `gorm:"not null" json:"-"`
	FullName       string     `gorm:"size:100" json:"full_name,omitempty"`
	Bio            string     `gorm:"size:500" json:"bio,omitempty"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Projects       []Project  `gorm:"foreignKey:UserID" json:"-"`
}
