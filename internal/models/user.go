package models

import "time"

type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"not null" json:"name"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string     `gorm:"not null" json:"-"`
	ProfilePic          string     `gorm:"not null;default:''" json:"profilePic"`
	ResetTokenHash      string     `gorm:"index;not null;default:''" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// HasPendingReset reports whether a reset token was issued and not yet consumed or cleared.
func (user *User) HasPendingReset() bool {
	return user != nil && user.ResetTokenHash != "" && user.ResetTokenExpiresAt != nil
}
