package models

import "time"

// PasswordReset is a single-use, expiring token issued by the forgot-password
// flow. Same token mechanics as Invitation.
type PasswordReset struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	UserID    uint64     `gorm:"index;not null" json:"user_id"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Usable reports whether the token can still be consumed.
func (p *PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && p.ExpiresAt.After(now)
}
