package model

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is one outstanding reset/setup token. Email is a
// denormalized copy of the owner's address used for redemption lookup.
// Redemption always picks the most recently sent row for (email, token).
type PasswordReset struct {
	gorm.Model
	UserID     uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Email      string    `gorm:"column:email;not null;index" json:"email"`
	Token      string    `gorm:"column:token;not null;uniqueIndex" json:"-"`
	SentAt     time.Time `gorm:"column:sent_at;not null" json:"sent_at"`
	ExpiryTime time.Time `gorm:"column:expiry_time;not null" json:"expiry_time"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// Expired reports whether the token is past its expiry at now.
func (r *PasswordReset) Expired(now time.Time) bool {
	return now.After(r.ExpiryTime)
}
