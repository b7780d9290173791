package model

import (
	"gorm.io/gorm"
)

// User is an identity plus auth record. PasswordHash is nullable: a nil
// hash marks an account created by an admin that is still pending its
// first-time password setup and cannot authenticate via password login.
type User struct {
	gorm.Model
	Username     string  `gorm:"column:username;not null" json:"username"`
	Email        string  `gorm:"column:email;unique;not null" json:"email"`
	PasswordHash *string `gorm:"column:password_hash" json:"-"`
	Role         string  `gorm:"column:role;not null;index" json:"role"`
	IsActive     bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Courses       []Course        `gorm:"foreignKey:TrainerID" json:"-"`
	Enrollments   []Enrollment    `gorm:"foreignKey:LearnerID" json:"-"`
	Notifications []Notification  `gorm:"foreignKey:UserID" json:"-"`
	Resets        []PasswordReset `gorm:"foreignKey:UserID" json:"-"`
}
