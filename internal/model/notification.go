package model

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	Type    string `gorm:"column:type;not null" json:"type"`
	Message string `gorm:"column:message;type:text;not null" json:"message"`
	IsRead  bool   `gorm:"column:is_read;not null;default:false" json:"is_read"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
