package model

import (
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	TrainerID  uint   `gorm:"column:trainer_id;not null;index" json:"trainer_id"`
	Name       string `gorm:"column:name;not null" json:"name"`
	Type       string `gorm:"column:type" json:"type"`
	Duration   int    `gorm:"column:duration" json:"duration"`
	Visibility string `gorm:"column:visibility;not null;default:Hidden" json:"visibility"`

	Trainer *User    `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Modules []Module `gorm:"foreignKey:CourseID" json:"-"`
}
