package model

import (
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	LearnerID   uint      `gorm:"column:learner_id;not null;index" json:"learner_id"`
	CourseID    uint      `gorm:"column:course_id;not null;index" json:"course_id"`
	ModuleID    *uint     `gorm:"column:module_id;index" json:"module_id,omitempty"`
	Message     string    `gorm:"column:message;type:text;not null" json:"message"`
	Rating      int       `gorm:"column:rating;not null" json:"rating"`
	SubmittedAt time.Time `gorm:"column:submitted_at;not null" json:"submitted_at"`

	Learner *User   `gorm:"foreignKey:LearnerID" json:"learner,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
