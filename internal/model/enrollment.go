package model

import (
	"time"

	"gorm.io/gorm"
)

type Enrollment struct {
	gorm.Model
	LearnerID  uint      `gorm:"column:learner_id;not null;uniqueIndex:uq_learner_course" json:"learner_id"`
	CourseID   uint      `gorm:"column:course_id;not null;uniqueIndex:uq_learner_course" json:"course_id"`
	EnrolledAt time.Time `gorm:"column:enrolled_at;not null" json:"enrolled_at"`
	Status     string    `gorm:"column:status;not null;default:Active" json:"status"`

	Learner *User   `gorm:"foreignKey:LearnerID" json:"learner,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
