package model

import (
	"gorm.io/gorm"
)

// Module is a unit of course content. FilePath points at an uploaded
// attachment relative to the upload base URL; empty means no file.
type Module struct {
	gorm.Model
	CourseID    uint   `gorm:"column:course_id;not null;index" json:"course_id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Difficulty  string `gorm:"column:difficulty" json:"difficulty"`
	Description string `gorm:"column:description;type:text" json:"description"`
	FilePath    string `gorm:"column:file_path" json:"file_path,omitempty"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
