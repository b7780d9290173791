package dto

import (
	"time"

	"github.com/minilms/backend/internal/model"
)

type CreateCourseRequest struct {
	Name       string `json:"name" binding:"required,min=3,max=100"`
	Type       string `json:"type" binding:"required,max=50"`
	Duration   int    `json:"duration" binding:"required,gt=0"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=Public Hidden"`
}

type UpdateCourseRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=3,max=100"`
	Type       *string `json:"type" binding:"omitempty,max=50"`
	Duration   *int    `json:"duration" binding:"omitempty,gt=0"`
	Visibility *string `json:"visibility" binding:"omitempty,oneof=Public Hidden"`
}

type CourseResponse struct {
	ID          uint             `json:"id"`
	TrainerID   uint             `json:"trainer_id"`
	TrainerName string           `json:"trainer_name,omitempty"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Duration    int              `json:"duration"`
	Visibility  string           `json:"visibility"`
	Modules     []ModuleResponse `json:"modules,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func ToCourseResponse(c *model.Course) CourseResponse {
	resp := CourseResponse{
		ID:         c.ID,
		TrainerID:  c.TrainerID,
		Name:       c.Name,
		Type:       c.Type,
		Duration:   c.Duration,
		Visibility: c.Visibility,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Trainer != nil {
		resp.TrainerName = c.Trainer.Username
	}
	if len(c.Modules) > 0 {
		resp.Modules = ToModuleResponses(c.Modules)
	}
	return resp
}

func ToCourseResponses(courses []model.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, ToCourseResponse(&courses[i]))
	}
	return out
}
