package dto

import (
	"time"

	"github.com/minilms/backend/internal/model"
)

// CreateModuleRequest arrives as multipart form data so the content
// file can ride along. The file part itself is read off the request by
// the handler.
type CreateModuleRequest struct {
	CourseID    uint   `form:"course_id" binding:"required"`
	Name        string `form:"name" binding:"required,min=3,max=100"`
	Difficulty  string `form:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	Description string `form:"description" binding:"omitempty,max=2000"`
}

type UpdateModuleRequest struct {
	Name        *string `form:"name" binding:"omitempty,min=3,max=100"`
	Difficulty  *string `form:"difficulty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Description *string `form:"description" binding:"omitempty,max=2000"`
}

type ModuleResponse struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	Name        string    `json:"name"`
	Difficulty  string    `json:"difficulty"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToModuleResponse(m *model.Module) ModuleResponse {
	return ModuleResponse{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Name:        m.Name,
		Difficulty:  m.Difficulty,
		Description: m.Description,
		FileURL:     m.FilePath,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToModuleResponses(modules []model.Module) []ModuleResponse {
	out := make([]ModuleResponse, 0, len(modules))
	for i := range modules {
		out = append(out, ToModuleResponse(&modules[i]))
	}
	return out
}
