package dto

import (
	"time"

	"github.com/minilms/backend/internal/model"
)

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=Trainer Learner"`
	IsActive *bool   `json:"is_active"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		HasPassword: u.PasswordHash != nil,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

// AdminStatsResponse backs the admin dashboard counters.
type AdminStatsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalTrainers    int64 `json:"total_trainers"`
	TotalLearners    int64 `json:"total_learners"`
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
}
