package dto

import (
	"time"

	"github.com/minilms/backend/internal/model"
)

type EnrollmentResponse struct {
	ID          uint      `json:"id"`
	LearnerID   uint      `json:"learner_id"`
	LearnerName string    `json:"learner_name,omitempty"`
	CourseID    uint      `json:"course_id"`
	CourseName  string    `json:"course_name,omitempty"`
	Status      string    `json:"status"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

func ToEnrollmentResponse(e *model.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:         e.ID,
		LearnerID:  e.LearnerID,
		CourseID:   e.CourseID,
		Status:     e.Status,
		EnrolledAt: e.EnrolledAt,
	}
	if e.Learner != nil {
		resp.LearnerName = e.Learner.Username
	}
	if e.Course != nil {
		resp.CourseName = e.Course.Name
	}
	return resp
}

func ToEnrollmentResponses(enrollments []model.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, ToEnrollmentResponse(&enrollments[i]))
	}
	return out
}
