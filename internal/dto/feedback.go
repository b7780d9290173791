package dto

import (
	"time"

	"github.com/minilms/backend/internal/model"
)

type CreateFeedbackRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	ModuleID *uint  `json:"module_id"`
	Message  string `json:"message" binding:"required,max=1000"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
}

type FeedbackResponse struct {
	ID          uint      `json:"id"`
	LearnerID   uint      `json:"learner_id"`
	LearnerName string    `json:"learner_name,omitempty"`
	CourseID    uint      `json:"course_id"`
	ModuleID    *uint     `json:"module_id,omitempty"`
	Message     string    `json:"message"`
	Rating      int       `json:"rating"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func ToFeedbackResponse(f *model.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:          f.ID,
		LearnerID:   f.LearnerID,
		CourseID:    f.CourseID,
		ModuleID:    f.ModuleID,
		Message:     f.Message,
		Rating:      f.Rating,
		SubmittedAt: f.SubmittedAt,
	}
	if f.Learner != nil {
		resp.LearnerName = f.Learner.Username
	}
	return resp
}

func ToFeedbackResponses(feedbacks []model.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		out = append(out, ToFeedbackResponse(&feedbacks[i]))
	}
	return out
}
