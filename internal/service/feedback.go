package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type FeedbackService struct {
	feedbacks     FeedbackStore
	courses       CourseStore
	enrollments   EnrollmentStore
	notifications NotificationStore
	mailer        Mailer
	logger        *zap.Logger
	now           func() time.Time
}

func NewFeedbackService(
	feedbacks FeedbackStore,
	courses CourseStore,
	enrollments EnrollmentStore,
	notifications NotificationStore,
	mailer Mailer,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbacks:     feedbacks,
		courses:       courses,
		enrollments:   enrollments,
		notifications: notifications,
		mailer:        mailer,
		logger:        logger,
		now:           time.Now,
	}
}

// Create records feedback from an enrolled learner and notifies the
// course's trainer with a row plus a best-effort email.
func (s *FeedbackService) Create(ctx context.Context, learnerID uint, learnerEmail string, req dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.Exists(ctx, learnerID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrForbidden
	}

	feedback := &model.Feedback{
		LearnerID:   learnerID,
		CourseID:    req.CourseID,
		ModuleID:    req.ModuleID,
		Message:     req.Message,
		Rating:      req.Rating,
		SubmittedAt: s.now(),
	}
	if err := s.feedbacks.Create(ctx, feedback); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID:  course.TrainerID,
		Type:    constants.NotifyFeedbackReceived,
		Message: fmt.Sprintf("New feedback on course '%s'", course.Name),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to write trainer notification", zap.Error(err))
	}
	if course.Trainer != nil {
		_ = s.mailer.SendFeedbackReceived(course.Trainer.Email, learnerEmail, course.Name)
	}

	s.logger.Info("Feedback submitted",
		zap.Uint("feedback_id", feedback.ID), zap.Uint("course_id", course.ID))
	resp := dto.ToFeedbackResponse(feedback)
	return &resp, nil
}

func (s *FeedbackService) Get(ctx context.Context, id uint) (*dto.FeedbackResponse, error) {
	feedback, err := s.feedbacks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToFeedbackResponse(feedback)
	return &resp, nil
}

func (s *FeedbackService) ListByCourse(ctx context.Context, courseID uint) ([]dto.FeedbackResponse, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	feedbacks, err := s.feedbacks.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.ToFeedbackResponses(feedbacks), nil
}

// Update lets the owning learner revise message and rating; admins may
// edit any entry.
func (s *FeedbackService) Update(ctx context.Context, actorID uint, isAdmin bool, feedbackID uint, message string, rating int) (*dto.FeedbackResponse, error) {
	feedback, err := s.feedbacks.FindByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && feedback.LearnerID != actorID {
		return nil, apperrors.ErrForbidden
	}

	feedback.Message = message
	feedback.Rating = rating
	if err := s.feedbacks.Update(ctx, feedback); err != nil {
		return nil, err
	}

	resp := dto.ToFeedbackResponse(feedback)
	return &resp, nil
}

func (s *FeedbackService) Delete(ctx context.Context, actorID uint, isAdmin bool, feedbackID uint) error {
	feedback, err := s.feedbacks.FindByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if !isAdmin && feedback.LearnerID != actorID {
		return apperrors.ErrForbidden
	}
	return s.feedbacks.Delete(ctx, feedbackID)
}
