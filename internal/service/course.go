package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type CourseService struct {
	courses       CourseStore
	users         UserStore
	notifications NotificationStore
	mailer        Mailer
	logger        *zap.Logger
}

func NewCourseService(
	courses CourseStore,
	users UserStore,
	notifications NotificationStore,
	mailer Mailer,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		courses:       courses,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		logger:        logger,
	}
}

// Create stores the course for the calling trainer and fans out to all
// active learners. The fan-out is best-effort: the course exists even
// if rows or emails fail.
func (s *CourseService) Create(ctx context.Context, trainerID uint, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = constants.VisibilityHidden
	}

	course := &model.Course{
		TrainerID:  trainerID,
		Name:       req.Name,
		Type:       req.Type,
		Duration:   req.Duration,
		Visibility: visibility,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.notifyLearners(ctx, constants.NotifyCourseCreated,
		fmt.Sprintf("New course available: %s", course.Name),
		func(to string) { _ = s.mailer.SendCourseAvailable(to, course.Name) })

	s.logger.Info("Course created",
		zap.Uint("course_id", course.ID), zap.Uint("trainer_id", trainerID))
	resp := dto.ToCourseResponse(course)
	return &resp, nil
}

func (s *CourseService) Get(ctx context.Context, id uint) (*dto.CourseResponse, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCourseResponse(course)
	return &resp, nil
}

func (s *CourseService) List(ctx context.Context, trainerID uint, publicOnly bool) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx, trainerID, publicOnly)
	if err != nil {
		return nil, err
	}
	return dto.ToCourseResponses(courses), nil
}

// Update applies partial changes. Only the owning trainer may update;
// the ownership failure reads as forbidden, not as not-found, because
// course existence is public.
func (s *CourseService) Update(ctx context.Context, trainerID, courseID uint, req dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TrainerID != trainerID {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Type != nil {
		course.Type = *req.Type
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Visibility != nil {
		course.Visibility = *req.Visibility
	}
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	s.notifyLearners(ctx, constants.NotifyCourseUpdated,
		fmt.Sprintf("Course updated: %s", course.Name),
		func(to string) { _ = s.mailer.SendCourseUpdated(to, course.Name) })

	s.logger.Info("Course updated", zap.Uint("course_id", course.ID))
	resp := dto.ToCourseResponse(course)
	return &resp, nil
}

func (s *CourseService) Delete(ctx context.Context, trainerID, courseID uint, isAdmin bool) error {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !isAdmin && course.TrainerID != trainerID {
		return apperrors.ErrForbidden
	}
	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}
	s.logger.Info("Course deleted", zap.Uint("course_id", courseID))
	return nil
}

// notifyLearners writes a notification row per active learner and
// invokes the email callback per address. Errors are logged and
// swallowed.
func (s *CourseService) notifyLearners(ctx context.Context, ntype, message string, send func(to string)) {
	learners, err := s.users.ListActiveByRole(ctx, constants.RoleLearner)
	if err != nil {
		s.logger.Error("Failed to load learners for notification", zap.Error(err))
		return
	}

	rows := make([]model.Notification, 0, len(learners))
	for _, learner := range learners {
		rows = append(rows, model.Notification{
			UserID:  learner.ID,
			Type:    ntype,
			Message: message,
		})
	}
	if err := s.notifications.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("Failed to write notifications", zap.Error(err))
	}

	for _, learner := range learners {
		send(learner.Email)
	}
}
