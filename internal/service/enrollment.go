package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewEnrollmentService(enrollments EnrollmentStore, courses CourseStore, logger *zap.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		logger:      logger,
		now:         time.Now,
	}
}

// Enroll records the learner on the course. The (learner, course) pair
// is unique; a second attempt answers with a conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, learnerID, courseID uint) (*dto.EnrollmentResponse, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.enrollments.Exists(ctx, learnerID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		LearnerID:  learnerID,
		CourseID:   courseID,
		EnrolledAt: s.now(),
		Status:     constants.EnrollmentActive,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Course = course

	s.logger.Info("Learner enrolled",
		zap.Uint("learner_id", learnerID), zap.Uint("course_id", courseID))
	resp := dto.ToEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *EnrollmentService) ListOwn(ctx context.Context, learnerID uint) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return dto.ToEnrollmentResponses(enrollments), nil
}

// Roster lists the enrollments of a course. Trainers may only read
// their own course's roster; admins may read any.
func (s *EnrollmentService) Roster(ctx context.Context, actorID uint, isAdmin bool, courseID uint) ([]dto.EnrollmentResponse, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && course.TrainerID != actorID {
		return nil, apperrors.ErrForbidden
	}

	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.ToEnrollmentResponses(enrollments), nil
}

// Drop removes an enrollment. A learner may only drop their own row;
// an admin may drop any.
func (s *EnrollmentService) Drop(ctx context.Context, actorID uint, isAdmin bool, enrollmentID uint) error {
	enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if !isAdmin && enrollment.LearnerID != actorID {
		return apperrors.ErrForbidden
	}

	if err := s.enrollments.Delete(ctx, enrollmentID); err != nil {
		return err
	}
	s.logger.Info("Enrollment dropped", zap.Uint("enrollment_id", enrollmentID))
	return nil
}
