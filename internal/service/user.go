package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
)

// UserService is the admin-facing user administration surface.
type UserService struct {
	users       UserStore
	courses     CourseStore
	enrollments EnrollmentStore
	logger      *zap.Logger
}

func NewUserService(users UserStore, courses CourseStore, enrollments EnrollmentStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		logger:      logger,
	}
}

func (s *UserService) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	if role != "" && !constants.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(users), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailExists
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		if !constants.RegistrableRole(*req.Role) {
			return nil, apperrors.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User updated", zap.Uint("user_id", user.ID))
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ToggleActive flips the active flag. Deactivated users keep their data
// but cannot log in and are skipped by notification fan-out.
func (s *UserService) ToggleActive(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User active flag toggled",
		zap.Uint("user_id", user.ID), zap.Bool("is_active", user.IsActive))
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.Uint("user_id", id))
	return nil
}

// Stats backs the admin dashboard counters.
func (s *UserService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	total, err := s.users.CountByRole(ctx, "")
	if err != nil {
		return nil, err
	}
	trainers, err := s.users.CountByRole(ctx, constants.RoleTrainer)
	if err != nil {
		return nil, err
	}
	learners, err := s.users.CountByRole(ctx, constants.RoleLearner)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.Count(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalUsers:       total,
		TotalTrainers:    trainers,
		TotalLearners:    learners,
		TotalCourses:     courses,
		TotalEnrollments: enrollments,
	}, nil
}
