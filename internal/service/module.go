package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type ModuleService struct {
	modules       ModuleStore
	courses       CourseStore
	enrollments   EnrollmentStore
	notifications NotificationStore
	mailer        Mailer
	uploadDir     string
	logger        *zap.Logger
}

func NewModuleService(
	modules ModuleStore,
	courses CourseStore,
	enrollments EnrollmentStore,
	notifications NotificationStore,
	mailer Mailer,
	uploadDir string,
	logger *zap.Logger,
) *ModuleService {
	return &ModuleService{
		modules:       modules,
		courses:       courses,
		enrollments:   enrollments,
		notifications: notifications,
		mailer:        mailer,
		uploadDir:     uploadDir,
		logger:        logger,
	}
}

// Create adds a module to one of the trainer's courses, storing the
// optional content file under the uploads dir.
func (s *ModuleService) Create(ctx context.Context, trainerID uint, req dto.CreateModuleRequest, file *multipart.FileHeader) (*dto.ModuleResponse, error) {
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.TrainerID != trainerID {
		return nil, apperrors.ErrForbidden
	}

	module := &model.Module{
		CourseID:    req.CourseID,
		Name:        req.Name,
		Difficulty:  req.Difficulty,
		Description: req.Description,
	}
	if file != nil {
		path, err := s.saveFile(file)
		if err != nil {
			return nil, err
		}
		module.FilePath = path
	}

	if err := s.modules.Create(ctx, module); err != nil {
		return nil, err
	}

	s.notifyEnrolled(ctx, course, constants.NotifyModuleCreated,
		fmt.Sprintf("New module '%s' added to course '%s'", module.Name, course.Name))

	s.logger.Info("Module created",
		zap.Uint("module_id", module.ID), zap.Uint("course_id", course.ID))
	resp := dto.ToModuleResponse(module)
	return &resp, nil
}

func (s *ModuleService) Get(ctx context.Context, id uint) (*dto.ModuleResponse, error) {
	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToModuleResponse(module)
	return &resp, nil
}

func (s *ModuleService) List(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToModuleResponses(modules), nil
}

func (s *ModuleService) ListByCourse(ctx context.Context, courseID uint) ([]dto.ModuleResponse, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	modules, err := s.modules.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.ToModuleResponses(modules), nil
}

func (s *ModuleService) Update(ctx context.Context, trainerID, moduleID uint, req dto.UpdateModuleRequest, file *multipart.FileHeader) (*dto.ModuleResponse, error) {
	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.FindByID(ctx, module.CourseID)
	if err != nil {
		return nil, err
	}
	if course.TrainerID != trainerID {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		module.Name = *req.Name
	}
	if req.Difficulty != nil {
		module.Difficulty = *req.Difficulty
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if file != nil {
		path, err := s.saveFile(file)
		if err != nil {
			return nil, err
		}
		module.FilePath = path
	}

	if err := s.modules.Update(ctx, module); err != nil {
		return nil, err
	}

	s.notifyEnrolled(ctx, course, constants.NotifyModuleUpdated,
		fmt.Sprintf("Module '%s' updated in course '%s'", module.Name, course.Name))

	s.logger.Info("Module updated", zap.Uint("module_id", module.ID))
	resp := dto.ToModuleResponse(module)
	return &resp, nil
}

func (s *ModuleService) Delete(ctx context.Context, trainerID, moduleID uint, isAdmin bool) error {
	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		return err
	}
	course, err := s.courses.FindByID(ctx, module.CourseID)
	if err != nil {
		return err
	}
	if !isAdmin && course.TrainerID != trainerID {
		return apperrors.ErrForbidden
	}

	if err := s.modules.Delete(ctx, moduleID); err != nil {
		return err
	}

	s.notifyEnrolled(ctx, course, constants.NotifyModuleDeleted,
		fmt.Sprintf("Module '%s' removed from course '%s'", module.Name, course.Name))

	s.logger.Info("Module deleted", zap.Uint("module_id", moduleID))
	return nil
}

// saveFile stores the upload under a uuid-prefixed name so repeated
// uploads of the same filename never collide.
func (s *ModuleService) saveFile(header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.logger.Error("Failed to create upload dir", zap.Error(err))
		return "", apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to store file")
	}

	name := uuid.NewString() + "_" + filepath.Base(header.Filename)
	dst := filepath.Join(s.uploadDir, name)

	src, err := header.Open()
	if err != nil {
		return "", apperrors.WrapError(err, apperrors.ErrInvalidInput.Code, "failed to read upload")
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		s.logger.Error("Failed to create upload file", zap.String("path", dst), zap.Error(err))
		return "", apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to store file")
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		s.logger.Error("Failed to write upload file", zap.String("path", dst), zap.Error(err))
		return "", apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to store file")
	}
	return dst, nil
}

// notifyEnrolled writes rows and best-effort emails to the learners
// enrolled in the module's course.
func (s *ModuleService) notifyEnrolled(ctx context.Context, course *model.Course, ntype, message string) {
	enrollments, err := s.enrollments.ListByCourse(ctx, course.ID)
	if err != nil {
		s.logger.Error("Failed to load roster for notification",
			zap.Uint("course_id", course.ID), zap.Error(err))
		return
	}

	rows := make([]model.Notification, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, model.Notification{
			UserID:  e.LearnerID,
			Type:    ntype,
			Message: message,
		})
	}
	if err := s.notifications.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("Failed to write notifications", zap.Error(err))
	}

	for _, e := range enrollments {
		if e.Learner != nil {
			_ = s.mailer.SendCourseUpdated(e.Learner.Email, course.Name)
		}
	}
}
