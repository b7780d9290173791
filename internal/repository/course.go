package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minilms/backend/internal/constants"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type CourseRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCourseRepository(db *gorm.DB, logger *zap.Logger) *CourseRepository {
	return &CourseRepository{db: db, logger: logger}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		r.logger.Error("Failed to create course", zap.String("name", course.Name), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create course")
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Modules").
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		r.logger.Error("Failed to find course", zap.Uint("course_id", id), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find course")
	}
	return &course, nil
}

// List returns courses, optionally restricted to one trainer or to
// publicly visible ones.
func (r *CourseRepository) List(ctx context.Context, trainerID uint, publicOnly bool) ([]model.Course, error) {
	var courses []model.Course
	q := r.db.WithContext(ctx).Preload("Trainer").Order("id")
	if trainerID != 0 {
		q = q.Where("trainer_id = ?", trainerID)
	}
	if publicOnly {
		q = q.Where("visibility = ?", constants.VisibilityPublic)
	}
	if err := q.Find(&courses).Error; err != nil {
		r.logger.Error("Failed to list courses", zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list courses")
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		r.logger.Error("Failed to update course", zap.Uint("course_id", course.ID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to update course")
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Course{}, id)
	if res.Error != nil {
		r.logger.Error("Failed to delete course", zap.Uint("course_id", id), zap.Error(res.Error))
		return apperrors.WrapError(res.Error, apperrors.ErrInternal.Code, "failed to delete course")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		r.logger.Error("Failed to count courses", zap.Error(err))
		return 0, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to count courses")
	}
	return count, nil
}
