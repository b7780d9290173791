package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type EnrollmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewEnrollmentRepository(db *gorm.DB, logger *zap.Logger) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, logger: logger}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyEnrolled
		}
		r.logger.Error("Failed to create enrollment",
			zap.Uint("learner_id", enrollment.LearnerID),
			zap.Uint("course_id", enrollment.CourseID),
			zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create enrollment")
	}
	return nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Learner").
		Preload("Course").
		First(&enrollment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		r.logger.Error("Failed to find enrollment", zap.Uint("enrollment_id", id), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find enrollment")
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, learnerID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("learner_id = ? AND course_id = ?", learnerID, courseID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to check enrollment",
			zap.Uint("learner_id", learnerID), zap.Uint("course_id", courseID), zap.Error(err))
		return false, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to check enrollment")
	}
	return count > 0, nil
}

func (r *EnrollmentRepository) ListByLearner(ctx context.Context, learnerID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("learner_id = ?", learnerID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		r.logger.Error("Failed to list enrollments", zap.Uint("learner_id", learnerID), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list enrollments")
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Learner").
		Where("course_id = ?", courseID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		r.logger.Error("Failed to list enrollments", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list enrollments")
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Save(enrollment).Error; err != nil {
		r.logger.Error("Failed to update enrollment", zap.Uint("enrollment_id", enrollment.ID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to update enrollment")
	}
	return nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Enrollment{}, id)
	if res.Error != nil {
		r.logger.Error("Failed to delete enrollment", zap.Uint("enrollment_id", id), zap.Error(res.Error))
		return apperrors.WrapError(res.Error, apperrors.ErrInternal.Code, "failed to delete enrollment")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Enrollment{}).Count(&count).Error; err != nil {
		r.logger.Error("Failed to count enrollments", zap.Error(err))
		return 0, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to count enrollments")
	}
	return count, nil
}
