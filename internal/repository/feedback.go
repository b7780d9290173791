package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type FeedbackRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFeedbackRepository(db *gorm.DB, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{db: db, logger: logger}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		r.logger.Error("Failed to create feedback",
			zap.Uint("learner_id", feedback.LearnerID),
			zap.Uint("course_id", feedback.CourseID),
			zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create feedback")
	}
	return nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).Preload("Learner").First(&feedback, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		r.logger.Error("Failed to find feedback", zap.Uint("feedback_id", id), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find feedback")
	}
	return &feedback, nil
}

func (r *FeedbackRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).
		Preload("Learner").
		Where("course_id = ?", courseID).
		Order("submitted_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		r.logger.Error("Failed to list feedback", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list feedback")
	}
	return feedbacks, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, feedback *model.Feedback) error {
	if err := r.db.WithContext(ctx).Save(feedback).Error; err != nil {
		r.logger.Error("Failed to update feedback", zap.Uint("feedback_id", feedback.ID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to update feedback")
	}
	return nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Feedback{}, id)
	if res.Error != nil {
		r.logger.Error("Failed to delete feedback", zap.Uint("feedback_id", id), zap.Error(res.Error))
		return apperrors.WrapError(res.Error, apperrors.ErrInternal.Code, "failed to delete feedback")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}

func (r *FeedbackRepository) ListByLearner(ctx context.Context, learnerID uint) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("submitted_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		r.logger.Error("Failed to list feedback", zap.Uint("learner_id", learnerID), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list feedback")
	}
	return feedbacks, nil
}
