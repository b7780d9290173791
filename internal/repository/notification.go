package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type NotificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *gorm.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		r.logger.Error("Failed to create notification",
			zap.Uint("user_id", notification.UserID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create notification")
	}
	return nil
}

// CreateBatch inserts fan-out rows in one statement.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		r.logger.Error("Failed to create notifications",
			zap.Int("count", len(notifications)), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create notifications")
	}
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		r.logger.Error("Failed to find notification", zap.Uint("notification_id", id), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find notification")
	}
	return &notification, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Uint("user_id", userID), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list notifications")
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notification *model.Notification) error {
	notification.IsRead = true
	if err := r.db.WithContext(ctx).Save(notification).Error; err != nil {
		r.logger.Error("Failed to mark notification read",
			zap.Uint("notification_id", notification.ID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to update notification")
	}
	return nil
}
