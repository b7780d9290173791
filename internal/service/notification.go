package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
)

type NotificationService struct {
	notifications NotificationStore
	logger        *zap.Logger
}

func NewNotificationService(notifications NotificationStore, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// ListOwn returns the caller's notifications, newest first.
func (s *NotificationService) ListOwn(ctx context.Context, userID uint) ([]dto.NotificationResponse, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToNotificationResponses(notifications), nil
}

// MarkRead flips the read flag on the caller's own notification. A row
// belonging to someone else answers not-found rather than forbidden so
// the endpoint does not confirm foreign ids exist.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) (*dto.NotificationResponse, error) {
	notification, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != userID {
		return nil, apperrors.ErrNotificationNotFound
	}

	if !notification.IsRead {
		if err := s.notifications.MarkRead(ctx, notification); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("Notification marked read",
		zap.Uint("notification_id", notificationID), zap.Uint("user_id", userID))
	resp := dto.ToNotificationResponse(notification)
	return &resp, nil
}
