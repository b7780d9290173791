package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type PasswordResetRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPasswordResetRepository(db *gorm.DB, logger *zap.Logger) *PasswordResetRepository {
	return &PasswordResetRepository{db: db, logger: logger}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset *model.PasswordReset) error {
	if err := r.db.WithContext(ctx).Create(reset).Error; err != nil {
		r.logger.Error("Failed to create password reset",
			zap.Uint("user_id", reset.UserID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create password reset")
	}
	return nil
}

// FindLatest returns the most recently issued row for the email/token
// pair. Older rows for the same address are superseded, not consulted.
func (r *PasswordResetRepository) FindLatest(ctx context.Context, email, token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	err := r.db.WithContext(ctx).
		Where("email = ? AND token = ?", email, token).
		Order("sent_at DESC").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidResetToken
		}
		r.logger.Error("Failed to find password reset", zap.String("email", email), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find password reset")
	}
	return &reset, nil
}

// DeleteByUser removes every outstanding row for the user, which is how
// a redeemed token and all its predecessors are invalidated at once.
func (r *PasswordResetRepository) DeleteByUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordReset{}).Error
	if err != nil {
		r.logger.Error("Failed to delete password resets", zap.Uint("user_id", userID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to delete password resets")
	}
	return nil
}
