package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		}
		return translateUserCreateError(err)
	}
	return nil
}

// translateUserCreateError maps a unique violation on the email column
// onto the conflict the register endpoint answers with. The insert can
// still collide after the ExistsByEmail check: concurrent registrations,
// and soft-deleted rows that keep holding the unique index.
func translateUserCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailExists
	}
	return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create user")
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		r.logger.Error("Failed to find user", zap.Uint("user_id", id), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find user")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		r.logger.Error("Failed to find user by email", zap.String("email", email), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find user")
	}
	return &user, nil
}

// FindByEmailAndRole is the login lookup: the email/role pair is the
// credential key, so an existing email with a different role reads as
// not found.
func (r *UserRepository) FindByEmailAndRole(ctx context.Context, email, role string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ? AND role = ?", email, role).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		r.logger.Error("Failed to find user by email and role",
			zap.String("email", email), zap.String("role", role), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find user")
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to count users by email", zap.String("email", email), zap.Error(err))
		return false, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to check email")
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Order("id")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list users")
	}
	return users, nil
}

// ListActiveByRole backs notification fan-out; deactivated accounts are
// never notified.
func (r *UserRepository) ListActiveByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Find(&users).Error
	if err != nil {
		r.logger.Error("Failed to list active users", zap.String("role", role), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list users")
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		r.logger.Error("Failed to update user", zap.Uint("user_id", user.ID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to update user")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		r.logger.Error("Failed to delete user", zap.Uint("user_id", id), zap.Error(res.Error))
		return apperrors.WrapError(res.Error, apperrors.ErrInternal.Code, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Count(&count).Error; err != nil {
		r.logger.Error("Failed to count users", zap.String("role", role), zap.Error(err))
		return 0, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to count users")
	}
	return count, nil
}
