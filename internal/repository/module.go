package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

type ModuleRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewModuleRepository(db *gorm.DB, logger *zap.Logger) *ModuleRepository {
	return &ModuleRepository{db: db, logger: logger}
}

func (r *ModuleRepository) Create(ctx context.Context, module *model.Module) error {
	if err := r.db.WithContext(ctx).Create(module).Error; err != nil {
		r.logger.Error("Failed to create module",
			zap.Uint("course_id", module.CourseID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to create module")
	}
	return nil
}

func (r *ModuleRepository) FindByID(ctx context.Context, id uint) (*model.Module, error) {
	var module model.Module
	err := r.db.WithContext(ctx).Preload("Course").First(&module, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrModuleNotFound
		}
		r.logger.Error("Failed to find module", zap.Uint("module_id", id), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to find module")
	}
	return &module, nil
}

func (r *ModuleRepository) List(ctx context.Context) ([]model.Module, error) {
	var modules []model.Module
	if err := r.db.WithContext(ctx).Order("id").Find(&modules).Error; err != nil {
		r.logger.Error("Failed to list modules", zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list modules")
	}
	return modules, nil
}

func (r *ModuleRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("id").Find(&modules).Error
	if err != nil {
		r.logger.Error("Failed to list modules", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to list modules")
	}
	return modules, nil
}

func (r *ModuleRepository) Update(ctx context.Context, module *model.Module) error {
	if err := r.db.WithContext(ctx).Save(module).Error; err != nil {
		r.logger.Error("Failed to update module", zap.Uint("module_id", module.ID), zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to update module")
	}
	return nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Module{}, id)
	if res.Error != nil {
		r.logger.Error("Failed to delete module", zap.Uint("module_id", id), zap.Error(res.Error))
		return apperrors.WrapError(res.Error, apperrors.ErrInternal.Code, "failed to delete module")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
