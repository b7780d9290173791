package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperrors "github.com/minilms/backend/internal/errors"
)

func TestTranslateUserCreateError(t *testing.T) {
	t.Run("duplicate email becomes conflict", func(t *testing.T) {
		err := translateUserCreateError(gorm.ErrDuplicatedKey)
		assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	})

	t.Run("wrapped duplicate also becomes conflict", func(t *testing.T) {
		err := translateUserCreateError(fmt.Errorf("insert users: %w", gorm.ErrDuplicatedKey))
		assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	})

	t.Run("other failures stay internal", func(t *testing.T) {
		err := translateUserCreateError(errors.New("connection reset"))
		assert.ErrorIs(t, err, apperrors.ErrInternal)
		assert.NotErrorIs(t, err, apperrors.ErrEmailExists)
	})
}
