package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minilms/backend/internal/constants"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

func TestEnroll(t *testing.T) {
	courses := newFakeCourseStore()
	courses.add(model.Course{Model: gorm.Model{ID: 10}, TrainerID: 1, Name: "Go Basics", Visibility: constants.VisibilityPublic})
	enrollments := newFakeEnrollmentStore()
	svc := NewEnrollmentService(enrollments, courses, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Enroll(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(5), resp.LearnerID)
	assert.Equal(t, uint(10), resp.CourseID)
	assert.Equal(t, constants.EnrollmentActive, resp.Status)

	_, err = svc.Enroll(ctx, 5, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	_, err = svc.Enroll(ctx, 5, 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// A different learner on the same course is fine.
	_, err = svc.Enroll(ctx, 6, 10)
	assert.NoError(t, err)
}

func TestRosterOwnership(t *testing.T) {
	courses := newFakeCourseStore()
	courses.add(model.Course{Model: gorm.Model{ID: 10}, TrainerID: 1, Name: "Go Basics"})
	enrollments := newFakeEnrollmentStore()
	svc := NewEnrollmentService(enrollments, courses, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Enroll(ctx, 5, 10)
	require.NoError(t, err)

	roster, err := svc.Roster(ctx, 1, false, 10)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = svc.Roster(ctx, 2, false, 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "another trainer may not read the roster")

	roster, err = svc.Roster(ctx, 0, true, 10)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}

func TestDropOwnership(t *testing.T) {
	courses := newFakeCourseStore()
	courses.add(model.Course{Model: gorm.Model{ID: 10}, TrainerID: 1, Name: "Go Basics"})
	enrollments := newFakeEnrollmentStore()
	svc := NewEnrollmentService(enrollments, courses, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Enroll(ctx, 5, 10)
	require.NoError(t, err)

	err = svc.Drop(ctx, 6, false, resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "a learner may only drop their own enrollment")

	require.NoError(t, svc.Drop(ctx, 5, false, resp.ID))

	err = svc.Drop(ctx, 5, false, resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
