package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

func newFeedbackFixture(t *testing.T) (*FeedbackService, *fakeNotificationStore, *fakeMailer) {
	t.Helper()
	courses := newFakeCourseStore()
	trainer := &model.User{Model: gorm.Model{ID: 1}, Username: "t", Email: "t@example.com", Role: constants.RoleTrainer}
	courses.add(model.Course{Model: gorm.Model{ID: 10}, TrainerID: 1, Trainer: trainer, Name: "Go Basics"})

	enrollments := newFakeEnrollmentStore()
	require.NoError(t, enrollments.Create(context.Background(), &model.Enrollment{LearnerID: 5, CourseID: 10}))

	notifications := newFakeNotificationStore()
	mailer := &fakeMailer{}
	svc := NewFeedbackService(newFakeFeedbackStore(), courses, enrollments, notifications, mailer, zap.NewNop())
	return svc, notifications, mailer
}

func TestCreateFeedbackNotifiesTrainer(t *testing.T) {
	svc, notifications, mailer := newFeedbackFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, 5, "l@example.com", dto.CreateFeedbackRequest{
		CourseID: 10, Message: "great course", Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)

	rows, err := notifications.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, constants.NotifyFeedbackReceived, rows[0].Type)
	assert.Equal(t, 1, mailer.sends)
}

func TestCreateFeedbackRequiresEnrollment(t *testing.T) {
	svc, _, _ := newFeedbackFixture(t)

	_, err := svc.Create(context.Background(), 6, "x@example.com", dto.CreateFeedbackRequest{
		CourseID: 10, Message: "sneaky", Rating: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Create(context.Background(), 5, "l@example.com", dto.CreateFeedbackRequest{
		CourseID: 99, Message: "nowhere", Rating: 3,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestFeedbackUpdateOwnership(t *testing.T) {
	svc, _, _ := newFeedbackFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, 5, "l@example.com", dto.CreateFeedbackRequest{
		CourseID: 10, Message: "ok", Rating: 3,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 6, false, resp.ID, "hijacked", 1)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.Update(ctx, 5, false, resp.ID, "better on reflection", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	// Admin may delete any entry.
	require.NoError(t, svc.Delete(ctx, 0, true, resp.ID))
	_, err = svc.Get(ctx, resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotFound)
}
