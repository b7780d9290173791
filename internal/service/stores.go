package service

import (
	"context"

	"github.com/minilms/backend/internal/model"
)

// The services depend on these narrow store interfaces rather than on
// the gorm repositories directly, so unit tests can swap in in-memory
// fakes.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailAndRole(ctx context.Context, email, role string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, role string) ([]model.User, error)
	ListActiveByRole(ctx context.Context, role string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type PasswordResetStore interface {
	Create(ctx context.Context, reset *model.PasswordReset) error
	FindLatest(ctx context.Context, email, token string) (*model.PasswordReset, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type CourseStore interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uint) (*model.Course, error)
	List(ctx context.Context, trainerID uint, publicOnly bool) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ModuleStore interface {
	Create(ctx context.Context, module *model.Module) error
	FindByID(ctx context.Context, id uint) (*model.Module, error)
	List(ctx context.Context) ([]model.Module, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.Module, error)
	Update(ctx context.Context, module *model.Module) error
	Delete(ctx context.Context, id uint) error
}

type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	FindByID(ctx context.Context, id uint) (*model.Enrollment, error)
	Exists(ctx context.Context, learnerID, courseID uint) (bool, error)
	ListByLearner(ctx context.Context, learnerID uint) ([]model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.Enrollment, error)
	Update(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindByID(ctx context.Context, id uint) (*model.Feedback, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.Feedback, error)
	ListByLearner(ctx context.Context, learnerID uint) ([]model.Feedback, error)
	Update(ctx context.Context, feedback *model.Feedback) error
	Delete(ctx context.Context, id uint) error
}

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
	CreateBatch(ctx context.Context, notifications []model.Notification) error
	FindByID(ctx context.Context, id uint) (*model.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Notification, error)
	MarkRead(ctx context.Context, notification *model.Notification) error
}
