package service

import (
	"context"
	"sort"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

// Map-backed fakes for the store interfaces. They keep just enough
// behavior for the services under test.

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User), nextID: 1}
}

func (f *fakeUserStore) add(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	stored := u
	f.users[stored.ID] = &stored
	return f.users[stored.ID]
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmailAndRole(_ context.Context, email, role string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) ListActiveByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeResetStore struct {
	resets []model.PasswordReset
	nextID uint
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{nextID: 1}
}

func (f *fakeResetStore) Create(_ context.Context, reset *model.PasswordReset) error {
	reset.ID = f.nextID
	f.nextID++
	f.resets = append(f.resets, *reset)
	return nil
}

func (f *fakeResetStore) FindLatest(_ context.Context, email, token string) (*model.PasswordReset, error) {
	var latest *model.PasswordReset
	for i := range f.resets {
		r := &f.resets[i]
		if r.Email == email && r.Token == token {
			if latest == nil || r.SentAt.After(latest.SentAt) {
				latest = r
			}
		}
	}
	if latest == nil {
		return nil, apperrors.ErrInvalidResetToken
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeResetStore) DeleteByUser(_ context.Context, userID uint) error {
	kept := f.resets[:0]
	for _, r := range f.resets {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.resets = kept
	return nil
}

type fakeCourseStore struct {
	courses map[uint]*model.Course
	nextID  uint
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uint]*model.Course), nextID: 1}
}

func (f *fakeCourseStore) add(c model.Course) *model.Course {
	if c.ID == 0 {
		c.ID = f.nextID
	}
	if c.ID >= f.nextID {
		f.nextID = c.ID + 1
	}
	stored := c
	f.courses[stored.ID] = &stored
	return f.courses[stored.ID]
}

func (f *fakeCourseStore) Create(_ context.Context, course *model.Course) error {
	course.ID = f.nextID
	f.nextID++
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseStore) FindByID(_ context.Context, id uint) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseStore) List(_ context.Context, trainerID uint, publicOnly bool) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		if trainerID != 0 && c.TrainerID != trainerID {
			continue
		}
		if publicOnly && c.Visibility != "Public" {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *model.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

type fakeEnrollmentStore struct {
	enrollments map[uint]*model.Enrollment
	nextID      uint
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: make(map[uint]*model.Enrollment), nextID: 1}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, e *model.Enrollment) error {
	for _, existing := range f.enrollments {
		if existing.LearnerID == e.LearnerID && existing.CourseID == e.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	e.ID = f.nextID
	f.nextID++
	stored := *e
	f.enrollments[e.ID] = &stored
	return nil
}

func (f *fakeEnrollmentStore) FindByID(_ context.Context, id uint) (*model.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEnrollmentStore) Exists(_ context.Context, learnerID, courseID uint) (bool, error) {
	for _, e := range f.enrollments {
		if e.LearnerID == learnerID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) ListByLearner(_ context.Context, learnerID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.enrollments {
		if e.LearnerID == learnerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) Update(_ context.Context, e *model.Enrollment) error {
	if _, ok := f.enrollments[e.ID]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	f.enrollments[e.ID] = &copied
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func (f *fakeEnrollmentStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.enrollments)), nil
}

type fakeFeedbackStore struct {
	feedbacks map[uint]*model.Feedback
	nextID    uint
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{feedbacks: make(map[uint]*model.Feedback), nextID: 1}
}

func (f *fakeFeedbackStore) Create(_ context.Context, fb *model.Feedback) error {
	fb.ID = f.nextID
	f.nextID++
	stored := *fb
	f.feedbacks[fb.ID] = &stored
	return nil
}

func (f *fakeFeedbackStore) FindByID(_ context.Context, id uint) (*model.Feedback, error) {
	fb, ok := f.feedbacks[id]
	if !ok {
		return nil, apperrors.ErrFeedbackNotFound
	}
	copied := *fb
	return &copied, nil
}

func (f *fakeFeedbackStore) ListByCourse(_ context.Context, courseID uint) ([]model.Feedback, error) {
	var out []model.Feedback
	for _, fb := range f.feedbacks {
		if fb.CourseID == courseID {
			out = append(out, *fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackStore) ListByLearner(_ context.Context, learnerID uint) ([]model.Feedback, error) {
	var out []model.Feedback
	for _, fb := range f.feedbacks {
		if fb.LearnerID == learnerID {
			out = append(out, *fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackStore) Update(_ context.Context, fb *model.Feedback) error {
	if _, ok := f.feedbacks[fb.ID]; !ok {
		return apperrors.ErrFeedbackNotFound
	}
	copied := *fb
	f.feedbacks[fb.ID] = &copied
	return nil
}

func (f *fakeFeedbackStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.feedbacks[id]; !ok {
		return apperrors.ErrFeedbackNotFound
	}
	delete(f.feedbacks, id)
	return nil
}

type fakeNotificationStore struct {
	notifications map[uint]*model.Notification
	nextID        uint
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[uint]*model.Notification), nextID: 1}
}

func (f *fakeNotificationStore) Create(_ context.Context, n *model.Notification) error {
	n.ID = f.nextID
	f.nextID++
	stored := *n
	f.notifications[n.ID] = &stored
	return nil
}

func (f *fakeNotificationStore) CreateBatch(ctx context.Context, ns []model.Notification) error {
	for i := range ns {
		if err := f.Create(ctx, &ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationStore) FindByID(_ context.Context, id uint) (*model.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID uint) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, n *model.Notification) error {
	stored, ok := f.notifications[n.ID]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	stored.IsRead = true
	n.IsRead = true
	return nil
}

// fakeMailer records sends; fail switches every send to an error.
type fakeMailer struct {
	otps   []string
	resets []string
	sends  int
	fail   bool
}

type errSend struct{}

func (errSend) Error() string { return "send failed" }

func (f *fakeMailer) record() error {
	f.sends++
	if f.fail {
		return errSend{}
	}
	return nil
}

func (f *fakeMailer) SendOTP(to, code string) error {
	if err := f.record(); err != nil {
		return err
	}
	f.otps = append(f.otps, code)
	return nil
}

func (f *fakeMailer) SendPasswordReset(to, link string) error {
	if err := f.record(); err != nil {
		return err
	}
	f.resets = append(f.resets, link)
	return nil
}

func (f *fakeMailer) SendCourseAvailable(to, courseName string) error { return f.record() }
func (f *fakeMailer) SendCourseUpdated(to, courseName string) error   { return f.record() }
func (f *fakeMailer) SendFeedbackReceived(to, le, cn string) error    { return f.record() }
