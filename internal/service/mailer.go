package service

// Mailer is the outbound email surface the services depend on. The
// production implementation is pkg/mailer; tests substitute fakes.
type Mailer interface {
	SendOTP(to, code string) error
	SendPasswordReset(to, link string) error
	SendCourseAvailable(to, courseName string) error
	SendCourseUpdated(to, courseName string) error
	SendFeedbackReceived(to, learnerEmail, courseName string) error
}
