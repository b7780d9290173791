// Package mailer wraps the outbound SMTP transport. Every send is
// fire-and-forget from the caller's point of view: services log a
// failed send and carry on, they never fail the triggering request
// because of it.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSMTPMailer(cfg Config, logger *zap.Logger) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     from,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

// Send delivers a plain-text message. Each call dials a fresh SMTP
// session; volumes here are far too small to justify a held connection.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// SendOTP emails a login code to the administrator mailbox. The code is
// deliberately not logged.
func (m *SMTPMailer) SendOTP(to, code string) error {
	body := fmt.Sprintf("Your MiniLMS OTP is: %s\nIt expires in 5 minutes.", code)
	return m.Send(to, "Your MiniLMS OTP", body)
}

// SendPasswordReset emails a reset or first-time setup link.
func (m *SMTPMailer) SendPasswordReset(to, link string) error {
	body := fmt.Sprintf(
		"Hello,\n\nClick the link below to set your password:\n%s\n\nThis link will expire in 30 minutes.",
		link,
	)
	return m.Send(to, "Password Reset Request", body)
}

// SendCourseAvailable tells a learner a new course is open for enrollment.
func (m *SMTPMailer) SendCourseAvailable(to, courseName string) error {
	body := fmt.Sprintf(
		"Hello,\n\nA new course '%s' is now available. Log in to MiniLMS to enroll!",
		courseName,
	)
	return m.Send(to, "New Course Available", body)
}

// SendCourseUpdated notifies about a change to a course or its modules.
func (m *SMTPMailer) SendCourseUpdated(to, courseName string) error {
	body := fmt.Sprintf("The course '%s' has been updated.", courseName)
	return m.Send(to, "Course Updated", body)
}

// SendFeedbackReceived tells a trainer a learner left feedback.
func (m *SMTPMailer) SendFeedbackReceived(to, learnerEmail, courseName string) error {
	body := fmt.Sprintf(
		"Learner '%s' has submitted feedback for your course '%s'.",
		learnerEmail, courseName,
	)
	return m.Send(to, "New Feedback Received", body)
}
