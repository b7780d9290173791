package service

import (
	"context"
	"crypto/subtle"
	"time"

	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/pkg/otp"
)

// AdminAuthService implements the two-step admin login. The admin is a
// single configured identity, not a database row: step one checks the
// configured credentials and mails a one-time code, step two redeems
// the code for a token with subject 0.
type AdminAuthService struct {
	adminEmail    string
	adminPassword string
	otpTTL        time.Duration
	otpStore      otp.Store
	mailer        Mailer
	tokens        *TokenService
	logger        *zap.Logger
}

func NewAdminAuthService(
	adminEmail, adminPassword string,
	otpTTL time.Duration,
	otpStore otp.Store,
	mailer Mailer,
	tokens *TokenService,
	logger *zap.Logger,
) *AdminAuthService {
	return &AdminAuthService{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		otpTTL:        otpTTL,
		otpStore:      otpStore,
		mailer:        mailer,
		tokens:        tokens,
		logger:        logger,
	}
}

// RequestOTP validates the configured admin credentials and mails a
// fresh one-time code. Both fields are compared in constant time and
// the result is combined so the response never reveals which one was
// wrong. A repeated request overwrites any code already pending.
func (s *AdminAuthService) RequestOTP(ctx context.Context, email, password string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword))
	if emailOK&passOK != 1 {
		s.logger.Warn("Admin login attempt rejected", zap.String("email", email))
		return apperrors.ErrInvalidAdminCredentials
	}

	code, err := otp.GenerateCode(constants.OtpDigits)
	if err != nil {
		s.logger.Error("Failed to generate OTP", zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to generate OTP")
	}

	if err := s.otpStore.Put(ctx, s.adminEmail, code, s.otpTTL); err != nil {
		s.logger.Error("Failed to store OTP", zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to store OTP")
	}

	// Send failures are logged by the mailer; the response stays the
	// same either way so the endpoint leaks nothing about delivery.
	_ = s.mailer.SendOTP(s.adminEmail, code)

	s.logger.Info("Admin OTP issued", zap.String("email", s.adminEmail))
	return nil
}

// VerifyOTP redeems a pending code for an admin token. The code is
// single-use: it is removed before the token is issued, so a replay of
// the same code fails.
func (s *AdminAuthService) VerifyOTP(ctx context.Context, email, code string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) != 1 {
		return "", time.Time{}, apperrors.ErrInvalidOTP
	}

	stored, ok, err := s.otpStore.Get(ctx, s.adminEmail)
	if err != nil {
		s.logger.Error("Failed to read OTP", zap.Error(err))
		return "", time.Time{}, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to read OTP")
	}
	if !ok || subtle.ConstantTimeCompare([]byte(code), []byte(stored)) != 1 {
		s.logger.Warn("Admin OTP verification rejected", zap.String("email", email))
		return "", time.Time{}, apperrors.ErrInvalidOTP
	}

	if err := s.otpStore.Delete(ctx, s.adminEmail); err != nil {
		s.logger.Error("Failed to delete OTP", zap.Error(err))
		return "", time.Time{}, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to delete OTP")
	}

	token, expiresAt, err := s.tokens.Issue(0, "admin", s.adminEmail, constants.RoleAdmin)
	if err != nil {
		return "", time.Time{}, err
	}

	s.logger.Info("Admin login completed", zap.String("email", s.adminEmail))
	return token, expiresAt, nil
}
