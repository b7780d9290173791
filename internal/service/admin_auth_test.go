package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/pkg/otp"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "super-secret"
)

func newTestAdminAuth(mailer *fakeMailer) *AdminAuthService {
	return NewAdminAuthService(
		testAdminEmail, testAdminPassword,
		5*time.Minute,
		otp.NewMemoryStore(),
		mailer,
		newTestTokenService(),
		zap.NewNop(),
	)
}

func TestAdminRequestOTPWrongCredentials(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestAdminAuth(mailer)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong email", "other@example.com", testAdminPassword},
		{"wrong password", testAdminEmail, "nope"},
		{"both wrong", "other@example.com", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RequestOTP(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, apperrors.ErrInvalidAdminCredentials)
		})
	}
	assert.Empty(t, mailer.otps, "no OTP may be issued on bad credentials")
}

func TestAdminOTPFullFlow(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestAdminAuth(mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, testAdminEmail, testAdminPassword))
	require.Len(t, mailer.otps, 1)
	code := mailer.otps[0]
	require.Len(t, code, 6)

	token, _, err := svc.VerifyOTP(ctx, testAdminEmail, code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := newTestTokenService().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, uint(0), claims.UserID())
}

func TestAdminOTPSingleUse(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestAdminAuth(mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, testAdminEmail, testAdminPassword))
	code := mailer.otps[0]

	_, _, err := svc.VerifyOTP(ctx, testAdminEmail, code)
	require.NoError(t, err)

	_, _, err = svc.VerifyOTP(ctx, testAdminEmail, code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP, "a redeemed code must not verify twice")
}

func TestAdminOTPReRequestOverwrites(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestAdminAuth(mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, testAdminEmail, testAdminPassword))
	require.NoError(t, svc.RequestOTP(ctx, testAdminEmail, testAdminPassword))
	require.Len(t, mailer.otps, 2)
	first, second := mailer.otps[0], mailer.otps[1]

	if first != second {
		_, _, err := svc.VerifyOTP(ctx, testAdminEmail, first)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOTP, "the older code must be superseded")
	}

	_, _, err := svc.VerifyOTP(ctx, testAdminEmail, second)
	assert.NoError(t, err)
}

func TestAdminVerifyOTPWrongInputs(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestAdminAuth(mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestOTP(ctx, testAdminEmail, testAdminPassword))
	code := mailer.otps[0]

	_, _, err := svc.VerifyOTP(ctx, "other@example.com", code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	_, _, err = svc.VerifyOTP(ctx, testAdminEmail, "000000x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)
}

func TestAdminRequestOTPSurvivesMailFailure(t *testing.T) {
	mailer := &fakeMailer{fail: true}
	svc := newTestAdminAuth(mailer)

	err := svc.RequestOTP(context.Background(), testAdminEmail, testAdminPassword)
	assert.NoError(t, err, "email delivery is best-effort")
}
