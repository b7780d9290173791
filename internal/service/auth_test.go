package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func newTestAuth(users *fakeUserStore, resets *fakeResetStore, mailer *fakeMailer) *AuthService {
	return NewAuthService(users, resets, newTestTokenService(), mailer,
		"http://localhost:5173", zap.NewNop())
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	users.add(model.User{
		Model: gorm.Model{ID: 1}, Username: "lea", Email: "lea@example.com",
		PasswordHash: hashOf(t, "correct horse"), Role: constants.RoleLearner, IsActive: true,
	})
	users.add(model.User{
		Model: gorm.Model{ID: 2}, Username: "disabled", Email: "off@example.com",
		PasswordHash: hashOf(t, "pw"), Role: constants.RoleLearner, IsActive: false,
	})
	users.add(model.User{
		Model: gorm.Model{ID: 3}, Username: "pending", Email: "pending@example.com",
		PasswordHash: nil, Role: constants.RoleTrainer, IsActive: true,
	})

	svc := newTestAuth(users, newFakeResetStore(), &fakeMailer{})
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantErr  error
	}{
		{"success", "lea@example.com", "correct horse", constants.RoleLearner, nil},
		{"unknown email", "ghost@example.com", "pw", constants.RoleLearner, apperrors.ErrInvalidCredentials},
		{"right email wrong role", "lea@example.com", "correct horse", constants.RoleTrainer, apperrors.ErrInvalidCredentials},
		{"admin role rejected", "lea@example.com", "correct horse", constants.RoleAdmin, apperrors.ErrInvalidRole},
		{"wrong password", "lea@example.com", "incorrect horse", constants.RoleLearner, apperrors.ErrInvalidCredentials},
		{"inactive account", "off@example.com", "pw", constants.RoleLearner, apperrors.ErrUserInactive},
		{"password never set", "pending@example.com", "anything", constants.RoleTrainer, apperrors.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, tt.email, tt.password, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), resp.UserID)
			assert.Equal(t, constants.RoleLearner, resp.Role)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestLoginTokenCarriesIdentity(t *testing.T) {
	users := newFakeUserStore()
	users.add(model.User{
		Model: gorm.Model{ID: 7}, Username: "tr", Email: "tr@example.com",
		PasswordHash: hashOf(t, "pw"), Role: constants.RoleTrainer, IsActive: true,
	})
	svc := newTestAuth(users, newFakeResetStore(), &fakeMailer{})

	resp, err := svc.Login(context.Background(), "tr@example.com", "pw", constants.RoleTrainer)
	require.NoError(t, err)

	claims, err := newTestTokenService().Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID())
	assert.Equal(t, constants.RoleTrainer, claims.Role)
	assert.Equal(t, "tr@example.com", claims.Email)
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuth(users, newFakeResetStore(), &fakeMailer{})
	ctx := context.Background()

	resp, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "newbie", Email: "new@example.com", Password: "password1", Role: constants.RoleLearner,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleLearner, resp.Role)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.HasPassword)

	// Stored hash must not be the plaintext.
	stored, err := users.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotContains(t, *stored.PasswordHash, "password1")

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "dup", Email: "new@example.com", Password: "password2", Role: constants.RoleTrainer,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "boss", Email: "boss@example.com", Password: "password3", Role: constants.RoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestPasswordResetRequest(t *testing.T) {
	users := newFakeUserStore()
	users.add(model.User{
		Model: gorm.Model{ID: 1}, Username: "u", Email: "u@example.com",
		PasswordHash: hashOf(t, "old"), Role: constants.RoleLearner, IsActive: true,
	})
	users.add(model.User{
		Model: gorm.Model{ID: 2}, Username: "fresh", Email: "fresh@example.com",
		PasswordHash: nil, Role: constants.RoleLearner, IsActive: true,
	})
	resets := newFakeResetStore()
	mailer := &fakeMailer{}
	svc := newTestAuth(users, resets, mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, 1))
	require.Len(t, mailer.resets, 1)
	assert.Contains(t, mailer.resets[0], "/reset-password?")

	require.NoError(t, svc.RequestPasswordReset(ctx, 2))
	require.Len(t, mailer.resets, 2)
	assert.Contains(t, mailer.resets[1], "/setup-password?",
		"an account without a password gets the setup link")

	err := svc.RequestPasswordReset(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPasswordResetConfirm(t *testing.T) {
	users := newFakeUserStore()
	users.add(model.User{
		Model: gorm.Model{ID: 1}, Username: "u", Email: "u@example.com",
		PasswordHash: hashOf(t, "old password"), Role: constants.RoleLearner, IsActive: true,
	})
	resets := newFakeResetStore()
	mailer := &fakeMailer{}
	svc := newTestAuth(users, resets, mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, 1))
	link := mailer.resets[0]
	token := link[strings.LastIndex(link, "token=")+len("token="):]

	err := svc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Email: "u@example.com", Token: token,
		NewPassword: "brand new pw", ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	// The failed confirm must not have touched the stored hash.
	u, _ := users.FindByID(ctx, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("old password")))

	err = svc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Email: "u@example.com", Token: "bogus-token",
		NewPassword: "brand new pw", ConfirmPassword: "brand new pw",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Email: "u@example.com", Token: token,
		NewPassword: "brand new pw", ConfirmPassword: "brand new pw",
	}))

	u, _ = users.FindByID(ctx, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("brand new pw")))

	// The token redeems exactly once.
	err = svc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Email: "u@example.com", Token: token,
		NewPassword: "another pw", ConfirmPassword: "another pw",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	users := newFakeUserStore()
	users.add(model.User{
		Model: gorm.Model{ID: 1}, Username: "u", Email: "u@example.com",
		PasswordHash: hashOf(t, "old"), Role: constants.RoleLearner, IsActive: true,
	})
	resets := newFakeResetStore()
	mailer := &fakeMailer{}
	svc := newTestAuth(users, resets, mailer)
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, 1))
	link := mailer.resets[0]
	token := link[strings.LastIndex(link, "token=")+len("token="):]

	svc.now = func() time.Time { return time.Now().Add(31 * time.Minute) }
	err := svc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Email: "u@example.com", Token: token,
		NewPassword: "new pw 123", ConfirmPassword: "new pw 123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}
