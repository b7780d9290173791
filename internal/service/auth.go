package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/model"
)

const resetTokenTTL = 30 * time.Minute

// AuthService handles trainer/learner login, registration, and the
// password reset flow. Admin login lives in AdminAuthService.
type AuthService struct {
	users           UserStore
	resets          PasswordResetStore
	tokens          *TokenService
	mailer          Mailer
	frontendBaseURL string
	logger          *zap.Logger
	now             func() time.Time
}

func NewAuthService(
	users UserStore,
	resets PasswordResetStore,
	tokens *TokenService,
	mailer Mailer,
	frontendBaseURL string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:           users,
		resets:          resets,
		tokens:          tokens,
		mailer:          mailer,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
		now:             time.Now,
	}
}

// Login authenticates by the email/role pair. A known email presented
// with the wrong role answers exactly like an unknown email.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*dto.LoginResponse, error) {
	if !constants.RegistrableRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.users.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt on inactive account", zap.Uint("user_id", user.ID))
		return nil, apperrors.ErrUserInactive
	}

	// A nil hash means the account was provisioned but the password was
	// never set; it cannot log in until the setup link is used.
	if user.PasswordHash == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login attempt with wrong password", zap.Uint("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}

// Register creates a trainer or learner account. Admin accounts cannot
// be created through this path.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if !constants.RegistrableRole(req.Role) {
		return nil, apperrors.ErrInvalidRole
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to hash password")
	}
	hashStr := string(hash)

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashStr,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// RequestPasswordReset issues a fresh token for the user and mails the
// link. Accounts that never set a password get a setup link instead of
// a reset link; the redemption endpoint is the same for both.
func (s *AuthService) RequestPasswordReset(ctx context.Context, userID uint) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	// Deactivated accounts answer exactly like missing ones.
	if !user.IsActive {
		return apperrors.ErrUserNotFound
	}

	token := uuid.NewString()
	now := s.now()
	reset := &model.PasswordReset{
		UserID:     user.ID,
		Email:      user.Email,
		Token:      token,
		SentAt:     now,
		ExpiryTime: now.Add(resetTokenTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return err
	}

	path := "reset-password"
	if user.PasswordHash == nil {
		path = "setup-password"
	}
	link := fmt.Sprintf("%s/%s?email=%s&token=%s", s.frontendBaseURL, path, user.Email, token)

	// Send failures are logged by the mailer and swallowed; the token
	// row exists either way and a retry issues a fresh one.
	_ = s.mailer.SendPasswordReset(user.Email, link)

	s.logger.Info("Password reset issued", zap.Uint("user_id", user.ID))
	return nil
}

// ConfirmPasswordReset redeems a mailed token and sets the new
// password. All outstanding tokens for the user are invalidated on
// success, so a token redeems exactly once.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirm) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	reset, err := s.resets.FindLatest(ctx, req.Email, req.Token)
	if err != nil {
		return err
	}
	if reset.Expired(s.now()) {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.users.FindByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to hash password")
	}
	hashStr := string(hash)
	user.PasswordHash = &hashStr

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.resets.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info("Password reset completed", zap.Uint("user_id", user.ID))
	return nil
}
