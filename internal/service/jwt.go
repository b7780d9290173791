package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/minilms/backend/internal/errors"
)

// Claims is the token payload. Role drives every authorization check,
// so it lives in the token rather than being re-read from the database
// per request.
type Claims struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewTokenService(secret, issuer, audience string, expiry time.Duration, logger *zap.Logger) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue signs an HS256 token for the given identity. The admin identity
// uses userID 0 because the admin is not a database user.
func (s *TokenService) Issue(userID uint, username, email, role string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)

	claims := Claims{
		Role:     role,
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Uint("user_id", userID), zap.Error(err))
		return "", time.Time{}, apperrors.WrapError(err, apperrors.ErrInternal.Code, "failed to sign token")
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token, mapping library failures onto
// the service's own error taxonomy.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, apperrors.ErrIssuerMismatch
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, apperrors.ErrAudienceMismatch
		default:
			return nil, apperrors.ErrMalformedToken
		}
	}
	return claims, nil
}

// UserID decodes the subject claim; 0 means the admin identity.
func (c *Claims) UserID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
