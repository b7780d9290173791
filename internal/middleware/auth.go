package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	apperrors "github.com/minilms/backend/internal/errors"
	"github.com/minilms/backend/internal/service"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxClaims = "claims"
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// RequireAuth verifies the Bearer token and stashes the claims in the
// request context. Any verification failure answers with the status the
// specific domain error maps to.
func RequireAuth(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if header == "" {
			c.AbortWithStatusJSON(
				apperrors.ToHTTPStatus(apperrors.ErrUnauthorized),
				constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil),
			)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(
				apperrors.ToHTTPStatus(apperrors.ErrMalformedToken),
				constants.BuildErrorResponse(apperrors.ErrMalformedToken.Message, nil),
			)
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			logger.Warn("Token rejected",
				zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(
				apperrors.ToHTTPStatus(err),
				constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil),
			)
			return
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.UserID())
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. It runs after
// RequireAuth and answers 403 when the token's role is not in the set.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(
				apperrors.ToHTTPStatus(apperrors.ErrForbidden),
				constants.BuildErrorResponse(apperrors.ErrForbidden.Message, nil),
			)
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by RequireAuth.
func ClaimsFrom(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
