package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/service"
)

func newAuthTestRouter(tokens *service.TokenService, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(tokens, zap.NewNop())}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id": claims.UserID(),
			"role":    c.GetString(CtxRole),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := service.NewTokenService("secret", "iss", "aud", time.Hour, zap.NewNop())
	r := newAuthTestRouter(tokens)

	token, _, err := tokens.Issue(7, "u", "u@example.com", constants.RoleLearner)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAuthWrongKey(t *testing.T) {
	tokens := service.NewTokenService("secret", "iss", "aud", time.Hour, zap.NewNop())
	other := service.NewTokenService("other", "iss", "aud", time.Hour, zap.NewNop())
	r := newAuthTestRouter(tokens)

	token, _, err := other.Issue(7, "u", "u@example.com", constants.RoleLearner)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := service.NewTokenService("secret", "iss", "aud", time.Hour, zap.NewNop())

	learnerToken, _, err := tokens.Issue(1, "l", "l@example.com", constants.RoleLearner)
	require.NoError(t, err)
	trainerToken, _, err := tokens.Issue(2, "t", "t@example.com", constants.RoleTrainer)
	require.NoError(t, err)
	adminToken, _, err := tokens.Issue(0, "admin", "a@example.com", constants.RoleAdmin)
	require.NoError(t, err)

	r := newAuthTestRouter(tokens, constants.RoleTrainer, constants.RoleAdmin)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"learner forbidden", learnerToken, http.StatusForbidden},
		{"trainer allowed", trainerToken, http.StatusOK},
		{"admin allowed", adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, "Bearer "+tt.token)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
