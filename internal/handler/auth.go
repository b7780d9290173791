package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	"github.com/minilms/backend/internal/service"
)

type AuthHandler struct {
	auth      *service.AuthService
	adminAuth *service.AdminAuthService
	users     *service.UserService
	logger    *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, adminAuth *service.AdminAuthService, users *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, adminAuth: adminAuth, users: users, logger: logger}
}

// AdminLogin is OTP step one: credentials in, code mailed out.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.adminAuth.RequestOTP(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("OTP sent to admin email"))
}

// VerifyOTP is OTP step two: code in, admin token out.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	token, expiresAt, err := h.adminAuth.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse("login successful", dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     req.Email,
		Role:      constants.RoleAdmin,
	}))
}

func (h *AuthHandler) UserLogin(c *gin.Context) {
	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse("login successful", resp))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgCreated, resp))
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("password reset email sent"))
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("password updated"))
}

// Stats serves the admin dashboard counters.
func (h *AuthHandler) Stats(c *gin.Context) {
	resp, err := h.users.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}
