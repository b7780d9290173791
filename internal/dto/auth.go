package dto

import "time"

// AdminLoginRequest starts the two-step admin login.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest completes the two-step admin login.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// UserLoginRequest authenticates a trainer or learner. The role is part
// of the credential: the same email with the wrong role is rejected.
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,lmsrole"`
}

// RegisterRequest creates a trainer or learner account. Admin accounts
// cannot be registered through the API.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=Trainer Learner"`
}

// PasswordResetRequest asks for a reset link to be mailed out.
type PasswordResetRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// PasswordResetConfirm redeems a mailed reset token.
type PasswordResetConfirm struct {
	Email           string `json:"email" binding:"required,email"`
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginResponse carries the signed token plus the identity it encodes.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}
