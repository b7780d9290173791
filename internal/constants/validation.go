package constants

// Field Length Limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MinUsernameLength = 2
	MaxUsernameLength = 50
	MaxEmailLength    = 255
	MaxCourseName     = 255
	MaxModuleName     = 255
	MaxMessageLength  = 2000
	MinRating         = 1
	MaxRating         = 5
)

// OTP settings
const (
	OtpDigits = 6
)
