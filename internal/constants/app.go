package constants

// Application Information
const (
	AppName    = "Mini LMS"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// User roles. Stored as plain strings in the users table; writes go
// through ValidRole so only these three ever land in the column.
const (
	RoleAdmin   = "Admin"
	RoleTrainer = "Trainer"
	RoleLearner = "Learner"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTrainer, RoleLearner:
		return true
	}
	return false
}

// RegistrableRole reports whether role may be chosen at self-registration.
// Admin accounts are never created through the public register endpoint.
func RegistrableRole(role string) bool {
	return role == RoleTrainer || role == RoleLearner
}

// Course visibility values
const (
	VisibilityPublic = "Public"
	VisibilityHidden = "Hidden"
)

// Enrollment status values
const (
	EnrollmentActive    = "Active"
	EnrollmentCompleted = "Completed"
	EnrollmentDropped   = "Dropped"
)

// Notification types
const (
	NotifyCourseCreated    = "CourseCreated"
	NotifyCourseUpdated    = "CourseUpdated"
	NotifyModuleCreated    = "ModuleCreated"
	NotifyModuleUpdated    = "ModuleUpdated"
	NotifyModuleDeleted    = "ModuleDeleted"
	NotifyFeedbackReceived = "FeedbackReceived"
)

// OTP key prefix used by the redis-backed store
const OtpKeyPrefix = "minilms:otp:"
