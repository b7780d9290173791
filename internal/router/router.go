package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minilms/backend/config"
	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/handler"
	"github.com/minilms/backend/internal/middleware"
	"github.com/minilms/backend/internal/service"
	"github.com/minilms/backend/pkg/redis"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Course       *handler.CourseHandler
	Module       *handler.ModuleHandler
	Enrollment   *handler.EnrollmentHandler
	Feedback     *handler.FeedbackHandler
	Notification *handler.NotificationHandler
}

// RegisterValidators installs the custom binding validators. Called
// once at startup before any request binds.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("lmsrole", func(fl validator.FieldLevel) bool {
			return constants.ValidRole(fl.Field().String())
		})
	}
}

// Setup builds the gin engine with the global middleware chain and the
// full route table.
func Setup(cfg *config.Config, db *gorm.DB, cache *redis.Client, tokens *service.TokenService, h Handlers, logger *zap.Logger) *gin.Engine {
	if cfg.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	RegisterValidators()

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.App.CORSAllowedOrigins))

	limiter := middleware.NewRateLimiter(
		cfg.RateLimit.Request,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
		logger,
	)
	r.Use(limiter.Middleware())

	health := handler.NewHealthHandler(db, cache)

	api := r.Group("/api/v1")
	api.GET("/health", health.Check)

	// Uploaded module files are served statically.
	r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	auth := api.Group("/auth")
	{
		auth.POST("/login/admin", h.Auth.AdminLogin)
		auth.POST("/admin/verify-otp", h.Auth.VerifyOTP)
		auth.POST("/login/user", h.Auth.UserLogin)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/password-reset/request", h.Auth.RequestPasswordReset)
		auth.POST("/password-reset/reset", h.Auth.ConfirmPasswordReset)

		auth.GET("/stats",
			middleware.RequireAuth(tokens, logger),
			middleware.RequireRole(constants.RoleAdmin),
			h.Auth.Stats)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(tokens, logger))

	users := authed.Group("/users")
	users.Use(middleware.RequireRole(constants.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.PATCH("/:id/toggle", h.User.ToggleActive)
		users.DELETE("/:id", h.User.Delete)
	}

	courses := authed.Group("/courses")
	{
		courses.GET("", h.Course.List)
		courses.GET("/:id", h.Course.Get)
		courses.POST("", middleware.RequireRole(constants.RoleTrainer), h.Course.Create)
		courses.PUT("/:id", middleware.RequireRole(constants.RoleTrainer), h.Course.Update)
		courses.DELETE("/:id",
			middleware.RequireRole(constants.RoleTrainer, constants.RoleAdmin),
			h.Course.Delete)
	}

	modules := authed.Group("/modules")
	{
		modules.GET("", h.Module.List)
		modules.GET("/:id", h.Module.Get)
		modules.GET("/course/:courseId", h.Module.ListByCourse)
		modules.POST("", middleware.RequireRole(constants.RoleTrainer), h.Module.Create)
		modules.PUT("/:id", middleware.RequireRole(constants.RoleTrainer), h.Module.Update)
		modules.DELETE("/:id",
			middleware.RequireRole(constants.RoleTrainer, constants.RoleAdmin),
			h.Module.Delete)
	}

	enrollments := authed.Group("/enrollments")
	{
		enrollments.POST("/enroll/:courseId",
			middleware.RequireRole(constants.RoleLearner), h.Enrollment.Enroll)
		enrollments.GET("/my-courses",
			middleware.RequireRole(constants.RoleLearner), h.Enrollment.MyCourses)
		enrollments.GET("/course/:courseId",
			middleware.RequireRole(constants.RoleTrainer, constants.RoleAdmin),
			h.Enrollment.Roster)
		enrollments.DELETE("/:id",
			middleware.RequireRole(constants.RoleLearner, constants.RoleAdmin),
			h.Enrollment.Drop)
	}

	feedbacks := authed.Group("/feedbacks")
	{
		feedbacks.POST("", middleware.RequireRole(constants.RoleLearner), h.Feedback.Create)
		feedbacks.GET("/:id", h.Feedback.Get)
		feedbacks.GET("/course/:courseId", h.Feedback.ListByCourse)
		feedbacks.PUT("/:id", h.Feedback.Update)
		feedbacks.DELETE("/:id", h.Feedback.Delete)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.PATCH("/:id/read", h.Notification.MarkRead)
	}

	return r
}
