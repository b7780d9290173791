package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/pkg/redis"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check reports liveness plus the state of the backing stores. The
// endpoint answers 200 as long as the process is up; individual
// components carry their own status.
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "up"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "down"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "down"
	}

	redisStatus := "disabled"
	if h.cache.IsEnabled() {
		redisStatus = "up"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			redisStatus = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"app":     constants.AppName,
		"version": constants.AppVersion,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"components": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
