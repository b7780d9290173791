package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/middleware"
	"github.com/minilms/backend/internal/service"
)

type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	logger      *zap.Logger
}

func NewEnrollmentHandler(enrollments *service.EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, logger: logger}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	learnerID := c.GetUint(middleware.CtxUserID)
	resp, err := h.enrollments.Enroll(c.Request.Context(), learnerID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgCreated, resp))
}

func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	learnerID := c.GetUint(middleware.CtxUserID)
	resp, err := h.enrollments.ListOwn(c.Request.Context(), learnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *EnrollmentHandler) Roster(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxRole) == constants.RoleAdmin
	resp, err := h.enrollments.Roster(c.Request.Context(), actorID, isAdmin, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *EnrollmentHandler) Drop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxRole) == constants.RoleAdmin
	if err := h.enrollments.Drop(c.Request.Context(), actorID, isAdmin, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
