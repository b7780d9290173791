package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/dto"
	"github.com/minilms/backend/internal/middleware"
	"github.com/minilms/backend/internal/service"
)

type CourseHandler struct {
	courses *service.CourseService
	logger  *zap.Logger
}

func NewCourseHandler(courses *service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: logger}
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	trainerID := c.GetUint(middleware.CtxUserID)
	resp, err := h.courses.Create(c.Request.Context(), trainerID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgCreated, resp))
}

// List shows all courses to trainers and admins; learners only see
// public ones. `?mine=true` restricts a trainer to their own courses.
func (h *CourseHandler) List(c *gin.Context) {
	role := c.GetString(middleware.CtxRole)

	var trainerID uint
	if c.Query("mine") == "true" && role == constants.RoleTrainer {
		trainerID = c.GetUint(middleware.CtxUserID)
	}
	publicOnly := role == constants.RoleLearner

	resp, err := h.courses.List(c.Request.Context(), trainerID, publicOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	trainerID := c.GetUint(middleware.CtxUserID)
	resp, err := h.courses.Update(c.Request.Context(), trainerID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgUpdated, resp))
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxRole) == constants.RoleAdmin
	if err := h.courses.Delete(c.Request.Context(), actorID, id, isAdmin); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
