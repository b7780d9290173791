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

type ModuleHandler struct {
	modules *service.ModuleService
	logger  *zap.Logger
}

func NewModuleHandler(modules *service.ModuleService, logger *zap.Logger) *ModuleHandler {
	return &ModuleHandler{modules: modules, logger: logger}
}

// Create accepts multipart form data with an optional "file" part.
func (h *ModuleHandler) Create(c *gin.Context) {
	var req dto.CreateModuleRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil && err != http.ErrMissingFile {
		respondBadRequest(c, err)
		return
	}

	trainerID := c.GetUint(middleware.CtxUserID)
	resp, err := h.modules.Create(c.Request.Context(), trainerID, req, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgCreated, resp))
}

func (h *ModuleHandler) List(c *gin.Context) {
	resp, err := h.modules.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *ModuleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.modules.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *ModuleHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	resp, err := h.modules.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateModuleRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil && err != http.ErrMissingFile {
		respondBadRequest(c, err)
		return
	}

	trainerID := c.GetUint(middleware.CtxUserID)
	resp, err := h.modules.Update(c.Request.Context(), trainerID, id, req, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgUpdated, resp))
}

func (h *ModuleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxRole) == constants.RoleAdmin
	if err := h.modules.Delete(c.Request.Context(), actorID, id, isAdmin); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
