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

type FeedbackHandler struct {
	feedbacks *service.FeedbackService
	logger    *zap.Logger
}

func NewFeedbackHandler(feedbacks *service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbacks: feedbacks, logger: logger}
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	learnerID := c.GetUint(middleware.CtxUserID)
	learnerEmail := c.GetString(middleware.CtxEmail)
	resp, err := h.feedbacks.Create(c.Request.Context(), learnerID, learnerEmail, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgCreated, resp))
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.feedbacks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *FeedbackHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	resp, err := h.feedbacks.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

type updateFeedbackRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxRole) == constants.RoleAdmin
	resp, err := h.feedbacks.Update(c.Request.Context(), actorID, isAdmin, id, req.Message, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgUpdated, resp))
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxRole) == constants.RoleAdmin
	if err := h.feedbacks.Delete(c.Request.Context(), actorID, isAdmin, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
