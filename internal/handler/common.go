package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minilms/backend/internal/constants"
	apperrors "github.com/minilms/backend/internal/errors"
)

// respondError writes the status and message a domain error maps to.
// Non-domain errors fall through to a plain 500 so internals never
// reach the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	msg := constants.MsgInternalError
	if domainErr := apperrors.GetDomainError(err); domainErr != nil {
		msg = domainErr.Message
	}
	c.JSON(status, constants.BuildErrorResponse(msg, nil))
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(
		apperrors.ToHTTPStatus(apperrors.ErrInvalidInput),
		constants.BuildErrorResponse(apperrors.ErrInvalidInput.Message, err.Error()),
	)
}

// pathID parses a numeric :param, answering 400 itself on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(
			apperrors.ToHTTPStatus(apperrors.ErrInvalidInput),
			constants.BuildErrorResponse(apperrors.ErrInvalidInput.Message, "invalid id"),
		)
		return 0, false
	}
	return uint(id), true
}
