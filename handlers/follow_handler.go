package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"
)

// FollowHandler ...
type FollowHandler struct {
	Helper        helper.HTTPHelper
	FollowService services.FollowService
}

// Toggle follows the author when not followed yet and unfollows otherwise.
func (h *FollowHandler) Toggle(c *gin.Context) {
	var req models.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if err := h.Helper.Validate.Struct(req); err != nil {
		if verr, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, verr)
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	followed, err := h.FollowService.Toggle(caller(c), req.AuthorID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "follow toggled", map[string]interface{}{"followed": followed})
}

// Followers returns the author's follower count.
func (h *FollowHandler) Followers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return
	}
	count, err := h.FollowService.Followers(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "follower count", map[string]interface{}{"followers": count})
}
