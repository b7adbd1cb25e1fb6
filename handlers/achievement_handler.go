package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"
)

// AchievementHandler ...
type AchievementHandler struct {
	Helper             helper.HTTPHelper
	AchievementService services.AchievementService
}

// Create ...
func (h *AchievementHandler) Create(c *gin.Context) {
	var req models.CreateAchievementRequest
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

	achievement, err := h.AchievementService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "achievement created", achievement)
}

// Get ...
func (h *AchievementHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid achievement id", h.Helper.EmptyJsonMap())
		return
	}
	achievement, err := h.AchievementService.Get(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "achievement detail", achievement)
}

// List ...
func (h *AchievementHandler) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	achievements, total, err := h.AchievementService.List(params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "achievement list", map[string]interface{}{
		"achievements": achievements,
		"pagination":   h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// Update ...
func (h *AchievementHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid achievement id", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateAchievementRequest
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

	achievement, err := h.AchievementService.Update(caller(c), id, req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "achievement updated", achievement)
}

// Delete ...
func (h *AchievementHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid achievement id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.AchievementService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "achievement deleted", h.Helper.EmptyJsonMap())
}

// Toggle grants or revokes the achievement for a user.
func (h *AchievementHandler) Toggle(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid achievement id", h.Helper.EmptyJsonMap())
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return
	}

	granted, err := h.AchievementService.Toggle(caller(c), userID, id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "achievement toggled", map[string]interface{}{"granted": granted})
}
