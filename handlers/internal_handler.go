package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"
)

// InternalHandler serves the private surface for sibling services. The
// routes behind it are protected by the shared service token, not user
// JWTs.
type InternalHandler struct {
	Helper              helper.HTTPHelper
	InternalService     services.InternalService
	SubscriptionService services.SubscriptionService
}

// UserExists ...
func (h *InternalHandler) UserExists(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return
	}
	exists, err := h.InternalService.UserExists(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "existence check", map[string]interface{}{"exists": exists})
}

// CourseExists ...
func (h *InternalHandler) CourseExists(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	exists, err := h.InternalService.CourseExists(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "existence check", map[string]interface{}{"exists": exists})
}

// LessonExists ...
func (h *InternalHandler) LessonExists(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	exists, err := h.InternalService.LessonExists(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "existence check", map[string]interface{}{"exists": exists})
}

// HomeworkExists ...
func (h *InternalHandler) HomeworkExists(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid homework id", h.Helper.EmptyJsonMap())
		return
	}
	exists, err := h.InternalService.HomeworkExists(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "existence check", map[string]interface{}{"exists": exists})
}

// AchievementExists ...
func (h *InternalHandler) AchievementExists(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid achievement id", h.Helper.EmptyJsonMap())
		return
	}
	exists, err := h.InternalService.AchievementExists(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "existence check", map[string]interface{}{"exists": exists})
}

// IsSuperuser ...
func (h *InternalHandler) IsSuperuser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return
	}
	superuser, err := h.InternalService.IsSuperuser(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "superuser check", map[string]interface{}{"is_superuser": superuser})
}

// Followers dumps follower ids so the notifier can fan out.
func (h *InternalHandler) Followers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return
	}
	ids, err := h.InternalService.Followers(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "follower ids", map[string]interface{}{"user_ids": ids})
}

// Following ...
func (h *InternalHandler) Following(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return
	}
	ids, err := h.InternalService.Following(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "following ids", map[string]interface{}{"user_ids": ids})
}

// Subscribe enrolls a user in a course on behalf of the payment flow.
func (h *InternalHandler) Subscribe(c *gin.Context) {
	var req models.SubscriptionRequest
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
	if err := h.SubscriptionService.Subscribe(req.UserID, req.CourseID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "subscribed", h.Helper.EmptyJsonMap())
}

// Unsubscribe ...
func (h *InternalHandler) Unsubscribe(c *gin.Context) {
	var req models.SubscriptionRequest
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
	if err := h.SubscriptionService.Unsubscribe(req.UserID, req.CourseID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "unsubscribed", h.Helper.EmptyJsonMap())
}

// Graduate marks course completion for a user.
func (h *InternalHandler) Graduate(c *gin.Context) {
	var req models.SubscriptionRequest
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
	if err := h.SubscriptionService.Graduate(req.UserID, req.CourseID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "graduated", h.Helper.EmptyJsonMap())
}

type commentReport struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Count  int64     `json:"count" validate:"min=0"`
}

// ReportComments receives comment totals from the discussion service.
func (h *InternalHandler) ReportComments(c *gin.Context) {
	var req commentReport
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
	if err := h.InternalService.ReportComments(req.UserID, req.Count); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "comment totals processed", h.Helper.EmptyJsonMap())
}
