package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

// LessonHandler ...
type LessonHandler struct {
	Helper        helper.HTTPHelper
	LessonService services.LessonService
}

// Create ...
func (h *LessonHandler) Create(c *gin.Context) {
	var req models.CreateLessonRequest
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

	lesson, err := h.LessonService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "lesson created", lesson)
}

// Get ...
func (h *LessonHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	lesson, err := h.LessonService.Get(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "lesson detail", lesson)
}

// Course ...
func (h *LessonHandler) Course(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	course, err := h.LessonService.Course(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "lesson course", course)
}

// ListByCourse ...
func (h *LessonHandler) ListByCourse(c *gin.Context) {
	courseID, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	lessons, total, err := h.LessonService.ListByCourse(caller(c), courseID, params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "lesson list", map[string]interface{}{
		"lessons":    lessons,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// Update ...
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateLessonRequest
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

	lesson, err := h.LessonService.Update(caller(c), id, req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "lesson updated", lesson)
}

// Delete ...
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.LessonService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "lesson deleted", h.Helper.EmptyJsonMap())
}

// BindTag ...
func (h *LessonHandler) BindTag(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	var req models.BindTagRequest
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
	if err := h.LessonService.BindTag(caller(c), id, req.TagID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "tag bound", h.Helper.EmptyJsonMap())
}

// UnbindTag ...
func (h *LessonHandler) UnbindTag(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	tagID, ok := uintParam(c, "tagId")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid tag id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.LessonService.UnbindTag(caller(c), id, tagID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "tag unbound", h.Helper.EmptyJsonMap())
}
