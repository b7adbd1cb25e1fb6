package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"
)

// CourseHandler ...
type CourseHandler struct {
	Helper        helper.HTTPHelper
	CourseService services.CourseService
}

// Create ...
func (h *CourseHandler) Create(c *gin.Context) {
	var req models.CreateCourseRequest
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

	course, err := h.CourseService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "course created", course)
}

// Get ...
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	course, err := h.CourseService.Get(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course detail", course)
}

// List ...
func (h *CourseHandler) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	courses, total, err := h.CourseService.List(params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course list", map[string]interface{}{
		"courses":    courses,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// ListByAuthor ...
func (h *CourseHandler) ListByAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid author id", h.Helper.EmptyJsonMap())
		return
	}
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	courses, total, err := h.CourseService.ListByAuthor(authorID, params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course list", map[string]interface{}{
		"courses":    courses,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// ListByCategory lists visible courses under a category.
func (h *CourseHandler) ListByCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid category id", h.Helper.EmptyJsonMap())
		return
	}
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	courses, total, err := h.CourseService.ListByCategory(id, params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course list", map[string]interface{}{
		"courses":    courses,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// ListDeleted shows the caller's own soft-deleted courses.
func (h *CourseHandler) ListDeleted(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	courses, total, err := h.CourseService.ListDeleted(caller(c), params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "deleted course list", map[string]interface{}{
		"courses":    courses,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// ListSubscribed shows the courses the caller is enrolled in.
func (h *CourseHandler) ListSubscribed(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	courses, total, err := h.CourseService.ListSubscribed(caller(c), params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "subscribed course list", map[string]interface{}{
		"courses":    courses,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// Update ...
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateCourseRequest
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

	course, err := h.CourseService.Update(caller(c), id, req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course updated", course)
}

// Delete soft-deletes the course.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.CourseService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course deleted", h.Helper.EmptyJsonMap())
}

// Restore ...
func (h *CourseHandler) Restore(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.CourseService.Restore(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "course restored", h.Helper.EmptyJsonMap())
}

// Hide ...
func (h *CourseHandler) Hide(c *gin.Context) {
	h.setVisibility(c, false, "course hidden")
}

// Show ...
func (h *CourseHandler) Show(c *gin.Context) {
	h.setVisibility(c, true, "course visible")
}

func (h *CourseHandler) setVisibility(c *gin.Context, visible bool, message string) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.CourseService.SetVisibility(caller(c), id, visible); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, message, h.Helper.EmptyJsonMap())
}

// AssignCategory ...
func (h *CourseHandler) AssignCategory(c *gin.Context) {
	var req models.BindCategoryRequest
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
	if err := h.CourseService.AssignCategory(caller(c), req.CourseID, req.CategoryID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "category assigned", h.Helper.EmptyJsonMap())
}

// BindTag ...
func (h *CourseHandler) BindTag(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
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
	if err := h.CourseService.BindTag(caller(c), id, req.TagID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "tag bound", h.Helper.EmptyJsonMap())
}

// UnbindTag ...
func (h *CourseHandler) UnbindTag(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid course id", h.Helper.EmptyJsonMap())
		return
	}
	tagID, ok := uintParam(c, "tagId")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid tag id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.CourseService.UnbindTag(caller(c), id, tagID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "tag unbound", h.Helper.EmptyJsonMap())
}
