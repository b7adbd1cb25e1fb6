package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

// HomeworkHandler ...
type HomeworkHandler struct {
	Helper          helper.HTTPHelper
	HomeworkService services.HomeworkService
}

// Create ...
func (h *HomeworkHandler) Create(c *gin.Context) {
	var req models.CreateHomeworkRequest
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

	homework, err := h.HomeworkService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "homework created", homework)
}

// Get ...
func (h *HomeworkHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid homework id", h.Helper.EmptyJsonMap())
		return
	}
	homework, err := h.HomeworkService.Get(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "homework detail", homework)
}

// Lesson ...
func (h *HomeworkHandler) Lesson(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid homework id", h.Helper.EmptyJsonMap())
		return
	}
	lesson, err := h.HomeworkService.Lesson(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "homework lesson", lesson)
}

// ListByLesson ...
func (h *HomeworkHandler) ListByLesson(c *gin.Context) {
	lessonID, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	homeworks, err := h.HomeworkService.ListByLesson(caller(c), lessonID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "homework list", homeworks)
}

// Update ...
func (h *HomeworkHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid homework id", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateHomeworkRequest
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

	homework, err := h.HomeworkService.Update(caller(c), id, req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "homework updated", homework)
}

// Delete ...
func (h *HomeworkHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid homework id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.HomeworkService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "homework deleted", h.Helper.EmptyJsonMap())
}
