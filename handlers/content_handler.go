package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

// ContentHandler ...
type ContentHandler struct {
	Helper         helper.HTTPHelper
	ContentService services.ContentService
}

// Create ...
func (h *ContentHandler) Create(c *gin.Context) {
	var req models.CreateContentRequest
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

	content, err := h.ContentService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "content created", content)
}

// Get ...
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid content id", h.Helper.EmptyJsonMap())
		return
	}
	content, err := h.ContentService.Get(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "content detail", content)
}

// ListByLesson ...
func (h *ContentHandler) ListByLesson(c *gin.Context) {
	lessonID, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid lesson id", h.Helper.EmptyJsonMap())
		return
	}
	contents, err := h.ContentService.ListByLesson(caller(c), lessonID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "content list", contents)
}

// Delete ...
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid content id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.ContentService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "content deleted", h.Helper.EmptyJsonMap())
}
