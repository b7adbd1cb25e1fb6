package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

// FileHandler ...
type FileHandler struct {
	Helper      helper.HTTPHelper
	FileService services.FileService
}

// Create registers uploaded file metadata.
func (h *FileHandler) Create(c *gin.Context) {
	var req models.CreateFileRequest
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

	file, err := h.FileService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "file registered", file)
}

// Get ...
func (h *FileHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid file id", h.Helper.EmptyJsonMap())
		return
	}
	file, err := h.FileService.Get(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "file detail", file)
}

// ListByOwner lists files attached to one owning entity; the owner is
// given as ?kind=...&id=... query parameters.
func (h *FileHandler) ListByOwner(c *gin.Context) {
	owner := models.FileOwner{
		Kind: models.OwnerKind(c.Query("kind")),
		ID:   c.Query("id"),
	}
	files, err := h.FileService.ListByOwner(owner)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "file list", files)
}

// Delete ...
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid file id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.FileService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "file deleted", h.Helper.EmptyJsonMap())
}
