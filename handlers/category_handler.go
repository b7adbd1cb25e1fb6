package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

// CategoryHandler ...
type CategoryHandler struct {
	Helper          helper.HTTPHelper
	CategoryService services.CategoryService
}

// Create ...
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
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

	category, err := h.CategoryService.Create(caller(c), req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "category created", category)
}

// Get ...
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid category id", h.Helper.EmptyJsonMap())
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "category detail", category)
}

// List ...
func (h *CategoryHandler) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	categories, total, err := h.CategoryService.List(params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "category list", map[string]interface{}{
		"categories": categories,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// Popular lists the categories carrying the most live courses.
func (h *CategoryHandler) Popular(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	categories, err := h.CategoryService.Popular(params.Limit)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "popular categories", categories)
}

// Update ...
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid category id", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateCategoryRequest
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

	category, err := h.CategoryService.Update(caller(c), id, req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "category updated", category)
}

// Delete ...
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		h.Helper.SendBadRequest(c, "invalid category id", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.CategoryService.Delete(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "category deleted", h.Helper.EmptyJsonMap())
}
