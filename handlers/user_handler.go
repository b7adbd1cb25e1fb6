package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"
)

// UserHandler ...
type UserHandler struct {
	Helper      helper.HTTPHelper
	UserService services.UserService
}

func (h *UserHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id", h.Helper.EmptyJsonMap())
		return uuid.Nil, false
	}
	return id, true
}

// Get ...
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	user, err := h.UserService.Get(caller(c), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "user detail", user)
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	me := caller(c)
	user, err := h.UserService.Get(me, me.ID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "user detail", user)
}

// List ...
func (h *UserHandler) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	params.Normalize()

	users, total, err := h.UserService.List(params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "user list", map[string]interface{}{
		"users":      users,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// Popular lists the top authors by course sales.
func (h *UserHandler) Popular(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	users, err := h.UserService.PopularAuthors(params.Limit)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "popular authors", users)
}

// Update ...
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
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

	user, err := h.UserService.Update(caller(c), id, req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "user updated", user)
}

// Deactivate ...
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.UserService.Deactivate(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "account deactivated", h.Helper.EmptyJsonMap())
}

// PromoteAuthor ...
func (h *UserHandler) PromoteAuthor(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.UserService.PromoteAuthor(caller(c), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "user promoted to author", h.Helper.EmptyJsonMap())
}
