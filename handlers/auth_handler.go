package handlers

import (
	"eduone-core/helper"
	"eduone-core/models"
	"eduone-core/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

// AuthHandler ...
type AuthHandler struct {
	Helper      helper.HTTPHelper
	AuthService services.AuthService
}

// Register ...
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
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

	res, err := h.AuthService.Register(req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendCreated(c, "account registered", res)
}

// Login ...
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
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

	res, err := h.AuthService.Login(req)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "logged in", res)
}

// Verify confirms an account from the emailed link.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.Helper.SendBadRequest(c, "token is required", h.Helper.EmptyJsonMap())
		return
	}
	if err := h.AuthService.Verify(token); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "account verified", h.Helper.EmptyJsonMap())
}

// PreRegister stores an email for the launch notification list.
func (h *AuthHandler) PreRegister(c *gin.Context) {
	var req models.PreRegisterRequest
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
	if err := h.AuthService.PreRegister(req.Email); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "registration noted", h.Helper.EmptyJsonMap())
}

// ListPreRegistrations ...
func (h *AuthHandler) ListPreRegistrations(c *gin.Context) {
	entries, err := h.AuthService.ListPreRegistrations()
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "pre-registration list", entries)
}
