package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"factura/internal/domain/auth"
	"factura/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	*BaseHandler
	svc *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(base *BaseHandler, svc *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, svc: svc}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, token, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.UserInfo{ID: u.ID.String(), Name: u.Name, Email: u.Email},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AuthResponse{
		Token: token,
		User:  dto.UserInfo{ID: u.ID.String(), Name: u.Name, Email: u.Email},
	})
}
