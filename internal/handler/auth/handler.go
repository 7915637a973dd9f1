package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/auth"
)

type Handler struct {
	svc auth.AuthServicer
}

func NewHandler(svc auth.AuthServicer) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the account routes. Session and profile routes rely
// on the identity the auth middleware puts on the request context.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/auth")
	{
		routes.POST("/register", h.Register)
		routes.POST("/login", h.Login)
		routes.POST("/logout", h.Logout)
		routes.POST("/reset-password", h.ResetPassword)
		routes.POST("/reset-password/confirm", h.ConfirmReset)
		routes.GET("/session", h.Session)
		routes.GET("/profile", h.Profile)
		routes.PUT("/profile", h.UpdateProfile)
	}
}

func (h *Handler) Register(c *gin.Context) {
	req, ok := handler.BindJSON[model.RegisterRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.svc.Register(c.Request.Context(), req))
}

func (h *Handler) Login(c *gin.Context) {
	req, ok := handler.BindJSON[model.LoginRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.svc.Login(c.Request.Context(), req))
}

func (h *Handler) Logout(c *gin.Context) {
	handler.Respond(c, h.svc.Logout(c.Request.Context()))
}

func (h *Handler) ResetPassword(c *gin.Context) {
	req, ok := handler.BindJSON[model.ResetPasswordRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.svc.RequestPasswordReset(c.Request.Context(), req))
}

func (h *Handler) ConfirmReset(c *gin.Context) {
	req, ok := handler.BindJSON[model.ConfirmResetRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.svc.ConfirmPasswordReset(c.Request.Context(), req))
}

func (h *Handler) Session(c *gin.Context) {
	handler.Respond(c, h.svc.Session(c.Request.Context()))
}

func (h *Handler) Profile(c *gin.Context) {
	handler.Respond(c, h.svc.Profile(c.Request.Context()))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	req, ok := handler.BindJSON[model.UpdateProfileRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.svc.UpdateProfile(c.Request.Context(), req))
}
