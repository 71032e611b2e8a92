package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
	"homeserve/internal/domain"
	"homeserve/internal/service"
	resp "homeserve/internal/transport/http/response"
)

type AuthHandler struct {
	identity *service.IdentityService
}

func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func (h *AuthHandler) Mount(public, authed *gin.RouterGroup) {
	public.POST("/auth/register", h.register)
	public.POST("/auth/login", h.login)
	authed.GET("/auth/me", h.me)
	authed.PATCH("/auth/me", h.updateMe)
}

func (h *AuthHandler) register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	res, err := h.identity.Register(in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	res, err := h.identity.Login(in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) me(c *gin.Context) {
	u, err := h.identity.Current(callerFrom(c).ID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) updateMe(c *gin.Context) {
	var patch domain.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	u, err := h.identity.UpdateProfile(callerFrom(c).ID, patch)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
