package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
	"homeserve/internal/domain"
	resp "homeserve/internal/transport/http/response"
)

type AdminHandler struct {
	users domain.UserRepository
}

func NewAdminHandler(users domain.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	g.GET("/users", h.listUsers)
	g.POST("/users/:id/ban", h.banUser)
}

type userPage struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	offset := atoiDefault(c.Query("offset"), 0)
	limit := atoiDefault(c.Query("limit"), 20)
	if limit > 100 {
		limit = 20
	}
	users, total, err := h.users.List(c.Query("q"), offset, limit)
	if err != nil {
		resp.Err(c, apperr.Internal("list users", err))
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, userPage{Total: total, Items: users})
}

func (h *AdminHandler) banUser(c *gin.Context) {
	id := c.Param("id")
	u, err := h.users.FindByID(id)
	if err != nil {
		resp.Err(c, apperr.Internal("lookup user", err))
		return
	}
	if u == nil {
		resp.Err(c, apperr.NotFound("user not found"))
		return
	}
	if err := h.users.SoftDelete(id); err != nil {
		resp.Err(c, apperr.Internal("ban user", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
