package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
	"homeserve/internal/core/auth"
	"homeserve/internal/notify"
	resp "homeserve/internal/transport/http/response"
)

type WSHandler struct {
	hub *notify.Hub
	jwt *auth.JWTer
}

func NewWSHandler(hub *notify.Hub, jwt *auth.JWTer) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt}
}

func (h *WSHandler) Mount(public, _ *gin.RouterGroup) {
	public.GET("/ws", h.connect)
}

// connect authenticates the channel itself with the same credential scheme
// as the REST API. Browsers cannot set headers on websocket upgrades, so a
// token query parameter is accepted as well.
func (h *WSHandler) connect(c *gin.Context) {
	tok := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tok == "" || tok == c.GetHeader("Authorization") {
		tok = c.Query("token")
	}
	if tok == "" {
		resp.Err(c, apperr.Unauthenticated("missing token"))
		return
	}
	claims, err := h.jwt.Parse(tok)
	if err != nil {
		resp.Err(c, apperr.Unauthenticated("invalid token"))
		return
	}
	h.hub.ServeWS(c.Writer, c.Request, claims.UID, claims.Role)
}
