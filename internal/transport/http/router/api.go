package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeserve/internal/core/auth"
	mdw "homeserve/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, allowOrigins []string, ws Module, mods ...Module) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		corsMiddleware(allowOrigins),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// Request/response endpoints get the protective limits; the socket
	// endpoint lives outside them because its connections are long-lived.
	api := r.Group("/api/v1",
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
	)
	authed := api.Group("", mdw.AuthJWT(jwter, ""))
	MountAll(api, authed, mods...)

	if ws != nil {
		stream := r.Group("/api/v1")
		ws.Mount(stream, stream)
	}
	return r
}

func corsMiddleware(allowOrigins []string) gin.HandlerFunc {
	if len(allowOrigins) == 0 {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowOrigins
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
