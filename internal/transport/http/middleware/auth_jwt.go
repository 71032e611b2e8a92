package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
	"homeserve/internal/core/auth"
	resp "homeserve/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT validates the bearer token and stashes the principal in the
// context. A non-empty requireRole additionally gates the whole group.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Err(c, apperr.Unauthenticated("missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Err(c, apperr.Unauthenticated("invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Err(c, apperr.Forbidden("forbidden"))
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
