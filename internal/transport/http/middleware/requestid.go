package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeserve/pkg/utils"
)

const KeyRequestID = "X-Request-ID"

// RequestID tags every request with a correlation id, honoring a valid
// one the client already sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if _, err := uuid.Parse(rid); err != nil {
			rid = utils.NewID()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}
