package handler

import (
	"github.com/gin-gonic/gin"

	"homeserve/internal/service"
	mdw "homeserve/internal/transport/http/middleware"
)

func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{
		ID:   c.GetString(mdw.KeyUserID),
		Role: c.GetString(mdw.KeyRole),
	}
}
