package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
)

// Body is the uniform error shape; the HTTP status carries the taxonomy.
type Body struct {
	Message string `json:"message"`
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Err writes err as a status-coded JSON error. Unexpected failures are
// reported generically; the cause stays in the request error list for the
// access log.
func Err(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, Body{Message: msg})
}

func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Message: msg})
}
