package apperror

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Respond writes err as JSON using its Kind, and aborts the request.
// Internal errors are logged and hidden from the client.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)

	var ae *Error
	if !errors.As(err, &ae) || ae.Kind == KindInternal {
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.AbortWithStatusJSON(KindInternal.Status(), gin.H{"error": "internal server error"})
		return
	}

	if len(ae.Fields) > 0 {
		c.AbortWithStatusJSON(ae.Kind.Status(), gin.H{"errors": ae.Fields})
		return
	}
	c.AbortWithStatusJSON(ae.Kind.Status(), gin.H{"error": ae.Error()})
}

// RespondBind is Respond for request binding failures.
func RespondBind(c *gin.Context, err error) {
	slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	Respond(c, FromValidationError(err))
}
