package respond

import (
	"net/http"

	"folkify/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// OK writes a success payload. Keys in body are merged next to "success".
func OK(c *gin.Context, status int, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(status, out)
}

// Fail maps err to its public status and message and aborts the request.
func Fail(c *gin.Context, err error) {
	status, message := apperr.PublicMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// FailWith aborts with an explicit status and message.
func FailWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// BadRequest reports a request that could not be bound.
func BadRequest(c *gin.Context, err error) {
	FailWith(c, http.StatusBadRequest, err.Error())
}
