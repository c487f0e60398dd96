package handlers

import (
	"net/http"

	"filemanager/internal/models"

	"github.com/gin-gonic/gin"
)

// respond writes the uniform envelope; the HTTP status mirrors the
// envelope code.
func respond(c *gin.Context, code int, message string, data any) {
	c.JSON(code, models.Response{Code: code, Message: message, Data: data})
}

// Root is a liveness ping.
func Root(c *gin.Context) {
	respond(c, http.StatusOK, "Hello", nil)
}
