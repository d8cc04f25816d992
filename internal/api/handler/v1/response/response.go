// Package response defines the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the success envelope. Every endpoint wraps its payload in it so
// clients can rely on one shape.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RenderOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RenderCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}
