package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error envelope. StatusCode travels in the HTTP status line, not
// the body.
type Err struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

func ErrUnauthorized(message string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func ErrPermissionDenied() *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Message:    "permission denied",
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%v with %v %v not found", resource, key, value),
	}
}

// ErrUnknownResource maps a lookup failure onto a 404 carrying the sentinel
// text.
func ErrUnknownResource(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Message:    err.Error(),
	}
}

// ErrInternalServerError logs the cause and hides it from the client.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    "something went wrong",
	}
}
