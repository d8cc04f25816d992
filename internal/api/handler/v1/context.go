package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dainadb/improplan/internal/api/middleware"
)

// currentUserID reads the caller's ID stored by the JWT middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	value, ok := ctx.Get(middleware.CtxKeyUserID)
	if !ok {
		return 0, false
	}

	id, ok := value.(uint)

	return id, ok
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}
