package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dainadb/improplan/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200 {object} response.Response
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	response.RenderOK(ctx, "service is up", nil)
}
