package v1

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dainadb/improplan/internal/api/handler/v1/response"
	"github.com/dainadb/improplan/internal/domain"
)

type RefDataService interface {
	ListThemes(ctx context.Context) ([]domain.Theme, error)
	ListProvinces(ctx context.Context) ([]domain.Province, error)
	ListMunicipalities(ctx context.Context) ([]domain.Municipality, error)
}

type RefDataHandler struct {
	svc RefDataService
}

func NewRefDataHandler(svc RefDataService) *RefDataHandler {
	return &RefDataHandler{
		svc: svc,
	}
}

// HandleListThemes godoc
// @Summary      List every theme
// @Tags         refdata
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Router       /themes [get]
func (h *RefDataHandler) HandleListThemes(ctx *gin.Context) {
	themes, err := h.svc.ListThemes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListThemes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, "themes found", themes)
}

// HandleListProvinces godoc
// @Summary      List every province
// @Tags         refdata
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Router       /provinces [get]
func (h *RefDataHandler) HandleListProvinces(ctx *gin.Context) {
	provinces, err := h.svc.ListProvinces(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListProvinces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, "provinces found", provinces)
}

// HandleListMunicipalities godoc
// @Summary      List every municipality
// @Tags         refdata
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Router       /municipalities [get]
func (h *RefDataHandler) HandleListMunicipalities(ctx *gin.Context) {
	municipalities, err := h.svc.ListMunicipalities(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListMunicipalities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, "municipalities found", municipalities)
}
