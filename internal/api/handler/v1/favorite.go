package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dainadb/improplan/internal/api/handler/v1/request"
	"github.com/dainadb/improplan/internal/api/handler/v1/response"
	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/service"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, eventID uint) (domain.Favorite, error)
	Remove(ctx context.Context, userID, eventID uint) error
	ListByUser(ctx context.Context, userID uint) ([]domain.Favorite, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type FavoriteHandler struct {
	svc FavoriteService
}

func NewFavoriteHandler(svc FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		svc: svc,
	}
}

// HandleAddFavorite godoc
// @Summary      Bookmark an event
// @Tags         favorites
// @Produce      json
// @Param        request   body      request.AddFavoriteRequest true "request body"
// @Success      201      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /favorites/add [post]
func (h *FavoriteHandler) HandleAddFavorite(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
		return
	}

	var req request.AddFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	favorite, err := h.svc.Add(ctx.Request.Context(), userID, req.EventID)
	if err != nil {
		h.renderFavoriteErr(ctx, "v1.HandleAddFavorite", err, req.EventID)
		return
	}

	response.RenderCreated(ctx, "favorite added", favorite)
}

// HandleRemoveFavorite godoc
// @Summary      Remove a bookmark
// @Tags         favorites
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /favorites/delete/{eventID} [delete]
func (h *FavoriteHandler) HandleRemoveFavorite(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Remove(ctx.Request.Context(), userID, eventID); err != nil {
		h.renderFavoriteErr(ctx, "v1.HandleRemoveFavorite", err, eventID)
		return
	}

	response.RenderOK(ctx, "favorite removed", nil)
}

// HandleMyFavorites godoc
// @Summary      List the caller's bookmarks
// @Tags         favorites
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /favorites/my-favorites [get]
func (h *FavoriteHandler) HandleMyFavorites(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
		return
	}

	favorites, err := h.svc.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		h.renderFavoriteErr(ctx, "v1.HandleMyFavorites", err, 0)
		return
	}

	response.RenderOK(ctx, "favorites found", favorites)
}

// HandleCountFavorites godoc
// @Summary      Count the bookmarks of an event
// @Tags         favorites
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /favorites/count/{eventID} [get]
func (h *FavoriteHandler) HandleCountFavorites(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	count, err := h.svc.CountByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		h.renderFavoriteErr(ctx, "v1.HandleCountFavorites", err, eventID)
		return
	}

	response.RenderOK(ctx, "favorites counted", count)
}

func (h *FavoriteHandler) renderFavoriteErr(ctx *gin.Context, op string, err error, eventID uint) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrUnknownResource(service.ErrUserNotFound))
	case errors.Is(err, service.ErrFavoriteNotFound):
		response.RenderErr(ctx, response.ErrNotFound("favorite", "event ID", eventID))
	case errors.Is(err, service.ErrFavoriteExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrFavoriteExists))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
