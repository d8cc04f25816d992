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

type EventService interface {
	Create(ctx context.Context, userID uint, draft domain.EventDraft) (domain.Event, error)
	Update(ctx context.Context, id uint, draft domain.EventDraft) (domain.Event, error)
	Publish(ctx context.Context, id uint) error
	SoftDelete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	ListInTimeByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error)
	ListByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error)
	ListOutOfTime(ctx context.Context) ([]domain.Event, error)
	ListByUserEmail(ctx context.Context, email string) ([]domain.Event, error)
	ListFavoritedByUser(ctx context.Context, userID uint) ([]domain.Event, error)
	Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Event, error)
	SearchByName(ctx context.Context, fragment string) ([]domain.Event, error)
	CountByStatus(ctx context.Context, status domain.StatusType) (int64, error)
	CountOutOfTime(ctx context.Context) (int64, error)
}

type EventDatesService interface {
	DatesOfEvent(ctx context.Context, eventID uint) ([]domain.EventDate, error)
	UpcomingDatesOfEvent(ctx context.Context, eventID uint) ([]domain.EventDate, error)
}

type EventHandler struct {
	svc   EventService
	dates EventDatesService
}

func NewEventHandler(svc EventService, dates EventDatesService) *EventHandler {
	return &EventHandler{
		svc:   svc,
		dates: dates,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Tags         events
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/create [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
		return
	}

	draft, ok := h.bindDraft(ctx)
	if !ok {
		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), userID, draft)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleCreateEvent", err, 0)
		return
	}

	response.RenderCreated(ctx, "event created", event)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.FindByID(ctx.Request.Context(), eventID)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleGetEvent", err, eventID)
		return
	}

	response.RenderOK(ctx, "event found", event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Param        request   body      request.UpdateEventRequest true "request body"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/update/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, ok := h.bindDraft(ctx)
	if !ok {
		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), eventID, draft)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleUpdateEvent", err, eventID)
		return
	}

	response.RenderOK(ctx, "event updated", event)
}

// HandlePublishEvent godoc
// @Summary      Publish an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/publish/{eventID} [patch]
func (h *EventHandler) HandlePublishEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Publish(ctx.Request.Context(), eventID); err != nil {
		h.renderEventErr(ctx, "v1.HandlePublishEvent", err, eventID)
		return
	}

	response.RenderOK(ctx, "event published", nil)
}

// HandleSoftDeleteEvent godoc
// @Summary      Discard an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/softdelete/{eventID} [delete]
func (h *EventHandler) HandleSoftDeleteEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.SoftDelete(ctx.Request.Context(), eventID); err != nil {
		h.renderEventErr(ctx, "v1.HandleSoftDeleteEvent", err, eventID)
		return
	}

	response.RenderOK(ctx, "event discarded", nil)
}

// HandleHardDeleteEvent godoc
// @Summary      Permanently delete a discarded event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/harddelete/{eventID} [delete]
func (h *EventHandler) HandleHardDeleteEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.HardDelete(ctx.Request.Context(), eventID); err != nil {
		h.renderEventErr(ctx, "v1.HandleHardDeleteEvent", err, eventID)
		return
	}

	response.RenderOK(ctx, "event deleted", nil)
}

// HandleSearchEvents godoc
// @Summary      Search published events
// @Tags         events
// @Produce      json
// @Param        province      query     string  true  "province name"
// @Param        date          query     string  true  "day the event takes place (YYYY-MM-DD)"
// @Param        theme         query     string  false "theme name"
// @Param        municipality  query     string  false "municipality name"
// @Param        max_price     query     number  false "maximum price"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/filters [get]
func (h *EventHandler) HandleSearchEvents(ctx *gin.Context) {
	var req request.SearchEventsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := req.ParsedDate()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	events, err := h.svc.Search(ctx.Request.Context(), domain.SearchFilters{
		ProvinceName:     req.Province,
		Date:             date,
		ThemeName:        req.Theme,
		MunicipalityName: req.Municipality,
		MaxPrice:         req.MaxPrice,
	})
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleSearchEvents", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleSearchEventsByName godoc
// @Summary      Search events by name fragment
// @Tags         events
// @Produce      json
// @Param        name   path      string true "name fragment"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/name/{name} [get]
func (h *EventHandler) HandleSearchEventsByName(ctx *gin.Context) {
	events, err := h.svc.SearchByName(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleSearchEventsByName", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleListInTimeByStatus godoc
// @Summary      List in-time events with a given status
// @Tags         events
// @Produce      json
// @Param        status   path      string true "event status"
// @Success      200      {object}   response.Response
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/intime/{status} [get]
func (h *EventHandler) HandleListInTimeByStatus(ctx *gin.Context) {
	status, err := domain.ParseStatus(ctx.Param("status"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	events, err := h.svc.ListInTimeByStatus(ctx.Request.Context(), status)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleListInTimeByStatus", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleListDiscarded godoc
// @Summary      List discarded events
// @Tags         events
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/discarded [get]
func (h *EventHandler) HandleListDiscarded(ctx *gin.Context) {
	events, err := h.svc.ListByStatus(ctx.Request.Context(), domain.StatusDiscarded)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleListDiscarded", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleListOutOfTime godoc
// @Summary      List events whose dates have all passed
// @Tags         events
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/outtime [get]
func (h *EventHandler) HandleListOutOfTime(ctx *gin.Context) {
	events, err := h.svc.ListOutOfTime(ctx.Request.Context())
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleListOutOfTime", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleCountPending godoc
// @Summary      Count pending events
// @Tags         events
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/count/pending [get]
func (h *EventHandler) HandleCountPending(ctx *gin.Context) {
	h.renderCount(ctx, domain.StatusPending)
}

// HandleCountDiscarded godoc
// @Summary      Count discarded events
// @Tags         events
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/count/discarded [get]
func (h *EventHandler) HandleCountDiscarded(ctx *gin.Context) {
	h.renderCount(ctx, domain.StatusDiscarded)
}

// HandleCountOutOfTime godoc
// @Summary      Count out-of-time events
// @Tags         events
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/count/outtime [get]
func (h *EventHandler) HandleCountOutOfTime(ctx *gin.Context) {
	count, err := h.svc.CountOutOfTime(ctx.Request.Context())
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleCountOutOfTime", err, 0)
		return
	}

	response.RenderOK(ctx, "events counted", count)
}

// HandleListByUserEmail godoc
// @Summary      List the events created by a user
// @Tags         events
// @Produce      json
// @Param        email   path      string true "creator email"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/user/{email} [get]
func (h *EventHandler) HandleListByUserEmail(ctx *gin.Context) {
	events, err := h.svc.ListByUserEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleListByUserEmail", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleListFavoritedOfUser godoc
// @Summary      List the published events a user has bookmarked
// @Tags         events
// @Produce      json
// @Param        userID   path      int true "user ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /events/favorites/user/{userID} [get]
func (h *EventHandler) HandleListFavoritedOfUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	events, err := h.svc.ListFavoritedByUser(ctx.Request.Context(), userID)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleListFavoritedOfUser", err, 0)
		return
	}

	response.RenderOK(ctx, "events found", events)
}

// HandleGetEventDates godoc
// @Summary      List every date of an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/{eventID}/dates [get]
func (h *EventHandler) HandleGetEventDates(ctx *gin.Context) {
	h.renderDates(ctx, h.dates.DatesOfEvent)
}

// HandleGetUpcomingEventDates godoc
// @Summary      List the remaining dates of an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/{eventID}/dates/upcoming [get]
func (h *EventHandler) HandleGetUpcomingEventDates(ctx *gin.Context) {
	h.renderDates(ctx, h.dates.UpcomingDatesOfEvent)
}

func (h *EventHandler) renderDates(ctx *gin.Context, list func(context.Context, uint) ([]domain.EventDate, error)) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, err = h.svc.FindByID(ctx.Request.Context(), eventID); err != nil {
		h.renderEventErr(ctx, "v1.renderDates", err, eventID)
		return
	}

	dates, err := list(ctx.Request.Context(), eventID)
	if err != nil {
		h.renderEventErr(ctx, "v1.renderDates", err, eventID)
		return
	}

	response.RenderOK(ctx, "dates found", dates)
}

func (h *EventHandler) renderCount(ctx *gin.Context, status domain.StatusType) {
	count, err := h.svc.CountByStatus(ctx.Request.Context(), status)
	if err != nil {
		h.renderEventErr(ctx, "v1.renderCount", err, 0)
		return
	}

	response.RenderOK(ctx, "events counted", count)
}

func (h *EventHandler) bindDraft(ctx *gin.Context) (domain.EventDraft, bool) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.EventDraft{}, false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.EventDraft{}, false
	}

	days, err := req.ParsedDates()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.EventDraft{}, false
	}

	return domain.EventDraft{
		Name:             req.Name,
		Summary:          req.Summary,
		Description:      req.Description,
		PlaceName:        req.PlaceName,
		Address:          req.Address,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Image:            req.Image,
		InfoURL:          req.InfoURL,
		IsFree:           req.IsFree,
		Price:            req.Price,
		MunicipalityName: req.Municipality,
		ThemeName:        req.Theme,
		Dates:            days,
	}, true
}

func (h *EventHandler) renderEventErr(ctx *gin.Context, op string, err error, eventID uint) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrMunicipalityNotFound):
		response.RenderErr(ctx, response.ErrUnknownResource(service.ErrMunicipalityNotFound))
	case errors.Is(err, service.ErrThemeNotFound):
		response.RenderErr(ctx, response.ErrUnknownResource(service.ErrThemeNotFound))
	case errors.Is(err, service.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidStatus):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
