package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dainadb/improplan/internal/api/middleware"
	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/service"
)

// stubEventService returns canned results and records nothing.
type stubEventService struct {
	event domain.Event
	err   error
}

func (s *stubEventService) Create(ctx context.Context, userID uint, draft domain.EventDraft) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) Update(ctx context.Context, id uint, draft domain.EventDraft) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) Publish(ctx context.Context, id uint) error    { return s.err }
func (s *stubEventService) SoftDelete(ctx context.Context, id uint) error { return s.err }
func (s *stubEventService) HardDelete(ctx context.Context, id uint) error { return s.err }

func (s *stubEventService) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) ListInTimeByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) ListByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) ListOutOfTime(ctx context.Context) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) ListByUserEmail(ctx context.Context, email string) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) ListFavoritedByUser(ctx context.Context, userID uint) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) SearchByName(ctx context.Context, fragment string) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) CountByStatus(ctx context.Context, status domain.StatusType) (int64, error) {
	return 1, s.err
}

func (s *stubEventService) CountOutOfTime(ctx context.Context) (int64, error) { return 1, s.err }

type stubDatesService struct {
	dates []domain.EventDate
}

func (s *stubDatesService) DatesOfEvent(ctx context.Context, eventID uint) ([]domain.EventDate, error) {
	return s.dates, nil
}

func (s *stubDatesService) UpcomingDatesOfEvent(ctx context.Context, eventID uint) ([]domain.EventDate, error) {
	return s.dates, nil
}

// asUser injects the identity the JWT middleware would have set.
func asUser(userID uint, roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, userID)
		ctx.Set(middleware.CtxKeyUserEmail, "ana@example.com")
		ctx.Set(middleware.CtxKeyUserRoles, roles)
		ctx.Next()
	}
}

func newEventRouter(svc EventService, identity ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewEventHandler(svc, &stubDatesService{})

	router := gin.New()
	group := router.Group("/api", identity...)
	group.GET("/events/:eventID", handler.HandleGetEvent)
	group.GET("/events/filters", handler.HandleSearchEvents)
	group.POST("/events/create", handler.HandleCreateEvent)
	group.PUT("/events/update/:eventID", handler.HandleUpdateEvent)
	group.DELETE("/events/softdelete/:eventID", handler.HandleSoftDeleteEvent)

	return router
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

const createEventBody = `{
	"name": "Jazz in the Park",
	"municipality": "Oviedo",
	"theme": "Music",
	"is_free": true,
	"dates": ["2100-06-01"]
}`

func TestHandleGetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router := newEventRouter(&stubEventService{event: domain.Event{ID: 1, Name: "Jazz in the Park"}})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events/1", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
	})

	t.Run("missing", func(t *testing.T) {
		router := newEventRouter(&stubEventService{err: service.ErrEventNotFound})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events/999", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		router := newEventRouter(&stubEventService{})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events/abc", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandleCreateEvent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := newEventRouter(&stubEventService{event: domain.Event{ID: 1}}, asUser(42, "ROLE_USER"))

		req := httptest.NewRequest(http.MethodPost, "/api/events/create", strings.NewReader(createEventBody))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		router := newEventRouter(&stubEventService{})

		req := httptest.NewRequest(http.MethodPost, "/api/events/create", strings.NewReader(createEventBody))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		router := newEventRouter(&stubEventService{}, asUser(42, "ROLE_USER"))

		req := httptest.NewRequest(http.MethodPost, "/api/events/create", strings.NewReader(`{"name": ""}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		router := newEventRouter(&stubEventService{}, asUser(42, "ROLE_USER"))

		body := strings.Replace(createEventBody, "2100-06-01", "junio uno", 1)
		req := httptest.NewRequest(http.MethodPost, "/api/events/create", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown municipality", func(t *testing.T) {
		router := newEventRouter(&stubEventService{err: service.ErrMunicipalityNotFound}, asUser(42, "ROLE_USER"))

		req := httptest.NewRequest(http.MethodPost, "/api/events/create", strings.NewReader(createEventBody))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("unknown theme", func(t *testing.T) {
		router := newEventRouter(&stubEventService{err: service.ErrThemeNotFound}, asUser(42, "ROLE_USER"))

		req := httptest.NewRequest(http.MethodPost, "/api/events/create", strings.NewReader(createEventBody))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandleUpdateEvent(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		router := newEventRouter(&stubEventService{event: domain.Event{ID: 1, UserID: 42}}, asUser(7, "ROLE_USER", "ROLE_ADMIN"))

		req := httptest.NewRequest(http.MethodPut, "/api/events/update/1", strings.NewReader(createEventBody))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing event", func(t *testing.T) {
		router := newEventRouter(&stubEventService{err: service.ErrEventNotFound}, asUser(7, "ROLE_USER", "ROLE_ADMIN"))

		req := httptest.NewRequest(http.MethodPut, "/api/events/update/999", strings.NewReader(createEventBody))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		router := newEventRouter(&stubEventService{}, asUser(7, "ROLE_USER", "ROLE_ADMIN"))

		req := httptest.NewRequest(http.MethodPut, "/api/events/update/1", strings.NewReader(`{"name": ""}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandleSearchEvents(t *testing.T) {
	t.Run("province required", func(t *testing.T) {
		router := newEventRouter(&stubEventService{})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events/filters?date=2100-06-01", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("date required", func(t *testing.T) {
		router := newEventRouter(&stubEventService{})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events/filters?province=Asturias", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("results wrapped in envelope", func(t *testing.T) {
		router := newEventRouter(&stubEventService{event: domain.Event{ID: 1, Status: domain.StatusPublished}})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events/filters?province=Asturias&date=2100-06-01&max_price=10", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
		assert.NotNil(t, body["data"])
	})
}
