package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpmiddleware "waypoints/internal/delivery/http/middleware"
	"waypoints/internal/delivery/http/validator"
	"waypoints/internal/domain/entity"
	"waypoints/internal/infra/memory"
	"waypoints/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearchUsecase struct {
	cancelled []uuid.UUID
}

func (s *stubSearchUsecase) Search(ctx context.Context, planID uuid.UUID, query string) ([]entity.Place, error) {
	return []entity.Place{}, nil
}

func (s *stubSearchUsecase) CancelSearches(planID uuid.UUID) {
	s.cancelled = append(s.cancelled, planID)
}

func newTestPlanHandler() (*PlanHandler, *stubSearchUsecase) {
	search := &stubSearchUsecase{}
	handler := NewPlanHandler(PlanHandlerParams{
		StopListUC: impl.NewStopListService(memory.NewTripPlanRepository()),
		SearchUC:   search,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return handler, search
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func createdPlanID(t *testing.T, e *echo.Echo, h *PlanHandler) string {
	t.Helper()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/plans", ""), rec)
	require.NoError(t, h.CreatePlan(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)

	return body.Data.ID
}

func TestPlanHandler_CreateAndGetPlan(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()

	planID := createdPlanID(t, e, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/plans/"+planID, ""), rec)
	c.SetPath("/plans/:id")
	c.SetParamNames("id")
	c.SetParamValues(planID)

	require.NoError(t, h.GetPlan(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), planID)
}

func TestPlanHandler_GetPlan_InvalidID(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/plans/not-a-uuid", ""), rec)
	c.SetPath("/plans/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetPlan(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
}

func TestPlanHandler_GetPlan_NotFoundRendered(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()
	errMiddleware := httpmiddleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	unknown := uuid.New().String()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/plans/"+unknown, ""), rec)
	c.SetPath("/plans/:id")
	c.SetParamNames("id")
	c.SetParamValues(unknown)

	err := h.GetPlan(c)
	require.Error(t, err)

	errMiddleware.HandleHTTPError(err, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAN_NOT_FOUND")
}

func TestPlanHandler_AddStop(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()

	planID := createdPlanID(t, e, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/plans/"+planID+"/stops",
		`{"title": "Taipei 101", "longitude": 121.5654, "latitude": 25.033}`), rec)
	c.SetPath("/plans/:id/stops")
	c.SetParamNames("id")
	c.SetParamValues(planID)

	require.NoError(t, h.AddStop(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Taipei 101")
}

func TestPlanHandler_AddStop_MissingTitle(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()

	planID := createdPlanID(t, e, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/plans/"+planID+"/stops",
		`{"longitude": 121.5654, "latitude": 25.033}`), rec)
	c.SetPath("/plans/:id/stops")
	c.SetParamNames("id")
	c.SetParamValues(planID)

	require.NoError(t, h.AddStop(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestPlanHandler_RemoveStop_AbsentSucceeds(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()

	planID := createdPlanID(t, e, h)

	rec := httptest.NewRecorder()
	stopID := uuid.New().String()
	c := e.NewContext(jsonRequest(http.MethodDelete, "/plans/"+planID+"/stops/"+stopID, ""), rec)
	c.SetPath("/plans/:id/stops/:stopID")
	c.SetParamNames("id", "stopID")
	c.SetParamValues(planID, stopID)

	require.NoError(t, h.RemoveStop(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlanHandler_DeletePlan_CancelsSearches(t *testing.T) {
	h, search := newTestPlanHandler()
	e := newEcho()

	planID := createdPlanID(t, e, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodDelete, "/plans/"+planID, ""), rec)
	c.SetPath("/plans/:id")
	c.SetParamNames("id")
	c.SetParamValues(planID)

	require.NoError(t, h.DeletePlan(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, search.cancelled, 1)
	assert.Equal(t, planID, search.cancelled[0].String())
}

func TestPlanHandler_SetOptions(t *testing.T) {
	h, _ := newTestPlanHandler()
	e := newEcho()

	planID := createdPlanID(t, e, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/plans/"+planID+"/options",
		`{"include_current_location": true}`), rec)
	c.SetPath("/plans/:id/options")
	c.SetParamNames("id")
	c.SetParamValues(planID)

	require.NoError(t, h.SetOptions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"include_current_location":true`)
}
