package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNurseViews struct {
	gotToday caldate.Date
	err      error
}

func (f *fakeNurseViews) NurseDashboard(ctx context.Context, today caldate.Date) (models.NurseDashboard, error) {
	f.gotToday = today
	return models.NurseDashboard{Today: today, TodayTotal: 3, VitalsPending: 1}, f.err
}

func (f *fakeNurseViews) VitalsQueue(ctx context.Context, today caldate.Date) ([]models.QueueEntry, error) {
	f.gotToday = today
	return []models.QueueEntry{{ID: "a1", Slot: "No. 3", Mode: models.QueueNumber}}, f.err
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, h echo.HandlerFunc, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	require.NoError(t, h(c))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSusterController_NurseDashboard(t *testing.T) {
	views := &fakeNurseViews{}
	sc := NewSusterController(views, nil, time.UTC, zerolog.Nop())

	rec, env := serve(t, sc.GetNurseDashboard, "/api/screening/dashboard?today=2024-05-10")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, caldate.MustParse("2024-05-10"), views.gotToday)

	var dash models.NurseDashboard
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, 3, dash.TodayTotal)
	assert.Equal(t, 1, dash.VitalsPending)
}

func TestSusterController_DefaultsToToday(t *testing.T) {
	views := &fakeNurseViews{}
	loc := time.FixedZone("WIB", 7*3600)
	sc := NewSusterController(views, nil, loc, zerolog.Nop())

	rec, _ := serve(t, sc.GetVitalsQueue, "/api/screening/vitals-queue")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, caldate.Today(loc), views.gotToday)
}

func TestSusterController_VitalsQueue(t *testing.T) {
	sc := NewSusterController(&fakeNurseViews{}, nil, time.UTC, zerolog.Nop())

	_, env := serve(t, sc.GetVitalsQueue, "/api/screening/vitals-queue?today=2024-05-10")

	var queue []models.QueueEntry
	require.NoError(t, json.Unmarshal(env.Data, &queue))
	require.Len(t, queue, 1)
	assert.Equal(t, "No. 3", queue[0].Slot)
}

func TestSusterController_Errors(t *testing.T) {
	sc := NewSusterController(&fakeNurseViews{err: errors.New("upstream down")}, nil, time.UTC, zerolog.Nop())

	rec, env := serve(t, sc.GetNurseDashboard, "/x?today=2024-05-10")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, env.Message, "upstream down")

	rec, _ = serve(t, sc.GetVitalsQueue, "/x?today=10-05-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type recordingPublisher struct {
	events []string
	data   []interface{}
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) error {
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
	return nil
}

func TestSusterController_RefreshVitalsQueuePublishes(t *testing.T) {
	pub := &recordingPublisher{}
	sc := NewSusterController(&fakeNurseViews{}, pub, time.UTC, zerolog.Nop())

	rec, _ := serve(t, sc.RefreshVitalsQueue, "/api/screening/vitals-queue/refresh?today=2024-05-10")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{ws.EventVitalsQueueUpdate}, pub.events)
	queue, ok := pub.data[0].([]models.QueueEntry)
	require.True(t, ok)
	assert.Len(t, queue, 1)
}

func TestSusterController_RefreshErrorDoesNotPublish(t *testing.T) {
	pub := &recordingPublisher{}
	sc := NewSusterController(&fakeNurseViews{err: errors.New("down")}, pub, time.UTC, zerolog.Nop())

	rec, _ := serve(t, sc.RefreshVitalsQueue, "/x?today=2024-05-10")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, pub.events)
}
