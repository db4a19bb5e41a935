package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kitchen_lab/internal/models"
	"kitchen_lab/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockControls struct {
	res       models.ActionResult
	err       error
	ingestErr error

	calls       []string
	lastChannel string
	lastValue   float64
	lastName    string
	lastMinutes int
}

func (m *mockControls) record(name string) (models.ActionResult, error) {
	m.calls = append(m.calls, name)
	return m.res, m.err
}

func (m *mockControls) Ingest(ctx context.Context, channel string, grams float64) error {
	m.calls = append(m.calls, "ingest")
	m.lastChannel = channel
	m.lastValue = grams
	return m.ingestErr
}
func (m *mockControls) Tare(ctx context.Context, channel string) (models.ActionResult, error) {
	m.lastChannel = channel
	return m.record("tare")
}
func (m *mockControls) TareAll(ctx context.Context) (models.ActionResult, error) {
	return m.record("tare_all")
}
func (m *mockControls) TogglePower(ctx context.Context) (models.ActionResult, error) {
	return m.record("toggle_power")
}
func (m *mockControls) ToggleMute(ctx context.Context) (models.ActionResult, error) {
	return m.record("toggle_mute")
}
func (m *mockControls) SetStandby(ctx context.Context) (models.ActionResult, error) {
	return m.record("set_standby")
}
func (m *mockControls) AdvanceMode(ctx context.Context) (models.ActionResult, error) {
	return m.record("advance_mode")
}
func (m *mockControls) SelectRecipe(ctx context.Context, name string) (models.ActionResult, error) {
	m.lastName = name
	return m.record("select_recipe")
}
func (m *mockControls) SetBase(ctx context.Context) (models.ActionResult, error) {
	return m.record("set_base")
}
func (m *mockControls) AddFood(ctx context.Context, name string) (models.ActionResult, error) {
	m.lastName = name
	return m.record("add_food")
}
func (m *mockControls) ClearLedger(ctx context.Context) (models.ActionResult, error) {
	return m.record("clear_ledger")
}
func (m *mockControls) StartCountUp(ctx context.Context) (models.ActionResult, error) {
	return m.record("count_up")
}
func (m *mockControls) StartCountdown(ctx context.Context, minutes int) (models.ActionResult, error) {
	m.lastMinutes = minutes
	return m.record("countdown")
}
func (m *mockControls) PauseTimer(ctx context.Context) (models.ActionResult, error) {
	return m.record("pause")
}
func (m *mockControls) ResumeTimer(ctx context.Context) (models.ActionResult, error) {
	return m.record("resume")
}
func (m *mockControls) ResetTimer(ctx context.Context) (models.ActionResult, error) {
	return m.record("reset")
}
func (m *mockControls) ToggleTimerMenu(ctx context.Context) (models.ActionResult, error) {
	return m.record("timer_menu")
}

type mockMonitoring struct {
	state models.ApplianceState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.ApplianceState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp       []models.Notification
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Notification, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockCatalog struct {
	view models.CatalogView
	err  error
}

func (m *mockCatalog) GetCatalog(ctx context.Context) (models.CatalogView, error) {
	return m.view, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

// localRequest builds a request that appears to come from the device itself.
func localRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "127.0.0.1:5555"
	return req
}

func serve(t *testing.T, r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
