package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/lead-intake/internal/api"
	"github.com/jonesrussell/lead-intake/internal/auth"
	"github.com/jonesrussell/lead-intake/internal/config"
	"github.com/jonesrussell/lead-intake/internal/handlers"
	"github.com/jonesrussell/lead-intake/internal/intake"
	"github.com/jonesrussell/lead-intake/internal/ledger"
	"github.com/jonesrussell/lead-intake/internal/metrics"
	"github.com/jonesrussell/lead-intake/internal/models"
	"github.com/jonesrussell/lead-intake/internal/testhelpers"
)

type stubIntakeService struct{}

func (stubIntakeService) Process(context.Context, *models.LeadIntakeRequest) (*intake.Result, error) {
	return nil, errors.New("not under test")
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "", errors.New("not under test")
}

func newTestRouter(apiKey string) http.Handler {
	cfg := &config.Config{APIKey: apiKey}
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}

	log := testhelpers.NewTestLogger()
	l := ledger.NewNoopLedger(log)

	return api.NewRouter(cfg, api.Handlers{
		Lead:       handlers.NewLeadHandler(stubIntakeService{}, l, log),
		Transcribe: handlers.NewTranscribeHandler(stubTranscriber{}, log),
	}, metrics.New(), "test", log)
}

func TestRouter_OpenRoutes(t *testing.T) {
	router := newTestRouter("secret")

	for _, path := range []string{"/health", "/", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"service":"lead-intake"`)
}

func TestRouter_GatedRoutesRequireKey(t *testing.T) {
	router := newTestRouter("secret")

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/lead-intake"},
		{http.MethodPost, "/transcribe"},
		{http.MethodGet, "/leads/LEAD-AB12CD34"},
	}

	for _, route := range gated {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthorized")
		})
	}
}

func TestRouter_ValidKeyReachesHandler(t *testing.T) {
	router := newTestRouter("secret")

	// An empty body fails binding, proving the request passed the gate.
	req := httptest.NewRequest(http.MethodPost, "/lead-intake", nil)
	req.Header.Set(auth.HeaderAPIKey, "secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_NoKeyConfigured(t *testing.T) {
	router := newTestRouter("")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/lead-intake", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
