package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelinfinity/pkg/config"
	"hotelinfinity/pkg/contracts"
	httputil "hotelinfinity/pkg/http"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/metrics"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1 << 20,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		ShutdownTimeout:    time.Second,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		Log:                logger.Discard(),
	}
}

func newTestApp(t *testing.T) (*Application, *metrics.Metrics, *int) {
	t.Helper()
	m := metrics.New()
	a := NewApplication(testConfig(), m)

	calls := 0
	health := contracts.HandlerFunc(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})
	api := contracts.HandlerFunc(func(r *httprouter.Router) {
		r.GET("/api/v1/rooms/:id", func(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
			_ = httputil.WriteSuccess(w, map[string]string{"id": ps.ByName("id")})
		})
		r.Handler(http.MethodPost, "/api/v1/bookings", a.Idempotent()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			_ = httputil.WriteCreated(w, map[string]int{"call": calls})
		})))
	})
	a.SetApp(health, api)

	stopped := false
	a.OnShutdown(func(context.Context) { stopped = true })
	t.Cleanup(func() {
		a.Stop(context.Background())
		assert.True(t, stopped)
	})
	return a, m, &calls
}

func TestHandler_Routes(t *testing.T) {
	a, m, _ := newTestApp(t)
	h := a.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/rooms/:id", "200")))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestHandler_IdempotentBooking(t *testing.T) {
	a, _, calls := newTestApp(t)
	h := a.Handler()

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(IdempotencyHeader, "booking-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	first := send()
	second := send()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestRouteLabel(t *testing.T) {
	router := httprouter.New()
	noop := func(http.ResponseWriter, *http.Request, httprouter.Params) {}
	router.GET("/api/v1/rooms", noop)
	router.PATCH("/api/v1/admin/bookings/:id/status", noop)

	label := RouteLabel(router)
	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/v1/rooms", "/api/v1/rooms"},
		{http.MethodPatch, "/api/v1/admin/bookings/abc-123/status", "/api/v1/admin/bookings/:id/status"},
		{http.MethodGet, "/api/v1/unknown", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, label(httptest.NewRequest(tt.method, tt.path, nil)), tt.path)
	}
}

func TestRateLimited_UsesTrustedProxies(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	a := NewApplication(cfg, metrics.New())
	t.Cleanup(func() { a.Stop(context.Background()) })

	h := a.RateLimited()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	send := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.4:4000", "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.4:4000", "203.0.113.2"), "direct clients cannot pick their bucket")

	assert.Equal(t, http.StatusOK, send("10.0.0.2:4000", "203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.2:4000", "203.0.113.7"))
}
