package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"flightdb/pkg/client"
	"flightdb/pkg/config"
	"flightdb/pkg/logger"
	"flightdb/pkg/middleware"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	router.GET("/panic", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		panic("handler bug")
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		RequestTimeout:  time.Second,
		Log:             logger.Discard(),
		Client:          client.NewClient(),
	}
}

func TestApplication_Routes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("flightdb_up 1\n"))
	})

	a := NewApplication()
	a.SetApp(testConfig(), pingHandler{}, metrics)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{path: "/health", wantStatus: http.StatusOK},
		{path: "/metrics", wantStatus: http.StatusOK},
		{path: "/panic", wantStatus: http.StatusInternalServerError},
		{path: "/missing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestApplication_StatusRoutesCarryRequestID(t *testing.T) {
	a := NewApplication()
	a.SetApp(testConfig(), pingHandler{}, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestApplication_ServerSettings(t *testing.T) {
	cfg := testConfig()
	cfg.Port = "9090"

	a := NewApplication()
	a.SetApp(cfg, pingHandler{}, http.NotFoundHandler())

	assert.Equal(t, ":9090", a.server.Addr)
	assert.Equal(t, time.Second, a.server.ReadTimeout)
}
