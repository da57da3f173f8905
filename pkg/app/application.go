package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"flightdb/pkg/config"
	"flightdb/pkg/contracts"
	"flightdb/pkg/middleware"
)

type Application struct {
	cfg            *config.Config
	server         *http.Server
	statusHandler  http.Handler
	metricsHandler http.Handler
}

func NewApplication() *Application {
	return &Application{}
}

// SetApp wires the status routes and the metrics endpoint into one server.
func (a *Application) SetApp(cfg *config.Config, statusHandler contracts.Handler, metricsHandler http.Handler) {
	a.cfg = cfg
	a.setStatusHandler(statusHandler)
	a.setMetricsHandler(metricsHandler)
	a.setAppServer()
}

func (a *Application) setStatusHandler(statusHandler contracts.Handler) {
	router := httprouter.New()
	statusHandler.RegisterRoutes(router)

	var handler http.Handler = router
	handler = middleware.RequestTimeout(a.cfg.RequestTimeout)(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	a.statusHandler = handler
	a.cfg.Log.Info("Status endpoints configured (Recovery + Logging + Timeout)")
}

func (a *Application) setMetricsHandler(metricsHandler http.Handler) {
	a.metricsHandler = middleware.Recovery(a.cfg.Log)(metricsHandler)
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metricsHandler)
	mux.Handle("/", a.statusHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Handler exposes the fully wrapped mux.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
