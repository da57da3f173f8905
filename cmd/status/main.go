package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightdb/internal/bootstrap"
	"flightdb/internal/status"
	"flightdb/pkg/app"
	"flightdb/pkg/config"
)

const ServiceName = "status"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.Log.Info("Starting status service", "database", cfg.MongoDatabaseName)

	store := bootstrap.NewMongoStore(cfg.Client.Database(cfg.MongoDatabaseName))
	checker := status.NewMongoChecker(cfg.Client.Mongo, store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		status.NewCollector(checker, cfg.MetricsTimeout, cfg.Log),
	)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	application := app.NewApplication()
	application.SetApp(cfg, status.NewStatusHandler(checker, cfg.Log), metricsHandler)
	application.Run()
}
