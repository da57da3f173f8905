package status

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"flightdb/pkg/logger"
)

const namespace = "flightdb"

// Collector pings and verifies the database on every scrape.
type Collector struct {
	checker Checker
	timeout time.Duration
	log     *logger.Logger

	up        *prometheus.Desc
	ready     *prometheus.Desc
	present   *prometheus.Desc
	documents *prometheus.Desc
	missing   *prometheus.Desc
	nonUnique *prometheus.Desc
}

func NewCollector(checker Checker, timeout time.Duration, log *logger.Logger) *Collector {
	database := prometheus.Labels{"database": checker.Database()}
	return &Collector{
		checker: checker,
		timeout: timeout,
		log:     log,
		up: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "up"),
			"Whether the database answered a ping.",
			nil, database,
		),
		ready: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "ready"),
			"Whether every collection and index is present.",
			nil, database,
		),
		present: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "collection", "present"),
			"Whether the collection exists.",
			[]string{"collection"}, database,
		),
		documents: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "collection", "documents"),
			"Number of documents in the collection.",
			[]string{"collection"}, database,
		),
		missing: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "indexes", "missing"),
			"Number of declared indexes absent from the collection.",
			[]string{"collection"}, database,
		),
		nonUnique: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "indexes", "not_unique"),
			"Number of declared unique indexes present without the unique constraint.",
			[]string{"collection"}, database,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	ch <- c.ready
	ch <- c.present
	ch <- c.documents
	ch <- c.missing
	ch <- c.nonUnique
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.checker.Ping(ctx); err != nil {
		c.log.Warn("Metrics ping failed", "error", err)
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)

	report, err := c.checker.Report(ctx)
	if err != nil {
		c.log.Warn("Metrics verification failed", "error", err)
		ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, 0)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, boolToFloat(report.Ready))
	for _, cr := range report.Collections {
		ch <- prometheus.MustNewConstMetric(c.present, prometheus.GaugeValue, boolToFloat(cr.Exists), cr.Name)
		ch <- prometheus.MustNewConstMetric(c.documents, prometheus.GaugeValue, float64(cr.Documents), cr.Name)
		ch <- prometheus.MustNewConstMetric(c.missing, prometheus.GaugeValue, float64(len(cr.MissingIndexes)), cr.Name)
		ch <- prometheus.MustNewConstMetric(c.nonUnique, prometheus.GaugeValue, float64(len(cr.NonUniqueIndexes)), cr.Name)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
