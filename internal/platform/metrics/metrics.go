// Package metrics holds the process-wide Prometheus collectors. The CLI has no
// HTTP listener, so they are flushed to a node-exporter textfile on exit.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rollups counts progress recomputations per domain.
var Rollups = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pti",
	Name:      "rollups_total",
	Help:      "Total domain progress rollups.",
})

// InvalidRecords counts tasks and activities skipped for bad timing fields.
var InvalidRecords = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pti",
	Name:      "invalid_records_total",
	Help:      "Records skipped because of missing or unparseable timing fields.",
}, []string{"kind"})

// CacheLookups counts cache reads by key and hit/miss/stale result.
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pti",
	Name:      "cache_lookups_total",
	Help:      "Cache lookups by key and result.",
}, []string{"key", "result"})

// ActivitiesLogged counts created activities by source (manual, task, timer).
var ActivitiesLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pti",
	Name:      "activities_logged_total",
	Help:      "Activities created by source.",
}, []string{"source"})

// ReportsGenerated counts category reports computed from the store.
var ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pti",
	Name:      "reports_generated_total",
	Help:      "Category reports generated from activity records.",
})

// WriteTextfile writes the default registry to path in text exposition format.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
