package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pti/internal/platform/metrics"
)

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	metrics.Rollups.Inc()
	metrics.InvalidRecords.WithLabelValues("task").Inc()

	path := filepath.Join(t.TempDir(), "textfile", "pti.prom")
	if err := metrics.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "pti_rollups_total") || !strings.Contains(out, `pti_invalid_records_total{kind="task"}`) {
		t.Fatalf("textfile missing collectors:\n%s", out)
	}
}

func TestWriteTextfileDisabled(t *testing.T) {
	t.Parallel()
	if err := metrics.WriteTextfile(""); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
}
