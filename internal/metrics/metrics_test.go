package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/api/v1/alerts/12":         "/api/v1/alerts/{id}",
		"/api/v1/alerts/12/resolve": "/api/v1/alerts/{id}/resolve",
		"/api/v1/aquariums":         "/api/v1/aquariums",
		"/health":                   "/health",
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(SchedulerCycles.WithLabelValues("skipped"))
	IncSchedulerCycle("skipped")
	if got := testutil.ToFloat64(SchedulerCycles.WithLabelValues("skipped")); got != before+1 {
		t.Fatalf("skipped cycles: want %v, got %v", before+1, got)
	}

	before = testutil.ToFloat64(DangerAlerts)
	IncDangerAlert()
	if got := testutil.ToFloat64(DangerAlerts); got != before+1 {
		t.Fatalf("danger alerts: want %v, got %v", before+1, got)
	}
}
