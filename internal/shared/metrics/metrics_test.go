package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesIngestCounters(t *testing.T) {
	IncIngestAccepted()
	IncIngestRejected()
	IncIngestPartialLink()
	ObserveIngestDurationMs(42)

	out := Render()
	for _, want := range []string{
		"ingest_accepted_total",
		"ingest_rejected_total",
		"ingest_partial_link_total",
		"ingest_duration_ms_bucket{le=\"+Inf\"}",
		"ingest_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered metrics:\n%s", want, out)
		}
	}
}

func TestObserveNegativeClampedToZero(t *testing.T) {
	before := ingestDuration.Snapshot().count
	ObserveIngestDurationMs(-5)
	after := ingestDuration.Snapshot()
	if after.count != before+1 {
		t.Fatalf("expected count %d, got %d", before+1, after.count)
	}
}
