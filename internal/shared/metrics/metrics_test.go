package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesCountersAndHistogram(t *testing.T) {
	before := Render()
	if !strings.Contains(before, "# TYPE documents_uploaded_total counter") {
		t.Fatalf("missing counter type line:\n%s", before)
	}
	if !strings.Contains(before, "# TYPE classification_duration_ms histogram") {
		t.Fatalf("missing histogram type line:\n%s", before)
	}

	IncDocumentUploaded()
	IncSearch()
	ObserveClassificationMs(0.3)
	ObserveClassificationMs(7)

	after := Render()
	if !strings.Contains(after, `classification_duration_ms_bucket{le="+Inf"}`) {
		t.Fatalf("missing +Inf bucket:\n%s", after)
	}
	if !strings.Contains(after, "classification_duration_ms_count") {
		t.Fatalf("missing histogram count:\n%s", after)
	}
	if strings.Count(after, "\n") < strings.Count(before, "\n") {
		t.Fatalf("render shrank after observations")
	}
}

func TestObserveNegativeClampedToZero(t *testing.T) {
	ObserveClassificationMs(-5)
	out := Render()
	if !strings.Contains(out, `classification_duration_ms_bucket{le="0.1"}`) {
		t.Fatalf("missing first bucket:\n%s", out)
	}
}
