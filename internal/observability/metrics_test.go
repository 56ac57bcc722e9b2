package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.IncEnrichment("roadmap", "ok")
	m.APIInflightInc()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestMetrics_WritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/assessments", "201", 120*time.Millisecond)
	m.ObserveAIRequest("gemini-1.5-flash", "ok", 2*time.Second)
	m.IncAIRetry("gemini-1.5-flash")
	m.IncEnrichment("roadmap", "fallback")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`lp_api_requests_total{method="POST",route="/api/assessments",status="201"} 1.000000`,
		`lp_ai_request_duration_seconds_bucket{model="gemini-1.5-flash",outcome="ok",le="2"} 1`,
		`lp_ai_request_duration_seconds_bucket{model="gemini-1.5-flash",outcome="ok",le="1"} 0`,
		`lp_ai_retries_total{model="gemini-1.5-flash"} 1.000000`,
		`lp_enrichment_total{stage="roadmap",outcome="fallback"} 1.000000`,
		"# TYPE lp_api_inflight_requests gauge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestLabelString_Escapes(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	want := `{a="x\"y",b="unknown"}`
	if got != want {
		t.Fatalf("want=%s got=%s", want, got)
	}
}

func TestParseHeaders(t *testing.T) {
	h := parseHeaders(" api-key = abc , broken, =x ,team=core")
	if len(h) != 2 || h["api-key"] != "abc" || h["team"] != "core" {
		t.Fatalf("unexpected headers: %v", h)
	}
	if parseHeaders("") != nil {
		t.Fatalf("empty input should yield nil")
	}
}
