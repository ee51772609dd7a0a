package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := NewMetrics("roadto100k-test")
	m.ObserveRequest(http.MethodGet, "/v1/leaderboard", http.StatusOK, 25*time.Millisecond)
	m.EntryRecorded("accepted")
	m.EntryRecorded("rejected")
	m.ChallengeAccepted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"roadto100k_http_request_duration_seconds_count",
		`roadto100k_profit_entries_total{outcome="accepted",service="roadto100k-test"} 1`,
		`roadto100k_challenge_acceptances_total{service="roadto100k-test"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Second)
	m.EntryRecorded("accepted")
	m.ChallengeAccepted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for nil metrics handler, got %d", rec.Code)
	}
}
