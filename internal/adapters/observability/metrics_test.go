package observability_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("backend", "list", 200, 3*time.Millisecond)
	observability.ObserveFetch("collection", "ready", 40*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"portal_http_requests_total",
		"portal_external_requests_total",
		"portal_fetch_outcomes_total",
		"portal_controller_fetch_duration_seconds_bucket",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestStartFetch_TracksInFlightAndLatency(t *testing.T) {
	reg := observability.InitRegistry()
	scrape := func() string {
		rr := httptest.NewRecorder()
		observability.MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
		return rr.Body.String()
	}

	done := observability.StartFetch("timing-test")
	if out := scrape(); !strings.Contains(out, `portal_controller_fetches_in_flight{controller="timing-test"} 1`) {
		t.Fatalf("expected one fetch in flight:\n%s", out)
	}
	done("stale")
	out := scrape()
	for _, line := range []string{
		`portal_controller_fetches_in_flight{controller="timing-test"} 0`,
		`portal_fetch_outcomes_total{controller="timing-test",outcome="stale"} 1`,
		`portal_controller_fetch_duration_seconds_count{controller="timing-test",outcome="stale"} 1`,
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q", line)
		}
	}
}

func TestLabelErr(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{&domain.HTTPError{Status: 502}, "http_502"},
		{fmt.Errorf("decode: %w", domain.ErrParse), "parse"},
		{fmt.Errorf("dial: %w", domain.ErrNetwork), "network"},
	}
	for _, c := range cases {
		if got := observability.LabelErr(c.err); got != c.want {
			t.Fatalf("LabelErr(%v) = %q want %q", c.err, got, c.want)
		}
	}
}

func TestNewLogger_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewLogger("prod", &buf)
	l.Info().Str("k", "v").Msg("hello")
	if !strings.Contains(buf.String(), `"message":"hello"`) || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Fatalf("expected JSON line, got %q", buf.String())
	}
}

func TestNewLogger_ConsoleInDev(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewLogger("dev", &buf)
	l.Info().Msg("hello")
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("dev logger should not emit JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("missing message: %q", buf.String())
	}
}
