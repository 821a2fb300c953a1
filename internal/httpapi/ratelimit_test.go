package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClientLimiter_PerKeyBurst(t *testing.T) {
	l := newClientLimiter(1, 2)
	now := time.Now()
	if !l.allow("ip:a", now) || !l.allow("ip:a", now) {
		t.Fatalf("burst of 2 should be allowed")
	}
	if l.allow("ip:a", now) {
		t.Fatalf("third request within the same instant should be limited")
	}
	if !l.allow("ip:b", now) {
		t.Fatalf("keys must not share buckets")
	}
	if !l.allow("ip:a", now.Add(time.Second)) {
		t.Fatalf("token should refill after a second")
	}
}

func TestClientLimiter_NilAllowsAll(t *testing.T) {
	var l *clientLimiter
	if newClientLimiter(0, 5) != nil {
		t.Fatalf("zero rps should disable limiting")
	}
	for i := 0; i < 100; i++ {
		if !l.allow("k", time.Now()) {
			t.Fatalf("nil limiter must allow")
		}
	}
}

func TestClientKey(t *testing.T) {
	cases := map[string]string{
		"10.0.0.1:5555": "ip:10.0.0.1",
		"10.0.0.2":      "ip:10.0.0.2",
		"":              "ip:unknown",
		":80":           "ip:unknown",
	}
	for remote, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remote
		if got := clientKey(r); got != want {
			t.Fatalf("clientKey(%q)=%q want %q", remote, got, want)
		}
	}
}

func TestRateLimitOnMutatingRoutes(t *testing.T) {
	SetRateLimit(0.001, 1)
	defer SetRateLimit(0, 0)
	h := NewMux(&mockService{})
	before := testutil.ToFloat64(rejectionsTotal.WithLabelValues("rate_limit"))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ops/list", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusAccepted || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes=%v", codes)
	}
	if got := testutil.ToFloat64(rejectionsTotal.WithLabelValues("rate_limit")) - before; got != 1 {
		t.Fatalf("rate_limit rejections delta=%v", got)
	}
	// reads are never limited
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET /state limited: %d", w.Code)
		}
	}
}
