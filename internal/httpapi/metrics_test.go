package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"bookslib/internal/manager"
)

func TestMetricsLabelByRoutePattern(t *testing.T) {
	h := NewMux(&mockService{})
	opsBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ops/{op}", http.MethodPost, "202"))
	stateBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/state", http.MethodGet, "200"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/ops/checkout", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/state", nil))

	if d := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ops/{op}", http.MethodPost, "202")) - opsBefore; d != 1 {
		t.Fatalf("POST /ops/{op} delta=%v", d)
	}
	if d := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/state", http.MethodGet, "200")) - stateBefore; d != 1 {
		t.Fatalf("GET /state delta=%v", d)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	if !strings.Contains(body, `bookslib_http_requests_total{method="POST",path="/ops/{op}",status="202"}`) {
		t.Fatalf("route pattern series missing from /metrics")
	}
	if strings.Contains(body, `path="/ops/checkout"`) {
		t.Fatalf("raw path leaked into labels")
	}
}

func TestMetricsCountOpRequestsAndRejections(t *testing.T) {
	cases := []struct {
		name      string
		path      string
		err       error
		op        string
		result    string
		rejection string
	}{
		{"accepted", "/ops/add", nil, "add", "accepted", ""},
		{"settled", "/ops/list?wait=1", nil, "list", "settled", ""},
		{"busy", "/ops/return", manager.ErrBusy(manager.OpReturn), "return", "busy", "busy"},
		{"not connected", "/ops/checkout", manager.ErrNotConnected, "checkout", "not_connected", "not_connected"},
		{"unknown op", "/ops/burn", nil, "unknown", "unknown_op", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := testutil.ToFloat64(opRequestsTotal.WithLabelValues(tc.op, tc.result))
			var rejBefore float64
			if tc.rejection != "" {
				rejBefore = testutil.ToFloat64(rejectionsTotal.WithLabelValues(tc.rejection))
			}
			NewMux(&mockService{err: tc.err}).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tc.path, nil))
			if d := testutil.ToFloat64(opRequestsTotal.WithLabelValues(tc.op, tc.result)) - before; d != 1 {
				t.Fatalf("op_requests_total{op=%q,result=%q} delta=%v", tc.op, tc.result, d)
			}
			if tc.rejection != "" {
				if d := testutil.ToFloat64(rejectionsTotal.WithLabelValues(tc.rejection)) - rejBefore; d != 1 {
					t.Fatalf("rejections_total{reason=%q} delta=%v", tc.rejection, d)
				}
			}
		})
	}
}

func TestOpResult(t *testing.T) {
	cases := map[int]string{
		http.StatusOK:                  "settled",
		http.StatusAccepted:            "accepted",
		http.StatusConflict:            "busy",
		http.StatusServiceUnavailable:  "not_connected",
		http.StatusTooManyRequests:     "rate_limit",
		http.StatusNotFound:            "unknown_op",
		http.StatusInternalServerError: "error",
	}
	for status, want := range cases {
		if got := opResult(status); got != want {
			t.Fatalf("opResult(%d)=%q want %q", status, got, want)
		}
	}
}

func TestCountRejectionDefaultsReason(t *testing.T) {
	before := testutil.ToFloat64(rejectionsTotal.WithLabelValues("unspecified"))
	countRejection("")
	if d := testutil.ToFloat64(rejectionsTotal.WithLabelValues("unspecified")) - before; d != 1 {
		t.Fatalf("delta=%v", d)
	}
}
