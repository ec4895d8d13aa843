package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue はレジストリから指定メトリクスのカウンタ値を取得する。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			var total float64
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func TestRecordBooking_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordBooking()
	c.RecordBooking()

	if v := counterValue(t, reg, "mediconnect_bookings_total"); v != 2 {
		t.Errorf("bookings_total = %v, want 2", v)
	}
}

func TestRecordSMS_SentAndFailedAreIndependent(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSMSSent()
	c.RecordSMSSent()
	c.RecordSMSFailed()

	if v := counterValue(t, reg, "mediconnect_sms_sent_total"); v != 2 {
		t.Errorf("sms_sent_total = %v, want 2", v)
	}
	if v := counterValue(t, reg, "mediconnect_sms_failed_total"); v != 1 {
		t.Errorf("sms_failed_total = %v, want 1", v)
	}
}

func TestRecordHTTPStatus_LabelsByStatusCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(401)

	if v := counterValue(t, reg, "mediconnect_http_status_total"); v != 3 {
		t.Errorf("http_status_total = %v, want 3", v)
	}
}

func TestHandler_ServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordBooking()

	handler := Handler(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "mediconnect_bookings_total") {
		t.Error("response should contain mediconnect_bookings_total metric")
	}
}
