// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する。
type Collector struct {
	bookings   prometheus.Counter
	smsSent    prometheus.Counter
	smsFailed  prometheus.Counter
	httpStatus *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediconnect_bookings_total",
			Help: "作成された予約の合計数",
		}),
		smsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediconnect_sms_sent_total",
			Help: "プロバイダーに受理されたSMSの合計数",
		}),
		smsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediconnect_sms_failed_total",
			Help: "プロバイダーエラーで失敗したSMSの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediconnect_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.bookings,
		c.smsSent,
		c.smsFailed,
		c.httpStatus,
	)

	return c
}

// RecordBooking は予約作成を記録する。
func (c *Collector) RecordBooking() {
	c.bookings.Inc()
}

// RecordSMSSent はSMS送信成功を記録する。
func (c *Collector) RecordSMSSent() {
	c.smsSent.Inc()
}

// RecordSMSFailed はSMS送信失敗を記録する。
func (c *Collector) RecordSMSFailed() {
	c.smsFailed.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
