// Package metrics 는 Prometheus 메트릭 수집과 공개를 제공한다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector 는 메트릭 수집 인터페이스.
// 서비스 계층에서 사용한다.
type MetricsCollector interface {
	RecordCakeCreated()
	RecordCakeView(branch string)
	RecordCandleCreated()
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector 는 Prometheus 메트릭을 수집하는 구현체.
type Collector struct {
	cakeCreated    prometheus.Counter
	cakeView       *prometheus.CounterVec
	candleCreated  prometheus.Counter
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector 는 새 Collector 를 생성하고 지정한 레지스트리에 메트릭을 등록한다.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cakeCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "decoratemycake_cake_created_total",
			Help: "생성된 케이크의 총 수",
		}),
		cakeView: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "decoratemycake_cake_view_total",
			Help: "케이크 조회의 분기별 총 수",
		}, []string{"branch"}),
		candleCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "decoratemycake_candle_created_total",
			Help: "생성된 캔들의 총 수",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "decoratemycake_http_status_total",
			Help: "HTTP 상태 코드별 응답 수",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "decoratemycake_request_latency_seconds",
			Help:    "요청 처리 지연 시간(초)",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.cakeCreated,
		c.cakeView,
		c.candleCreated,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordCakeCreated 는 케이크 생성을 기록한다.
func (c *Collector) RecordCakeCreated() {
	c.cakeCreated.Inc()
}

// RecordCakeView 는 케이크 조회를 분기 라벨과 함께 기록한다.
// branch: "birthday", "upcoming", "countdown"
func (c *Collector) RecordCakeView(branch string) {
	c.cakeView.WithLabelValues(branch).Inc()
}

// RecordCandleCreated 는 캔들 생성을 기록한다.
func (c *Collector) RecordCandleCreated() {
	c.candleCreated.Inc()
}

// RecordHTTPStatus 는 HTTP 상태 코드를 기록한다.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency 는 요청 처리 지연 시간을 기록한다.
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler 는 Prometheus 스크레이프용 HTTP 핸들러를 반환한다.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute 는 /metrics 엔드포인트를 제공하는 HTTP 핸들러를 반환한다.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
