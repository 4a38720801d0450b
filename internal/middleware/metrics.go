package middleware

import (
	"net/http"
	"time"
)

// HTTPMetricsRecorder 는 HTTP 계층 메트릭 기록 인터페이스.
// metrics.Collector 가 구현한다.
type HTTPMetricsRecorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// NewHTTPMetricsMiddleware 는 응답 상태 코드와 처리 지연 시간을 기록하는 미들웨어를 반환한다.
func NewHTTPMetricsMiddleware(recorder HTTPMetricsRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			recorder.RecordHTTPStatus(rec.statusCode)
			recorder.RecordRequestLatency(time.Since(start))
		})
	}
}
