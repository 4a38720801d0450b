package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:       rate.Limit(1000),
		GeneralBurst:      2,
		CandleCreateRate:  rate.Limit(1000),
		CandleCreateBurst: 1,
		CleanupInterval:   time.Hour,
	}
}

func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:       rate.Limit(0.001), // 보충이 사실상 없도록
		GeneralBurst:      2,
		CandleCreateRate:  rate.Limit(1),
		CandleCreateBurst: 1,
		CleanupInterval:   time.Hour,
	})
	defer rl.Stop()

	mw := rl.GeneralMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/cake/view", nil)
		req = req.WithContext(ContextWithMember(req.Context(), "member-1", "a@b.com"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	// 버스트 소진 후에는 429
	req := httptest.NewRequest(http.MethodGet, "/cake/view", nil)
	req = req.WithContext(ContextWithMember(req.Context(), "member-1", "a@b.com"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After 헤더가 설정되어야 함")
	}
}

func TestGeneralMiddleware_NoMemberInContext_Returns401(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	mw := rl.GeneralMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/cake/view", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestCandleCreateMiddleware_IndependentFromGeneral(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:       rate.Limit(1000),
		GeneralBurst:      100,
		CandleCreateRate:  rate.Limit(0.001),
		CandleCreateBurst: 1,
		CleanupInterval:   time.Hour,
	})
	defer rl.Stop()

	candleMw := rl.CandleCreateMiddleware()
	candleHandler := candleMw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// 캔들 생성 1회는 허용
	req := httptest.NewRequest(http.MethodPost, "/candle/create", nil)
	req = req.WithContext(ContextWithMember(req.Context(), "member-1", "a@b.com"))
	w := httptest.NewRecorder()
	candleHandler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	// 캔들 생성 버스트 소진 후 429
	req = httptest.NewRequest(http.MethodPost, "/candle/create", nil)
	req = req.WithContext(ContextWithMember(req.Context(), "member-1", "a@b.com"))
	w = httptest.NewRecorder()
	candleHandler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}

	// API 전반 제한은 영향을 받지 않음
	generalMw := rl.GeneralMiddleware()
	generalHandler := generalMw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req = httptest.NewRequest(http.MethodGet, "/cake/view", nil)
	req = req.WithContext(ContextWithMember(req.Context(), "member-1", "a@b.com"))
	w = httptest.NewRecorder()
	generalHandler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRateLimiter_PerMemberIsolation(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:       rate.Limit(0.001),
		GeneralBurst:      1,
		CandleCreateRate:  rate.Limit(1),
		CandleCreateBurst: 1,
		CleanupInterval:   time.Hour,
	})
	defer rl.Stop()

	mw := rl.GeneralMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// 회원 A 가 버스트 소진
	req := httptest.NewRequest(http.MethodGet, "/cake/view", nil)
	req = req.WithContext(ContextWithMember(req.Context(), "member-a", "a@b.com"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("member A first request: status = %d, want 200", w.Code)
	}

	// 회원 B 는 영향 없음
	req = httptest.NewRequest(http.MethodGet, "/cake/view", nil)
	req = req.WithContext(ContextWithMember(req.Context(), "member-b", "b@b.com"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("member B: status = %d, want 200", w.Code)
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", got)
	}
}
