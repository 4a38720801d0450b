package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig 는 요청 비율 제한 설정을 보관한다.
type RateLimiterConfig struct {
	GeneralRate       rate.Limit    // API 전반 비율(req/sec). 120/60 = 2 req/sec
	GeneralBurst      int           // API 전반 버스트 크기
	CandleCreateRate  rate.Limit    // 캔들 생성 비율(req/sec). 10/60
	CandleCreateBurst int           // 캔들 생성 버스트 크기
	CleanupInterval   time.Duration // 만료 엔트리 정리 주기
}

// DefaultRateLimiterConfig 는 기본 비율 제한 설정을 반환한다.
// API 전반 120 req/min/member, 캔들 생성 10 req/min/member.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:       rate.Limit(120.0 / 60.0), // 2 req/sec
		GeneralBurst:      120,
		CandleCreateRate:  rate.Limit(10.0 / 60.0), // ~0.167 req/sec
		CandleCreateBurst: 10,
		CleanupInterval:   5 * time.Minute,
	}
}

// memberLimiter 는 회원별 리미터와 마지막 접근 시각을 보관한다.
type memberLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter 는 회원별 요청 비율 제한을 관리한다.
// API 전반 제한과 캔들 생성 제한의 두 종류를 제공한다.
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*memberLimiter

	candleMu       sync.RWMutex
	candleLimiters map[string]*memberLimiter

	stopCh chan struct{}
}

// NewRateLimiter 는 새 RateLimiter 를 생성한다.
// 백그라운드에서 만료 엔트리 정리를 시작한다.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:          config,
		generalLimiters: make(map[string]*memberLimiter),
		candleLimiters:  make(map[string]*memberLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop 은 백그라운드 정리 고루틴을 중단한다.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware 는 API 전반의 비율 제한 미들웨어를 반환한다.
// 요청 컨텍스트에 회원 이메일이 있어야 한다(SessionMiddleware 이후 배치).
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := MemberEmailFromContext(r.Context())
			if err != nil {
				writeUnauthorizedResponse(w)
				return
			}

			limiter := rl.getOrCreateGeneralLimiter(email)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.String("member_email", email),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CandleCreateMiddleware 는 캔들 생성 전용 비율 제한 미들웨어를 반환한다.
// API 전반 제한과 독립적으로 동작한다.
func (rl *RateLimiter) CandleCreateMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := MemberEmailFromContext(r.Context())
			if err != nil {
				writeUnauthorizedResponse(w)
				return
			}

			limiter := rl.getOrCreateCandleLimiter(email)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.CandleCreateRate)
				slog.Warn("rate limit exceeded",
					slog.String("member_email", email),
					slog.String("limit_type", "candle_create"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralLimiterCount 는 현재 관리 중인 API 전반 리미터 수를 반환한다.
// 테스트 및 메트릭 용도.
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.generalMu.RLock()
	defer rl.generalMu.RUnlock()
	return len(rl.generalLimiters)
}

// CandleLimiterCount 는 현재 관리 중인 캔들 생성 리미터 수를 반환한다.
// 테스트 및 메트릭 용도.
func (rl *RateLimiter) CandleLimiterCount() int {
	rl.candleMu.RLock()
	defer rl.candleMu.RUnlock()
	return len(rl.candleLimiters)
}

// getOrCreateGeneralLimiter 는 회원의 API 전반 리미터를 얻거나 생성한다.
func (rl *RateLimiter) getOrCreateGeneralLimiter(email string) *rate.Limiter {
	rl.generalMu.RLock()
	ml, exists := rl.generalLimiters[email]
	rl.generalMu.RUnlock()

	if exists {
		rl.generalMu.Lock()
		ml.lastAccess = time.Now()
		rl.generalMu.Unlock()
		return ml.limiter
	}

	rl.generalMu.Lock()
	defer rl.generalMu.Unlock()

	// 이중 확인
	if ml, exists := rl.generalLimiters[email]; exists {
		ml.lastAccess = time.Now()
		return ml.limiter
	}

	limiter := rate.NewLimiter(rl.config.GeneralRate, rl.config.GeneralBurst)
	rl.generalLimiters[email] = &memberLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// getOrCreateCandleLimiter 는 회원의 캔들 생성 리미터를 얻거나 생성한다.
func (rl *RateLimiter) getOrCreateCandleLimiter(email string) *rate.Limiter {
	rl.candleMu.RLock()
	ml, exists := rl.candleLimiters[email]
	rl.candleMu.RUnlock()

	if exists {
		rl.candleMu.Lock()
		ml.lastAccess = time.Now()
		rl.candleMu.Unlock()
		return ml.limiter
	}

	rl.candleMu.Lock()
	defer rl.candleMu.Unlock()

	// 이중 확인
	if ml, exists := rl.candleLimiters[email]; exists {
		ml.lastAccess = time.Now()
		return ml.limiter
	}

	limiter := rate.NewLimiter(rl.config.CandleCreateRate, rl.config.CandleCreateBurst)
	rl.candleLimiters[email] = &memberLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop 는 백그라운드에서 만료 엔트리를 주기적으로 정리한다.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup 은 마지막 접근 후 CleanupInterval 의 2배를 넘긴 엔트리를 삭제한다.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2

	now := time.Now()

	rl.generalMu.Lock()
	for email, ml := range rl.generalLimiters {
		if now.Sub(ml.lastAccess) > ttl {
			delete(rl.generalLimiters, email)
		}
	}
	rl.generalMu.Unlock()

	rl.candleMu.Lock()
	for email, ml := range rl.candleLimiters {
		if now.Sub(ml.lastAccess) > ttl {
			delete(rl.candleLimiters, email)
		}
	}
	rl.candleMu.Unlock()
}

// writeRateLimitResponse 는 429 Too Many Requests 응답을 기록한다.
// Retry-After 헤더에는 토큰이 보충될 때까지의 추정 초를 넣는다.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	// Retry-After 산출: 토큰 1개가 보충되는 데 걸리는 초
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"code":     "RATE_LIMIT_EXCEEDED",
		"message":  "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
		"category": "system",
		"action":   "표시된 시간 이후에 다시 요청해 주세요.",
	})
}
