package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jiyun/decoratemycake/internal/metrics"
	"github.com/jiyun/decoratemycake/internal/middleware"
)

// HealthChecker 는 헬스체크에 필요한 인터페이스. *sql.DB 가 구현한다.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps 는 NewRouter 에 필요한 의존성을 모은 구조체.
type RouterDeps struct {
	// 미들웨어 의존성
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig

	// 운영
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer

	// 요청 검증
	Validator RequestValidator

	// 인증
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 케이크
	CakeService CakeServiceInterface

	// 캔들
	CandleService CandleServiceInterface

	// 회원
	MemberService MemberServiceInterface
}

// NewRouter 는 전체 API 엔드포인트의 라우팅과 미들웨어 체인을 구성한 chi.Router 를 반환한다.
//
// 미들웨어 스택 실행 순서:
//
//	Recovery → SecurityHeaders → CORS → CSRF → (인증 그룹: Session → RateLimit)
//
// 인증 라우트(/auth/*)와 운영 라우트(/health, /metrics)는 세션 체인 밖에 둔다.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 전역 미들웨어
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

	authHandler := NewAuthHandler(deps.AuthService, deps.Validator, deps.AuthConfig)
	cakeHandler := NewCakeHandler(deps.CakeService, deps.Validator)
	candleHandler := NewCandleHandler(deps.CandleService, deps.Validator)
	memberHandler := NewMemberHandler(deps.MemberService, deps.Validator)

	// --- 인증 불필요 라우트 ---

	r.Get("/health", newHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Get("/metrics", metrics.Handler(deps.Gatherer).ServeHTTP)
	}
	r.Get("/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Post("/logout-all", authHandler.LogoutAll)
		r.Get("/me", authHandler.Me)
	})

	// --- 인증 필요 라우트 ---
	// 미들웨어 스택: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 케이크
		r.Route("/cake", func(r chi.Router) {
			r.Post("/create", cakeHandler.CreateCake)
			r.Post("/view", cakeHandler.ViewCake)
		})

		// 캔들 (작성 전용 비율 제한을 추가)
		r.With(deps.RateLimiter.CandleCreateMiddleware()).
			Post("/candle/create", candleHandler.CreateCandle)

		// 회원 계정 설정·소유 케이크 목록
		r.Route("/api/members/me", func(r chi.Router) {
			r.Get("/settings", memberHandler.GetSettings)
			r.Put("/settings", memberHandler.UpdateSettings)
			r.Get("/cakes", cakeHandler.ListMyCakes)
		})
	})

	return r
}

// newHealthHandler 는 DB ping 기반 헬스체크 핸들러를 반환한다.
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if checker == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}

		if err := checker.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
