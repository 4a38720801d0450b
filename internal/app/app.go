// Package app 은 애플리케이션 초기화와 기동을 담당한다.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jiyun/decoratemycake/internal/auth"
	"github.com/jiyun/decoratemycake/internal/cake"
	"github.com/jiyun/decoratemycake/internal/candle"
	"github.com/jiyun/decoratemycake/internal/config"
	"github.com/jiyun/decoratemycake/internal/database"
	"github.com/jiyun/decoratemycake/internal/handler"
	"github.com/jiyun/decoratemycake/internal/logger"
	"github.com/jiyun/decoratemycake/internal/member"
	"github.com/jiyun/decoratemycake/internal/metrics"
	"github.com/jiyun/decoratemycake/internal/middleware"
	"github.com/jiyun/decoratemycake/internal/repository"
	"github.com/jiyun/decoratemycake/internal/security"
	"github.com/jiyun/decoratemycake/internal/validation"
)

// Init 은 애플리케이션 초기화를 수행한다.
// 환경 변수에서 Config 를 읽고 JSON 구조화 로그를 설정한다.
// writer 가 지정되면 로그 출력 대상으로 사용한다.
func Init(w io.Writer) (*config.Config, error) {
	// 1. 로그 초기화 (설정 로드 전에 로그를 쓸 수 있도록)
	logger.SetupDefault(w)

	// 2. 환경 변수에서 설정 로드
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run 은 애플리케이션의 메인 엔트리포인트.
// 명령행 인자에서 서브커맨드를 해석해 대응하는 모드로 기동한다.
// args 에는 os.Args[1:] 을 넘긴다.
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck 는 경량 서브커맨드이므로 전체 초기화를 건너뛴다
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe 는 API 서버 모드로 기동한다.
// DB 연결을 열고 전체 의존성을 배선한 뒤 HTTP 서버를 시작한다.
// SIGINT 또는 SIGTERM 수신 시 그레이스풀 셧다운을 수행한다.
func runServe(cfg *config.Config) error {
	// 1. DB 연결
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. 리포지토리 초기화
	memberRepo := repository.NewPostgresMemberRepo(db)
	cakeRepo := repository.NewPostgresCakeRepo(db)
	candleRepo := repository.NewPostgresCandleRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)

	// 3. 메트릭·보안·검증 초기화
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	sanitizer := security.NewContentSanitizer()
	validator := validation.New()

	// 4. 도메인 서비스 초기화
	authService := auth.NewService(memberRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge})
	cakeService := cake.NewService(memberRepo, cakeRepo, candleRepo, collector)
	candleService := candle.NewService(cakeRepo, candleRepo, sanitizer, collector)
	memberService := member.NewService(memberRepo)

	// 5. 라우터 구성. 비율 제한은 환경 변수의 분당 한도를 따른다
	rlConfig := middleware.DefaultRateLimiterConfig()
	rlConfig.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rlConfig.GeneralBurst = cfg.RateLimitGeneral
	rlConfig.CandleCreateRate = rate.Limit(float64(cfg.RateLimitCandleCreate) / 60.0)
	rlConfig.CandleCreateBurst = cfg.RateLimitCandleCreate
	rateLimiter := middleware.NewRateLimiter(rlConfig)
	defer rateLimiter.Stop()

	csrfConfig := middleware.CSRFConfig{
		CookieSecure: cfg.CookieSecure,
		CookieDomain: cfg.CookieDomain,
	}

	deps := &handler.RouterDeps{
		SessionFinder:     sessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		CSRFConfig:        csrfConfig,

		HealthChecker: db,
		Gatherer:      registry,

		Validator: validator,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		CakeService:   cakeService,
		CandleService: candleService,
		MemberService: memberService,
	}

	router := handler.NewRouter(deps)

	// 요청 로그와 HTTP 계층 메트릭은 라우터 바깥에서 감싼다
	root := middleware.NewLoggingMiddleware(slog.Default())(router)
	root = middleware.NewHTTPMetricsMiddleware(collector)(root)

	// 6. HTTP 서버 기동
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 그레이스풀 셧다운을 위한 시그널 처리
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate 는 데이터베이스 마이그레이션을 실행한다.
// 아직 적용되지 않은 모든 마이그레이션을 순서대로 적용한다.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck 는 헬스체크를 실행한다.
// distroless 환경의 Docker 헬스체크용 서브커맨드.
// /health 엔드포인트에 HTTP 요청을 보내 결과를 반환한다.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL 은 데이터베이스 URL 의 인증 정보를 가린다.
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
