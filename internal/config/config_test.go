package config

import (
	"strings"
	"testing"
)

func TestLoad_RequiredMissing(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("필수 환경 변수 누락 시 에러가 반환되어야 함")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("에러 메시지에 DATABASE_URL 이 포함되어야 함: %v", err)
	}
	if !strings.Contains(err.Error(), "BASE_URL") {
		t.Errorf("에러 메시지에 BASE_URL 이 포함되어야 함: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cake?sslmode=disable")
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("SESSION_MAX_AGE", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("RATE_LIMIT_GENERAL", "")
	t.Setenv("RATE_LIMIT_CANDLE_CREATE", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want 86400", cfg.SessionMaxAge)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitCandleCreate != 10 {
		t.Errorf("RateLimitCandleCreate = %d, want 10", cfg.RateLimitCandleCreate)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q, want http://localhost:3000", cfg.CORSAllowedOrigin)
	}
	if cfg.CookieSecure {
		t.Error("http BASE_URL 에서는 CookieSecure 가 false 여야 함")
	}
}

func TestLoad_CookieSecureFromHTTPS(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cake?sslmode=disable")
	t.Setenv("BASE_URL", "https://cake.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.CookieSecure {
		t.Error("https BASE_URL 에서는 CookieSecure 가 true 여야 함")
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cake?sslmode=disable")
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("SESSION_MAX_AGE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("잘못된 값은 기본값으로 대체되어야 함: got %d", cfg.SessionMaxAge)
	}
}
