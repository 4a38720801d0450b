// Package auth 는 회원 가입, 로그인, 세션 관리를 제공한다.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jiyun/decoratemycake/internal/model"
	"github.com/jiyun/decoratemycake/internal/repository"
)

// ServiceConfig 는 인증 서비스 설정.
type ServiceConfig struct {
	SessionMaxAge int // 세션 유효 기간(초)
}

// RegisterInput 은 회원 가입 입력.
type RegisterInput struct {
	Email    string
	Password string
	Nickname string
	Birthday time.Time
}

// Service 는 인증 관련 비즈니스 로직을 제공한다.
type Service struct {
	memberRepo  repository.MemberRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService 는 Service 를 생성한다.
func NewService(
	memberRepo repository.MemberRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		memberRepo:  memberRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// Register 는 새 회원을 생성한다.
// 비밀번호가 최소 길이 미만이면 WEAK_PASSWORD,
// 이메일이 이미 등록되어 있으면 EMAIL_EXISTS 에러를 반환한다.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.Member, error) {
	if len(input.Password) < minPasswordLength {
		return nil, model.NewWeakPasswordError()
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	member := &model.Member{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: hash,
		Birthday:     input.Birthday,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		// 이메일 중복은 리포지토리가 EMAIL_EXISTS 로 변환한다
		return nil, err
	}

	slog.Info("new member registered",
		slog.String("member_id", member.ID),
		slog.String("email", member.Email),
	)

	return member, nil
}

// Login 은 이메일과 비밀번호를 검증하고 세션을 발급한다.
// 회원이 없거나 비밀번호가 틀리면 동일하게 INVALID_CREDENTIALS 를 반환한다.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	if member == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := VerifyPassword(member.PasswordHash, password); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("세션 생성 실패: %w", err)
	}

	slog.Info("member logged in",
		slog.String("member_id", member.ID),
	)

	return session, nil
}

// Logout 은 세션을 파기한다.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("세션 삭제 실패: %w", err)
	}

	slog.Info("member logged out", slog.String("session_id", sessionID))
	return nil
}

// LogoutAll 은 현재 세션이 속한 회원의 모든 세션을 파기한다.
// 다른 기기에서의 로그인까지 모두 무효화한다.
func (s *Service) LogoutAll(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("세션 조회 실패: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found or expired")
	}

	if err := s.sessionRepo.DeleteByMemberID(ctx, session.MemberID); err != nil {
		return fmt.Errorf("회원 세션 일괄 삭제 실패: %w", err)
	}

	slog.Info("member logged out from all devices",
		slog.String("member_id", session.MemberID),
	)
	return nil
}

// GetCurrentMember 는 세션에서 현재 회원을 얻는다.
func (s *Service) GetCurrentMember(ctx context.Context, sessionID string) (*model.Member, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("세션 조회 실패: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	member, err := s.memberRepo.FindByID(ctx, session.MemberID)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("member not found")
	}

	return member, nil
}

// createSession 은 세션을 생성하고 영속화한다.
func (s *Service) createSession(ctx context.Context, member *model.Member) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("세션 ID 생성 실패: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		MemberID:  member.ID,
		Email:     member.Email,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("세션 저장 실패: %w", err)
	}

	return session, nil
}

// generateSessionID 는 암호학적으로 안전한 세션 ID 를 생성한다.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
