// Package middleware 는 HTTP 미들웨어를 제공한다.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jiyun/decoratemycake/internal/model"
)

const sessionCookieName = "session_id"

// contextKey 는 컨텍스트에 값을 저장하기 위한 타입 안전 키.
type contextKey string

var (
	// memberIDContextKey 는 요청 컨텍스트에 회원 ID 를 저장하기 위한 키.
	memberIDContextKey = contextKey("member_id")

	// memberEmailContextKey 는 요청 컨텍스트에 회원 이메일을 저장하기 위한 키.
	memberEmailContextKey = contextKey("member_email")
)

// SessionFinder 는 세션 조회에 필요한 인터페이스.
// repository.SessionRepository 의 부분 집합으로 정의한다.
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// NewSessionMiddleware 는 HTTP Only 쿠키에서 세션을 읽어
// 유효성을 검증하는 미들웨어를 반환한다.
// 인증된 회원의 ID 와 이메일을 요청 컨텍스트에 주입한다.
// 미인증 요청에는 401 Unauthorized 를 반환한다.
func NewSessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. 쿠키에서 세션 ID 추출
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				writeUnauthorizedResponse(w)
				return
			}

			// 2. 세션 유효성 검증
			session, err := sessionFinder.FindByID(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("failed to find session",
					slog.String("error", err.Error()),
				)
				writeUnauthorizedResponse(w)
				return
			}
			if session == nil {
				writeUnauthorizedResponse(w)
				return
			}

			// 3. 인증된 회원 정보를 컨텍스트에 주입
			ctx := ContextWithMember(r.Context(), session.MemberID, session.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MemberIDFromContext 는 요청 컨텍스트에서 회원 ID 를 얻는다.
// 세션 미들웨어를 통과한 요청에서만 유효하다.
func MemberIDFromContext(ctx context.Context) (string, error) {
	memberID, ok := ctx.Value(memberIDContextKey).(string)
	if !ok || memberID == "" {
		return "", fmt.Errorf("member ID not found in context")
	}
	return memberID, nil
}

// MemberEmailFromContext 는 요청 컨텍스트에서 회원 이메일을 얻는다.
// 세션 미들웨어를 통과한 요청에서만 유효하다.
func MemberEmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(memberEmailContextKey).(string)
	if !ok || email == "" {
		return "", fmt.Errorf("member email not found in context")
	}
	return email, nil
}

// ContextWithMember 는 컨텍스트에 회원 ID 와 이메일을 주입한다.
// 테스트나 미들웨어 외부의 컨텍스트 생성에서 사용한다.
func ContextWithMember(ctx context.Context, memberID, email string) context.Context {
	ctx = context.WithValue(ctx, memberIDContextKey, memberID)
	return context.WithValue(ctx, memberEmailContextKey, email)
}
