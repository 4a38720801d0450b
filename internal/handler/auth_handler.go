package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jiyun/decoratemycake/internal/auth"
	"github.com/jiyun/decoratemycake/internal/model"
)

// AuthServiceInterface 는 인증 핸들러가 필요로 하는 서비스 인터페이스.
type AuthServiceInterface interface {
	// Register 는 새 회원을 생성한다.
	Register(ctx context.Context, input auth.RegisterInput) (*model.Member, error)
	// Login 은 이메일·비밀번호를 검증하고 세션을 발급한다.
	Login(ctx context.Context, email, password string) (*model.Session, error)
	// Logout 은 세션을 파기한다.
	Logout(ctx context.Context, sessionID string) error
	// LogoutAll 은 현재 세션이 속한 회원의 모든 세션을 파기한다.
	LogoutAll(ctx context.Context, sessionID string) error
	// GetCurrentMember 는 세션에서 현재 회원을 얻는다.
	GetCurrentMember(ctx context.Context, sessionID string) (*model.Member, error)
}

// AuthHandlerConfig 는 인증 핸들러의 쿠키 설정.
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int
}

// AuthHandler 는 회원 가입·로그인·로그아웃의 HTTP 핸들러.
type AuthHandler struct {
	service   AuthServiceInterface
	validator RequestValidator
	config    AuthHandlerConfig
}

// NewAuthHandler 는 AuthHandler 를 생성한다.
func NewAuthHandler(service AuthServiceInterface, validator RequestValidator, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator,
		config:    config,
	}
}

// signupRequest 는 회원 가입 요청 바디.
type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname" validate:"required,max=30"`
	Birthday string `json:"birthday" validate:"required"`
}

// loginRequest 는 로그인 요청 바디.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// memberResponse 는 회원 정보 응답.
type memberResponse struct {
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	ProfileImg string `json:"profileImg,omitempty"`
	Birthday   string `json:"birthday"`
}

// Signup 은 회원 가입을 처리한다.
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleServiceError(w, err)
		return
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationFailedError("birthday 는 YYYY-MM-DD 형식이어야 합니다"))
		return
	}

	member, err := h.service.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		Birthday: birthday,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeEnvelope(w, http.StatusCreated, "회원 가입이 완료되었습니다.", toMemberResponse(member))
}

// Login 은 로그인을 처리하고 세션 쿠키를 발급한다.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleServiceError(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, session.ID)
	writeEnvelope(w, http.StatusOK, "로그인이 완료되었습니다.", map[string]string{
		"email": session.Email,
	})
}

// Logout 은 세션을 파기하고 쿠키를 만료시킨다.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
		handleServiceError(w, err)
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll 은 회원의 모든 기기 세션을 파기하고 쿠키를 만료시킨다.
// POST /auth/logout-all
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w)
		return
	}

	if err := h.service.LogoutAll(r.Context(), cookie.Value); err != nil {
		handleServiceError(w, err)
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me 는 현재 로그인한 회원 정보를 반환한다.
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w)
		return
	}

	member, err := h.service.GetCurrentMember(r.Context(), cookie.Value)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toMemberResponse(member))
}

// setSessionCookie 는 HTTP Only 세션 쿠키를 설정한다.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie 는 세션 쿠키를 즉시 만료시킨다.
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func toMemberResponse(member *model.Member) memberResponse {
	return memberResponse{
		Email:      member.Email,
		Nickname:   member.Nickname,
		ProfileImg: member.ProfileImg,
		Birthday:   member.Birthday.Format("2006-01-02"),
	}
}
