// Package handler 는 HTTP 핸들러와 라우팅을 제공한다.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jiyun/decoratemycake/internal/cake"
	"github.com/jiyun/decoratemycake/internal/middleware"
	"github.com/jiyun/decoratemycake/internal/model"
)

// 성공 응답의 완료 메시지.
const (
	msgCakeCreated = "케이크 생성이 완료되었습니다."
	msgCakeViewed  = "케이크 및 캔들 열람이 완료되었습니다."
)

// CakeServiceInterface 는 케이크 핸들러가 필요로 하는 서비스 인터페이스.
type CakeServiceInterface interface {
	// CreateCake 는 인증된 회원 본인의 올해 케이크를 생성한다.
	CreateCake(ctx context.Context, input cake.CreateInput) (*cake.CreateOutput, error)
	// ViewCake 는 생일 기간 분기에 따라 케이크를 조회한다.
	ViewCake(ctx context.Context, input cake.ViewInput) (*cake.View, error)
	// ListMyCakes 는 회원 본인이 소유한 케이크 목록을 반환한다.
	ListMyCakes(ctx context.Context, email string) ([]cake.Summary, error)
}

// RequestValidator 는 요청 DTO 검증 인터페이스.
// validation.Validator 가 구현한다.
type RequestValidator interface {
	Struct(s interface{}) error
}

// CakeHandler 는 케이크 생성·조회의 HTTP 핸들러.
type CakeHandler struct {
	service   CakeServiceInterface
	validator RequestValidator
}

// NewCakeHandler 는 CakeHandler 를 생성한다.
func NewCakeHandler(service CakeServiceInterface, validator RequestValidator) *CakeHandler {
	return &CakeHandler{
		service:   service,
		validator: validator,
	}
}

// createCakeRequest 는 케이크 생성 요청 바디.
type createCakeRequest struct {
	Email                  string `json:"email" validate:"required,email"`
	CakeName               string `json:"cakeName" validate:"required,max=50"`
	CandleCreatePermission string `json:"candleCreatePermission" validate:"required,oneof=EVERYONE OWNER_ONLY NONE"`
	CandleViewPermission   string `json:"candleViewPermission" validate:"required,oneof=EVERYONE OWNER_ONLY"`
	CandleCountPermission  string `json:"candleCountPermission" validate:"required,oneof=EVERYONE OWNER_ONLY NONE"`
}

// viewCakeRequest 는 케이크 조회 요청 바디.
type viewCakeRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CakeCreatedYear int    `json:"cakeCreatedYear" validate:"required"`
}

// settingResponse 는 케이크 권한 설정 응답.
type settingResponse struct {
	CandleCreatePermission string `json:"candleCreatePermission"`
	CandleViewPermission   string `json:"candleViewPermission"`
	CandleCountPermission  string `json:"candleCountPermission"`
}

// candleListEntry 는 조회 응답의 캔들 한 건.
// isPrivate 는 부분 공개 분기에서도 항상 직렬화한다.
type candleListEntry struct {
	CandleID        string `json:"candleId,omitempty"`
	CandleName      string `json:"candleName"`
	CandleTitle     string `json:"candleTitle,omitempty"`
	CandleContent   string `json:"candleContent,omitempty"`
	CandleCreatedAt string `json:"candleCreatedAt,omitempty"`
	Writer          string `json:"writer"`
	IsPrivate       bool   `json:"isPrivate"`
}

// createCakeResponse 는 케이크 생성 응답.
type createCakeResponse struct {
	Nickname        string            `json:"nickname"`
	CakeName        string            `json:"cakeName"`
	CakeCreatedYear int               `json:"cakeCreatedYear"`
	Setting         settingResponse   `json:"setting"`
	CandleList      []candleListEntry `json:"candleList"`
}

// viewCakeResponse 는 케이크 조회 응답.
// nickname 과 birthday 는 항상 존재하고 나머지는 분기에 따라 선택적이다.
type viewCakeResponse struct {
	Nickname        string            `json:"nickname"`
	Birthday        string            `json:"birthday"`
	Message         string            `json:"message,omitempty"`
	CakeName        string            `json:"cakeName,omitempty"`
	CakeCreatedYear int               `json:"cakeCreatedYear,omitempty"`
	Setting         *settingResponse  `json:"setting,omitempty"`
	CandleList      []candleListEntry `json:"candleList,omitempty"`
}

// responseEnvelope 는 성공 응답의 통일 포맷 {message, data}.
type responseEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// apiErrorResponse 는 통일 에러 포맷의 응답.
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// CreateCake 는 케이크 생성을 처리한다.
// POST /cake/create
func (h *CakeHandler) CreateCake(w http.ResponseWriter, r *http.Request) {
	viewerEmail, err := middleware.MemberEmailFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createCakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleServiceError(w, err)
		return
	}

	out, err := h.service.CreateCake(r.Context(), cake.CreateInput{
		ViewerEmail:            viewerEmail,
		Email:                  req.Email,
		CakeName:               req.CakeName,
		CandleCreatePermission: model.CandleCreatePermission(req.CandleCreatePermission),
		CandleViewPermission:   model.CandleViewPermission(req.CandleViewPermission),
		CandleCountPermission:  model.CandleCountPermission(req.CandleCountPermission),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeEnvelope(w, http.StatusCreated, msgCakeCreated, createCakeResponse{
		Nickname:        out.Nickname,
		CakeName:        out.CakeName,
		CakeCreatedYear: out.CakeCreatedYear,
		Setting: settingResponse{
			CandleCreatePermission: string(out.Setting.CandleCreatePermission),
			CandleViewPermission:   string(out.Setting.CandleViewPermission),
			CandleCountPermission:  string(out.Setting.CandleCountPermission),
		},
		CandleList: []candleListEntry{},
	})
}

// ViewCake 는 케이크 조회를 처리한다.
// POST /cake/view
// 소유자가 아닌 회원의 케이크도 조회할 수 있다.
func (h *CakeHandler) ViewCake(w http.ResponseWriter, r *http.Request) {
	var req viewCakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleServiceError(w, err)
		return
	}

	view, err := h.service.ViewCake(r.Context(), cake.ViewInput{
		Email:           req.Email,
		CakeCreatedYear: req.CakeCreatedYear,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, msgCakeViewed, toViewCakeResponse(view))
}

// cakeSummaryEntry 는 소유 케이크 목록 한 건.
type cakeSummaryEntry struct {
	CakeName         string `json:"cakeName"`
	CakeCreatedYear  int    `json:"cakeCreatedYear"`
	TotalCandleCount int    `json:"totalCandleCount"`
}

// ListMyCakes 는 회원 본인의 케이크 목록 조회를 처리한다.
// GET /api/members/me/cakes
func (h *CakeHandler) ListMyCakes(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.MemberEmailFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	summaries, err := h.service.ListMyCakes(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	entries := make([]cakeSummaryEntry, 0, len(summaries))
	for _, s := range summaries {
		entries = append(entries, cakeSummaryEntry{
			CakeName:         s.CakeName,
			CakeCreatedYear:  s.CakeCreatedYear,
			TotalCandleCount: s.TotalCandleCount,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// toViewCakeResponse 는 서비스 뷰를 응답 DTO 로 변환한다.
func toViewCakeResponse(view *cake.View) viewCakeResponse {
	resp := viewCakeResponse{
		Nickname:        view.Nickname,
		Birthday:        view.Birthday.Format("2006-01-02"),
		Message:         view.Message,
		CakeName:        view.CakeName,
		CakeCreatedYear: view.CakeCreatedYear,
	}
	if view.Setting != nil {
		resp.Setting = &settingResponse{
			CandleCreatePermission: string(view.Setting.CandleCreatePermission),
			CandleViewPermission:   string(view.Setting.CandleViewPermission),
			CandleCountPermission:  string(view.Setting.CandleCountPermission),
		}
	}
	if view.CandleList != nil {
		entries := make([]candleListEntry, 0, len(view.CandleList))
		for _, c := range view.CandleList {
			entries = append(entries, candleListEntry{
				CandleID:        c.CandleID,
				CandleName:      c.CandleName,
				CandleTitle:     c.CandleTitle,
				CandleContent:   c.CandleContent,
				CandleCreatedAt: c.CandleCreatedAt,
				Writer:          c.Writer,
				IsPrivate:       c.IsPrivate,
			})
		}
		resp.CandleList = entries
	}
	return resp
}

// --- 공통 응답 헬퍼 ---

// writeEnvelope 는 {message, data} 포맷의 성공 응답을 기록한다.
func writeEnvelope(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(responseEnvelope{
		Message: message,
		Data:    data,
	})
}

// writeAPIErrorResponse 는 통일 에러 포맷으로 응답을 기록한다.
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeUnauthorized 는 인증 누락 응답을 기록한다.
func writeUnauthorized(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
		Code:     "UNAUTHORIZED",
		Message:  "인증이 필요합니다.",
		Category: "auth",
		Action:   "로그인해 주세요.",
	})
}

// writeInvalidBody 는 요청 바디 파싱 실패 응답을 기록한다.
func writeInvalidBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "요청 바디를 해석할 수 없습니다.",
		Category: "validation",
		Action:   "올바른 JSON 형식으로 요청해 주세요.",
	})
}

// handleServiceError 는 서비스 계층 에러를 HTTP 응답으로 변환한다.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError 가 아닌 에러는 내부 서버 에러로 취급
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "내부 오류가 발생했습니다.",
		Category: "system",
		Action:   "잠시 후 다시 시도해 주세요.",
	})
}

// mapAPIErrorToHTTPStatus 는 에러 코드를 HTTP 상태 코드에 대응시킨다.
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeMemberNotFound, model.ErrCodeCakeNotFound:
		return http.StatusNotFound
	case model.ErrCodeEmailMismatch, model.ErrCodeCandleCreateForbidden:
		return http.StatusForbidden
	case model.ErrCodeCakeAlreadyExists, model.ErrCodeEmailExists:
		return http.StatusConflict
	case model.ErrCodeInvalidPermission, model.ErrCodeValidationFailed, model.ErrCodeWeakPassword:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// parseBirthday 는 "2006-01-02" 형식의 생일 문자열을 파싱한다.
func parseBirthday(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
