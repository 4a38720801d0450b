package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jiyun/decoratemycake/internal/middleware"
	"github.com/jiyun/decoratemycake/internal/model"
)

// MemberServiceInterface 는 회원 핸들러가 필요로 하는 서비스 인터페이스.
type MemberServiceInterface interface {
	// GetSettings 는 회원의 계정 설정을 조회한다.
	GetSettings(ctx context.Context, memberID string) (*model.AccountSettings, error)
	// UpdateSettings 는 회원의 계정 설정을 갱신한다.
	UpdateSettings(ctx context.Context, memberID string, settings model.AccountSettings) (*model.AccountSettings, error)
}

// MemberHandler 는 회원 계정 설정의 HTTP 핸들러.
type MemberHandler struct {
	service   MemberServiceInterface
	validator RequestValidator
}

// NewMemberHandler 는 MemberHandler 를 생성한다.
func NewMemberHandler(service MemberServiceInterface, validator RequestValidator) *MemberHandler {
	return &MemberHandler{
		service:   service,
		validator: validator,
	}
}

// accountSettingsRequest 는 계정 설정 변경 요청 바디.
type accountSettingsRequest struct {
	Nickname   string `json:"nickname" validate:"required,max=30"`
	ProfileImg string `json:"profileImg" validate:"omitempty,url"`
}

// accountSettingsResponse 는 계정 설정 응답.
type accountSettingsResponse struct {
	Nickname   string `json:"nickname"`
	ProfileImg string `json:"profileImg,omitempty"`
}

// GetSettings 는 계정 설정 조회를 처리한다.
// GET /api/members/me/settings
func (h *MemberHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	memberID, err := middleware.MemberIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	settings, err := h.service.GetSettings(r.Context(), memberID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accountSettingsResponse{
		Nickname:   settings.Nickname,
		ProfileImg: settings.ProfileImg,
	})
}

// UpdateSettings 는 계정 설정 변경을 처리한다.
// PUT /api/members/me/settings
func (h *MemberHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	memberID, err := middleware.MemberIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req accountSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.service.UpdateSettings(r.Context(), memberID, model.AccountSettings{
		Nickname:   req.Nickname,
		ProfileImg: req.ProfileImg,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accountSettingsResponse{
		Nickname:   updated.Nickname,
		ProfileImg: updated.ProfileImg,
	})
}
