package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jiyun/decoratemycake/internal/model"
	"github.com/jiyun/decoratemycake/internal/validation"
)

type mockMemberService struct {
	getFn    func(ctx context.Context, memberID string) (*model.AccountSettings, error)
	updateFn func(ctx context.Context, memberID string, settings model.AccountSettings) (*model.AccountSettings, error)
}

func (m *mockMemberService) GetSettings(ctx context.Context, memberID string) (*model.AccountSettings, error) {
	if m.getFn != nil {
		return m.getFn(ctx, memberID)
	}
	return &model.AccountSettings{}, nil
}

func (m *mockMemberService) UpdateSettings(ctx context.Context, memberID string, settings model.AccountSettings) (*model.AccountSettings, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, memberID, settings)
	}
	return &settings, nil
}

func TestMemberHandler_GetSettings_Success(t *testing.T) {
	svc := &mockMemberService{
		getFn: func(ctx context.Context, memberID string) (*model.AccountSettings, error) {
			if memberID != "member-1" {
				t.Errorf("memberID = %q", memberID)
			}
			return &model.AccountSettings{
				Nickname:   "지윤",
				ProfileImg: "https://cdn.example.com/profile.png",
			}, nil
		},
	}
	h := NewMemberHandler(svc, validation.New())

	req := httptest.NewRequest(http.MethodGet, "/api/members/me/settings", nil)
	req = withMember(req, "member-1", "jiyun@example.com")
	w := httptest.NewRecorder()

	h.GetSettings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp accountSettingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("응답 파싱 실패: %v", err)
	}
	if resp.Nickname != "지윤" {
		t.Errorf("nickname = %q", resp.Nickname)
	}
}

func TestMemberHandler_GetSettings_NoSession_Returns401(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{}, validation.New())

	req := httptest.NewRequest(http.MethodGet, "/api/members/me/settings", nil)
	w := httptest.NewRecorder()

	h.GetSettings(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMemberHandler_UpdateSettings_Success(t *testing.T) {
	svc := &mockMemberService{
		updateFn: func(ctx context.Context, memberID string, settings model.AccountSettings) (*model.AccountSettings, error) {
			if settings.Nickname != "새닉네임" {
				t.Errorf("nickname = %q", settings.Nickname)
			}
			return &settings, nil
		},
	}
	h := NewMemberHandler(svc, validation.New())

	body := `{"nickname":"새닉네임","profileImg":"https://cdn.example.com/new.png"}`
	req := httptest.NewRequest(http.MethodPut, "/api/members/me/settings", strings.NewReader(body))
	req = withMember(req, "member-1", "jiyun@example.com")
	w := httptest.NewRecorder()

	h.UpdateSettings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp accountSettingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("응답 파싱 실패: %v", err)
	}
	if resp.Nickname != "새닉네임" {
		t.Errorf("nickname = %q", resp.Nickname)
	}
}

func TestMemberHandler_UpdateSettings_MissingNickname_Returns400(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{}, validation.New())

	body := `{"profileImg":"https://cdn.example.com/new.png"}`
	req := httptest.NewRequest(http.MethodPut, "/api/members/me/settings", strings.NewReader(body))
	req = withMember(req, "member-1", "jiyun@example.com")
	w := httptest.NewRecorder()

	h.UpdateSettings(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestMemberHandler_UpdateSettings_InvalidProfileURL_Returns400(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{}, validation.New())

	body := `{"nickname":"지윤","profileImg":"not-a-url"}`
	req := httptest.NewRequest(http.MethodPut, "/api/members/me/settings", strings.NewReader(body))
	req = withMember(req, "member-1", "jiyun@example.com")
	w := httptest.NewRecorder()

	h.UpdateSettings(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestMemberHandler_UpdateSettings_MemberNotFound_Returns404(t *testing.T) {
	svc := &mockMemberService{
		updateFn: func(ctx context.Context, memberID string, settings model.AccountSettings) (*model.AccountSettings, error) {
			return nil, model.NewMemberNotFoundError(memberID)
		},
	}
	h := NewMemberHandler(svc, validation.New())

	body := `{"nickname":"지윤"}`
	req := httptest.NewRequest(http.MethodPut, "/api/members/me/settings", strings.NewReader(body))
	req = withMember(req, "ghost", "ghost@example.com")
	w := httptest.NewRecorder()

	h.UpdateSettings(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
