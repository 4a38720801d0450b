package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jiyun/decoratemycake/internal/candle"
	"github.com/jiyun/decoratemycake/internal/middleware"
)

const msgCandleCreated = "캔들 생성이 완료되었습니다."

// CandleServiceInterface 는 캔들 핸들러가 필요로 하는 서비스 인터페이스.
type CandleServiceInterface interface {
	// CreateCandle 은 대상 케이크에 캔들을 남긴다.
	CreateCandle(ctx context.Context, input candle.CreateInput) (*candle.CreateOutput, error)
}

// CandleHandler 는 캔들 작성의 HTTP 핸들러.
type CandleHandler struct {
	service   CandleServiceInterface
	validator RequestValidator
}

// NewCandleHandler 는 CandleHandler 를 생성한다.
func NewCandleHandler(service CandleServiceInterface, validator RequestValidator) *CandleHandler {
	return &CandleHandler{
		service:   service,
		validator: validator,
	}
}

// createCandleRequest 는 캔들 작성 요청 바디.
type createCandleRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CakeCreatedYear int    `json:"cakeCreatedYear" validate:"required"`
	CandleName      string `json:"candleName" validate:"required,max=30"`
	CandleTitle     string `json:"candleTitle" validate:"required,max=50"`
	CandleContent   string `json:"candleContent" validate:"required,max=500"`
	Writer          string `json:"writer" validate:"required,max=30"`
	IsPrivate       bool   `json:"isPrivate"`
}

// createCandleResponse 는 캔들 작성 응답.
type createCandleResponse struct {
	CandleID         string `json:"candleId"`
	CandleName       string `json:"candleName"`
	CandleTitle      string `json:"candleTitle"`
	Writer           string `json:"writer"`
	TotalCandleCount int    `json:"totalCandleCount"`
}

// CreateCandle 은 캔들 작성을 처리한다.
// POST /candle/create
func (h *CandleHandler) CreateCandle(w http.ResponseWriter, r *http.Request) {
	viewerEmail, err := middleware.MemberEmailFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createCandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleServiceError(w, err)
		return
	}

	out, err := h.service.CreateCandle(r.Context(), candle.CreateInput{
		ViewerEmail:     viewerEmail,
		Email:           req.Email,
		CakeCreatedYear: req.CakeCreatedYear,
		CandleName:      req.CandleName,
		CandleTitle:     req.CandleTitle,
		CandleContent:   req.CandleContent,
		Writer:          req.Writer,
		IsPrivate:       req.IsPrivate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeEnvelope(w, http.StatusCreated, msgCandleCreated, createCandleResponse{
		CandleID:         out.CandleID,
		CandleName:       out.CandleName,
		CandleTitle:      out.CandleTitle,
		Writer:           out.Writer,
		TotalCandleCount: out.TotalCandleCount,
	})
}
