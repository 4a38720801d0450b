// Package candle 은 케이크에 캔들(축하 메시지)을 남기는 로직을 제공한다.
package candle

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jiyun/decoratemycake/internal/metrics"
	"github.com/jiyun/decoratemycake/internal/model"
	"github.com/jiyun/decoratemycake/internal/repository"
)

// Sanitizer 는 사용자 입력 텍스트를 정화하는 인터페이스.
// security.ContentSanitizer 가 구현한다.
type Sanitizer interface {
	SanitizeText(input string) string
}

// CreateInput 은 캔들 작성 입력.
type CreateInput struct {
	ViewerEmail     string
	Email           string // 케이크 소유자 이메일
	CakeCreatedYear int
	CandleName      string
	CandleTitle     string
	CandleContent   string
	Writer          string
	IsPrivate       bool
}

// CreateOutput 은 캔들 작성 결과.
type CreateOutput struct {
	CandleID         string
	CandleName       string
	CandleTitle      string
	Writer           string
	TotalCandleCount int
}

// Service 는 캔들 작성 비즈니스 로직을 제공한다.
type Service struct {
	cakeRepo   repository.CakeRepository
	candleRepo repository.CandleRepository
	sanitizer  Sanitizer
	collector  metrics.MetricsCollector

	now func() time.Time
}

// NewService 는 Service 를 생성한다.
func NewService(
	cakeRepo repository.CakeRepository,
	candleRepo repository.CandleRepository,
	sanitizer Sanitizer,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		cakeRepo:   cakeRepo,
		candleRepo: candleRepo,
		sanitizer:  sanitizer,
		collector:  collector,
		now:        time.Now,
	}
}

// CreateCandle 은 대상 케이크에 캔들을 남긴다.
// 케이크의 작성 권한 설정을 검사한다:
//   - EVERYONE: 로그인한 누구나 작성 가능
//   - OWNER_ONLY: 케이크 소유자만 작성 가능
//   - NONE: 작성 불가
//
// 제목과 내용은 저장 전에 정화한다.
func (s *Service) CreateCandle(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	// 1. 대상 케이크 조회
	cake, err := s.cakeRepo.FindByEmailAndCreatedYear(ctx, input.Email, input.CakeCreatedYear)
	if err != nil {
		return nil, fmt.Errorf("케이크 조회 실패: %w", err)
	}
	if cake == nil {
		return nil, model.NewCakeNotFoundError(input.CakeCreatedYear)
	}

	// 2. 작성 권한 검사
	if err := checkCreatePermission(cake, input.ViewerEmail); err != nil {
		return nil, err
	}

	// 3. 입력 정화 후 저장. 비공개 플래그는 텍스트로 저장한다
	candle := &model.Candle{
		ID:        uuid.New().String(),
		CakeID:    cake.ID,
		Name:      s.sanitizer.SanitizeText(input.CandleName),
		Title:     s.sanitizer.SanitizeText(input.CandleTitle),
		Content:   s.sanitizer.SanitizeText(input.CandleContent),
		Writer:    input.Writer,
		IsPrivate: strconv.FormatBool(input.IsPrivate),
		CreatedAt: s.now(),
	}

	if err := s.candleRepo.Create(ctx, candle); err != nil {
		return nil, fmt.Errorf("캔들 저장 실패: %w", err)
	}

	count, err := s.candleRepo.CountByCakeID(ctx, cake.ID)
	if err != nil {
		return nil, fmt.Errorf("캔들 개수 조회 실패: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordCandleCreated()
	}

	slog.Info("candle created",
		slog.String("candle_id", candle.ID),
		slog.String("cake_id", cake.ID),
		slog.String("writer_email", input.ViewerEmail),
	)

	return &CreateOutput{
		CandleID:         candle.ID,
		CandleName:       candle.Name,
		CandleTitle:      candle.Title,
		Writer:           candle.Writer,
		TotalCandleCount: count,
	}, nil
}

// checkCreatePermission 은 케이크의 작성 권한 설정에 따라 뷰어를 검사한다.
func checkCreatePermission(cake *model.Cake, viewerEmail string) error {
	switch cake.CandleCreatePermission {
	case model.CandleCreateEveryone:
		return nil
	case model.CandleCreateOwnerOnly:
		if viewerEmail != cake.Email {
			return model.NewCandleCreateForbiddenError()
		}
		return nil
	case model.CandleCreateNone:
		return model.NewCandleCreateForbiddenError()
	default:
		return model.NewInvalidPermissionError("candleCreatePermission", string(cake.CandleCreatePermission))
	}
}
