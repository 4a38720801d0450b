// Package cake 는 케이크 생성과 생일 기간별 조회 로직을 제공한다.
package cake

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jiyun/decoratemycake/internal/birthday"
	"github.com/jiyun/decoratemycake/internal/metrics"
	"github.com/jiyun/decoratemycake/internal/model"
	"github.com/jiyun/decoratemycake/internal/repository"
)

// 조회 분기 라벨. 메트릭 기록에 사용한다.
const (
	branchBirthday  = "birthday"
	branchUpcoming  = "upcoming"
	branchCountdown = "countdown"
)

// CreateInput 은 케이크 생성 입력.
type CreateInput struct {
	ViewerEmail            string
	Email                  string
	CakeName               string
	CandleCreatePermission model.CandleCreatePermission
	CandleViewPermission   model.CandleViewPermission
	CandleCountPermission  model.CandleCountPermission
}

// CreateOutput 은 케이크 생성 결과.
type CreateOutput struct {
	Nickname        string
	CakeName        string
	CakeCreatedYear int
	Setting         model.CakeSetting
	CandleList      []CandleView
}

// ViewInput 은 케이크 조회 입력.
// 소유자가 아니어도 조회할 수 있으므로 뷰어 식별자는 받지 않는다.
type ViewInput struct {
	Email           string
	CakeCreatedYear int
}

// CandleView 는 응답에 실리는 캔들 한 건이다.
// 부분 공개 분기에서는 CandleName 과 Writer 만 채워진다.
type CandleView struct {
	CandleID        string
	CandleName      string
	CandleTitle     string
	CandleContent   string
	CandleCreatedAt string
	Writer          string
	IsPrivate       bool
}

// View 는 케이크 조회 결과다.
// Nickname 과 Birthday 는 항상 채워지고 나머지는 분기에 따라 선택적이다.
type View struct {
	Nickname        string
	Birthday        time.Time
	Message         string
	CakeName        string
	CakeCreatedYear int
	Setting         *model.CakeSetting
	CandleList      []CandleView
}

// Service 는 케이크 생성·조회 비즈니스 로직을 제공한다.
type Service struct {
	memberRepo repository.MemberRepository
	cakeRepo   repository.CakeRepository
	candleRepo repository.CandleRepository
	collector  metrics.MetricsCollector

	// now 는 테스트에서 기준 날짜를 고정하기 위해 주입 가능하다.
	now func() time.Time
}

// NewService 는 Service 를 생성한다.
func NewService(
	memberRepo repository.MemberRepository,
	cakeRepo repository.CakeRepository,
	candleRepo repository.CandleRepository,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		memberRepo: memberRepo,
		cakeRepo:   cakeRepo,
		candleRepo: candleRepo,
		collector:  collector,
		now:        time.Now,
	}
}

// CreateCake 는 인증된 회원 본인의 올해 케이크를 생성한다.
// 요청 이메일이 인증 정보와 다르면 EMAIL_MISMATCH,
// 회원이 없으면 MEMBER_NOT_FOUND,
// 올해 케이크가 이미 있으면 CAKE_ALREADY_EXISTS 에러를 반환한다.
func (s *Service) CreateCake(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	// 1. 본인 확인: 요청 이메일은 인증된 이메일과 일치해야 한다
	if input.Email != input.ViewerEmail {
		return nil, model.NewEmailMismatchError()
	}

	// 2. 회원 조회
	member, err := s.memberRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	if member == nil {
		return nil, model.NewMemberNotFoundError(input.Email)
	}

	// 3. 올해 케이크를 생성해 영속화
	// 연도 중복은 저장 계층의 유니크 제약이 CAKE_ALREADY_EXISTS 로 변환한다
	now := s.now()
	cake := &model.Cake{
		ID:                     uuid.New().String(),
		MemberID:               member.ID,
		Email:                  member.Email,
		Name:                   input.CakeName,
		CreatedYear:            now.Year(),
		CandleCreatePermission: input.CandleCreatePermission,
		CandleViewPermission:   input.CandleViewPermission,
		CandleCountPermission:  input.CandleCountPermission,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.cakeRepo.Create(ctx, cake); err != nil {
		return nil, err
	}

	if s.collector != nil {
		s.collector.RecordCakeCreated()
	}

	slog.Info("cake created",
		slog.String("cake_id", cake.ID),
		slog.String("email", cake.Email),
		slog.Int("created_year", cake.CreatedYear),
	)

	return &CreateOutput{
		Nickname:        member.Nickname,
		CakeName:        cake.Name,
		CakeCreatedYear: cake.CreatedYear,
		Setting: model.CakeSetting{
			CandleCreatePermission: cake.CandleCreatePermission,
			CandleViewPermission:   cake.CandleViewPermission,
			CandleCountPermission:  cake.CandleCountPermission,
		},
		CandleList: []CandleView{},
	}, nil
}

// ViewCake 는 생일 기간 분기에 따라 공개 범위를 결정해 케이크를 조회한다.
// 소유자가 아닌 회원의 케이크도 조회할 수 있다.
//
// 분기 우선순위:
//  1. 오늘이 생일: 케이크가 있으면 전체 공개 + 축하 메시지,
//     없으면 생성 안내 메시지.
//  2. 생일까지 30일 초과: 케이크 유무와 무관하게 D-day 메시지만.
//  3. 생일까지 0~30일(당일 제외): 케이크가 있으면 캔들을
//     이름·작성자만 남기고 가린 부분 공개, 없으면 생성 안내 메시지.
func (s *Service) ViewCake(ctx context.Context, input ViewInput) (*View, error) {
	// 1. 회원 조회
	member, err := s.memberRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	if member == nil {
		return nil, model.NewMemberNotFoundError(input.Email)
	}

	// 2. 케이크 조회. 없는 것은 에러가 아니라 "아직 없음" 상태
	cake, err := s.cakeRepo.FindByEmailAndCreatedYear(ctx, input.Email, input.CakeCreatedYear)
	if err != nil {
		return nil, fmt.Errorf("케이크 조회 실패: %w", err)
	}

	// 3. 생일 기간 분류
	w := birthday.Classify(s.now(), member.Birthday)

	view := &View{
		Nickname: member.Nickname,
		Birthday: member.Birthday,
	}

	switch {
	case w.IsToday:
		s.recordView(branchBirthday)
		if cake == nil {
			view.Message = creationPromptMessage(member.Nickname, w.Age)
			return view, nil
		}
		view.Message = celebrationMessage(member.Nickname, w.Age)
		if err := s.fillCake(ctx, view, cake, true); err != nil {
			return nil, err
		}
		return view, nil

	case w.DaysUntil > birthday.RevealWindowDays:
		s.recordView(branchCountdown)
		view.Message = dDayMessage(w.DaysUntil)
		return view, nil

	default:
		s.recordView(branchUpcoming)
		if cake == nil {
			view.Message = creationPromptMessage(member.Nickname, w.Age)
			return view, nil
		}
		if err := s.fillCake(ctx, view, cake, false); err != nil {
			return nil, err
		}
		return view, nil
	}
}

// Summary 는 회원이 소유한 케이크 한 건의 목록 항목이다.
type Summary struct {
	CakeName         string
	CakeCreatedYear  int
	TotalCandleCount int
}

// ListMyCakes 는 회원 본인이 소유한 케이크를 생성 연도 오름차순으로 반환한다.
func (s *Service) ListMyCakes(ctx context.Context, email string) ([]Summary, error) {
	cakes, err := s.cakeRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("케이크 목록 조회 실패: %w", err)
	}

	summaries := make([]Summary, 0, len(cakes))
	for _, c := range cakes {
		count, err := s.candleRepo.CountByCakeID(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("캔들 개수 조회 실패: %w", err)
		}
		summaries = append(summaries, Summary{
			CakeName:         c.Name,
			CakeCreatedYear:  c.CreatedYear,
			TotalCandleCount: count,
		})
	}
	return summaries, nil
}

// fillCake 는 케이크와 캔들 목록을 뷰에 채운다.
// full 이 false 이면 캔들을 이름·작성자만 남기고 가린다.
func (s *Service) fillCake(ctx context.Context, view *View, cake *model.Cake, full bool) error {
	view.CakeName = cake.Name
	view.CakeCreatedYear = cake.CreatedYear
	view.Setting = &model.CakeSetting{
		CandleCreatePermission: cake.CandleCreatePermission,
		CandleViewPermission:   cake.CandleViewPermission,
		CandleCountPermission:  cake.CandleCountPermission,
	}

	candles, err := s.candleRepo.ListByCakeID(ctx, cake.ID)
	if err != nil {
		return fmt.Errorf("캔들 목록 조회 실패: %w", err)
	}

	views := make([]CandleView, 0, len(candles))
	for _, c := range candles {
		if full {
			views = append(views, fullCandleView(c))
		} else {
			views = append(views, redactedCandleView(c))
		}
	}
	view.CandleList = views
	return nil
}

// fullCandleView 는 캔들의 모든 필드를 매핑한다. 생일 당일에만 사용한다.
func fullCandleView(c *model.Candle) CandleView {
	// 저장 형식이 텍스트이므로 여기서 불리언으로 파싱한다.
	// 파싱 실패는 비공개(false)로 취급한다.
	isPrivate, _ := strconv.ParseBool(c.IsPrivate)
	return CandleView{
		CandleID:        c.ID,
		CandleName:      c.Name,
		CandleTitle:     c.Title,
		CandleContent:   c.Content,
		CandleCreatedAt: c.CreatedAt.Format(time.RFC3339),
		Writer:          c.Writer,
		IsPrivate:       isPrivate,
	}
}

// redactedCandleView 는 이름과 작성자만 남긴다.
// 개별 캔들의 비공개 플래그와 무관하게 일괄 적용한다.
func redactedCandleView(c *model.Candle) CandleView {
	return CandleView{
		CandleName: c.Name,
		Writer:     c.Writer,
	}
}

func (s *Service) recordView(branch string) {
	if s.collector != nil {
		s.collector.RecordCakeView(branch)
	}
}

func celebrationMessage(nickname string, age int) string {
	return fmt.Sprintf("%s님의 %d살 생일을 축하합니다!!", nickname, age)
}

func creationPromptMessage(nickname string, age int) string {
	return fmt.Sprintf("%s님의 %d살 생일 케이크를 만들어 보세요!", nickname, age)
}

func dDayMessage(daysUntil int) string {
	return fmt.Sprintf("생일까지 D-%d일 남았습니다!", daysUntil)
}
