// Package repository 는 데이터 영속화 인터페이스를 정의한다.
package repository

import (
	"context"

	"github.com/jiyun/decoratemycake/internal/model"
)

// MemberRepository 는 회원 데이터 영속화 인터페이스.
type MemberRepository interface {
	// FindByEmail 은 이메일로 회원을 조회한다. 없으면 nil을 반환한다.
	FindByEmail(ctx context.Context, email string) (*model.Member, error)

	// FindByID 는 ID로 회원을 조회한다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.Member, error)

	// Create 는 회원을 생성한다. 이메일 중복 시 model.APIError(EMAIL_EXISTS)를 반환한다.
	Create(ctx context.Context, member *model.Member) error

	// UpdateSettings 는 닉네임과 프로필 이미지를 갱신한다.
	UpdateSettings(ctx context.Context, id string, settings model.AccountSettings) error
}

// CakeRepository 는 케이크 데이터 영속화 인터페이스.
type CakeRepository interface {
	// FindByEmailAndCreatedYear 는 (이메일, 생성 연도)로 케이크를 조회한다. 없으면 nil을 반환한다.
	FindByEmailAndCreatedYear(ctx context.Context, email string, year int) (*model.Cake, error)

	// Create 는 케이크를 생성한다.
	// (email, created_year) 유니크 제약 위반 시 model.APIError(CAKE_ALREADY_EXISTS)를 반환한다.
	Create(ctx context.Context, cake *model.Cake) error

	// ListByEmail 은 회원이 소유한 케이크를 생성 연도 오름차순으로 반환한다.
	ListByEmail(ctx context.Context, email string) ([]*model.Cake, error)
}

// CandleRepository 는 캔들 데이터 영속화 인터페이스.
type CandleRepository interface {
	// ListByCakeID 는 케이크의 캔들 목록을 작성 시각 오름차순으로 반환한다. 없으면 빈 슬라이스.
	ListByCakeID(ctx context.Context, cakeID string) ([]*model.Candle, error)

	// Create 는 캔들을 생성한다.
	Create(ctx context.Context, candle *model.Candle) error

	// CountByCakeID 는 케이크의 캔들 개수를 반환한다.
	CountByCakeID(ctx context.Context, cakeID string) (int, error)
}

// SessionRepository 는 세션 데이터 영속화 인터페이스.
type SessionRepository interface {
	// Create 는 세션을 생성한다.
	Create(ctx context.Context, session *model.Session) error
	// FindByID 는 세션을 조회한다. 기한이 지난 세션은 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID 는 세션을 삭제한다.
	DeleteByID(ctx context.Context, id string) error
	// DeleteByMemberID 는 회원의 모든 세션을 삭제한다.
	DeleteByMemberID(ctx context.Context, memberID string) error
}
