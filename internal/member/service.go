// Package member 는 회원 계정 설정 조회·변경 로직을 제공한다.
package member

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jiyun/decoratemycake/internal/model"
	"github.com/jiyun/decoratemycake/internal/repository"
)

// Service 는 회원 계정 설정 비즈니스 로직을 제공한다.
type Service struct {
	memberRepo repository.MemberRepository
}

// NewService 는 Service 를 생성한다.
func NewService(memberRepo repository.MemberRepository) *Service {
	return &Service{memberRepo: memberRepo}
}

// GetSettings 는 회원의 계정 설정을 조회한다.
func (s *Service) GetSettings(ctx context.Context, memberID string) (*model.AccountSettings, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	if member == nil {
		return nil, model.NewMemberNotFoundByIDError(memberID)
	}

	return &model.AccountSettings{
		Nickname:   member.Nickname,
		ProfileImg: member.ProfileImg,
	}, nil
}

// UpdateSettings 는 회원의 닉네임과 프로필 이미지를 갱신한다.
func (s *Service) UpdateSettings(ctx context.Context, memberID string, settings model.AccountSettings) (*model.AccountSettings, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	if member == nil {
		return nil, model.NewMemberNotFoundByIDError(memberID)
	}

	if err := s.memberRepo.UpdateSettings(ctx, memberID, settings); err != nil {
		return nil, fmt.Errorf("계정 설정 갱신 실패: %w", err)
	}

	slog.Info("member settings updated",
		slog.String("member_id", memberID),
	)

	return &settings, nil
}
