package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jiyun/decoratemycake/internal/model"
)

// pgUniqueViolation 은 PostgreSQL 유니크 제약 위반 에러 코드.
const pgUniqueViolation = "23505"

// PostgresMemberRepo 는 PostgreSQL을 사용한 회원 리포지토리.
type PostgresMemberRepo struct {
	db *sql.DB
}

// NewPostgresMemberRepo 는 PostgresMemberRepo를 생성한다.
func NewPostgresMemberRepo(db *sql.DB) *PostgresMemberRepo {
	return &PostgresMemberRepo{db: db}
}

// FindByEmail 은 이메일로 회원을 조회한다. 없으면 nil을 반환한다.
func (r *PostgresMemberRepo) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	member := &model.Member{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, nickname, profile_img, password_hash, birthday, created_at, updated_at
		 FROM members WHERE email = $1`,
		email,
	).Scan(&member.ID, &member.Email, &member.Nickname, &member.ProfileImg,
		&member.PasswordHash, &member.Birthday, &member.CreatedAt, &member.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("회원 조회에 실패했습니다: %w", err)
	}

	return member, nil
}

// FindByID 는 ID로 회원을 조회한다. 없으면 nil을 반환한다.
func (r *PostgresMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	member := &model.Member{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, nickname, profile_img, password_hash, birthday, created_at, updated_at
		 FROM members WHERE id = $1`,
		id,
	).Scan(&member.ID, &member.Email, &member.Nickname, &member.ProfileImg,
		&member.PasswordHash, &member.Birthday, &member.CreatedAt, &member.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("회원 조회에 실패했습니다: %w", err)
	}

	return member, nil
}

// Create 는 회원을 생성한다. 이메일 유니크 제약 위반은 EMAIL_EXISTS 도메인 에러로 변환한다.
func (r *PostgresMemberRepo) Create(ctx context.Context, member *model.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, email, nickname, profile_img, password_hash, birthday, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		member.ID, member.Email, member.Nickname, member.ProfileImg,
		member.PasswordHash, member.Birthday, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return model.NewEmailExistsError(member.Email)
		}
		return fmt.Errorf("회원 생성에 실패했습니다: %w", err)
	}
	return nil
}

// UpdateSettings 는 닉네임과 프로필 이미지를 갱신한다.
func (r *PostgresMemberRepo) UpdateSettings(ctx context.Context, id string, settings model.AccountSettings) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET nickname = $2, profile_img = $3, updated_at = NOW() WHERE id = $1`,
		id, settings.Nickname, settings.ProfileImg,
	)
	if err != nil {
		return fmt.Errorf("계정 설정 갱신에 실패했습니다: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("갱신 결과 확인에 실패했습니다: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("회원을 찾을 수 없습니다: %s", id)
	}
	return nil
}

// compile-time interface check
var _ MemberRepository = (*PostgresMemberRepo)(nil)
