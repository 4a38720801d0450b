package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiyun/decoratemycake/internal/model"
)

// PostgresSessionRepo 는 PostgreSQL을 사용한 세션 리포지토리.
type PostgresSessionRepo struct {
	db *sql.DB
}

// NewPostgresSessionRepo 는 PostgresSessionRepo를 생성한다.
func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

// Create 는 세션을 생성한다.
func (r *PostgresSessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, member_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		session.ID, session.MemberID, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("세션 생성에 실패했습니다: %w", err)
	}
	return nil
}

// FindByID 는 세션을 조회한다. 기한이 지난 세션은 nil을 반환한다.
// 회원 이메일을 함께 조인해 세션 미들웨어가 재조회 없이 쓸 수 있게 한다.
func (r *PostgresSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	session := &model.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT s.id, s.member_id, m.email, s.expires_at, s.created_at
		 FROM sessions s
		 JOIN members m ON m.id = s.member_id
		 WHERE s.id = $1 AND s.expires_at > NOW()`,
		id,
	).Scan(&session.ID, &session.MemberID, &session.Email, &session.ExpiresAt, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("세션 조회에 실패했습니다: %w", err)
	}

	return session, nil
}

// DeleteByID 는 세션을 삭제한다.
func (r *PostgresSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("세션 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByMemberID 는 회원의 모든 세션을 삭제한다.
func (r *PostgresSessionRepo) DeleteByMemberID(ctx context.Context, memberID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE member_id = $1`,
		memberID,
	)
	if err != nil {
		return fmt.Errorf("회원 세션 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
