package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jiyun/decoratemycake/internal/model"
)

// PostgresCakeRepo 는 PostgreSQL을 사용한 케이크 리포지토리.
type PostgresCakeRepo struct {
	db *sql.DB
}

// NewPostgresCakeRepo 는 PostgresCakeRepo를 생성한다.
func NewPostgresCakeRepo(db *sql.DB) *PostgresCakeRepo {
	return &PostgresCakeRepo{db: db}
}

// FindByEmailAndCreatedYear 는 (이메일, 생성 연도)로 케이크를 조회한다. 없으면 nil을 반환한다.
func (r *PostgresCakeRepo) FindByEmailAndCreatedYear(ctx context.Context, email string, year int) (*model.Cake, error) {
	cake := &model.Cake{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, member_id, email, cake_name, created_year,
		        candle_create_permission, candle_view_permission, candle_count_permission,
		        created_at, updated_at
		 FROM cakes WHERE email = $1 AND created_year = $2`,
		email, year,
	).Scan(&cake.ID, &cake.MemberID, &cake.Email, &cake.Name, &cake.CreatedYear,
		&cake.CandleCreatePermission, &cake.CandleViewPermission, &cake.CandleCountPermission,
		&cake.CreatedAt, &cake.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("케이크 조회에 실패했습니다: %w", err)
	}

	return cake, nil
}

// Create 는 케이크를 생성한다.
// (email, created_year) 유니크 제약 위반은 CAKE_ALREADY_EXISTS 도메인 에러로 변환한다.
// 동시 생성 요청의 승자는 저장 계층의 제약이 결정하며, 패자는 항상 이 에러를 받는다.
func (r *PostgresCakeRepo) Create(ctx context.Context, cake *model.Cake) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cakes (id, member_id, email, cake_name, created_year,
		                    candle_create_permission, candle_view_permission, candle_count_permission,
		                    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		cake.ID, cake.MemberID, cake.Email, cake.Name, cake.CreatedYear,
		cake.CandleCreatePermission, cake.CandleViewPermission, cake.CandleCountPermission,
		cake.CreatedAt, cake.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return model.NewCakeAlreadyExistsError(cake.CreatedYear)
		}
		return fmt.Errorf("케이크 생성에 실패했습니다: %w", err)
	}
	return nil
}

// ListByEmail 은 회원이 소유한 케이크를 생성 연도 오름차순으로 반환한다.
func (r *PostgresCakeRepo) ListByEmail(ctx context.Context, email string) ([]*model.Cake, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, email, cake_name, created_year,
		        candle_create_permission, candle_view_permission, candle_count_permission,
		        created_at, updated_at
		 FROM cakes WHERE email = $1 ORDER BY created_year ASC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("케이크 목록 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var cakes []*model.Cake
	for rows.Next() {
		cake := &model.Cake{}
		if err := rows.Scan(&cake.ID, &cake.MemberID, &cake.Email, &cake.Name, &cake.CreatedYear,
			&cake.CandleCreatePermission, &cake.CandleViewPermission, &cake.CandleCountPermission,
			&cake.CreatedAt, &cake.UpdatedAt); err != nil {
			return nil, fmt.Errorf("케이크 행 읽기에 실패했습니다: %w", err)
		}
		cakes = append(cakes, cake)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("케이크 목록 순회에 실패했습니다: %w", err)
	}
	return cakes, nil
}

// compile-time interface check
var _ CakeRepository = (*PostgresCakeRepo)(nil)
