package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiyun/decoratemycake/internal/model"
)

// PostgresCandleRepo 는 PostgreSQL을 사용한 캔들 리포지토리.
type PostgresCandleRepo struct {
	db *sql.DB
}

// NewPostgresCandleRepo 는 PostgresCandleRepo를 생성한다.
func NewPostgresCandleRepo(db *sql.DB) *PostgresCandleRepo {
	return &PostgresCandleRepo{db: db}
}

// ListByCakeID 는 케이크의 캔들 목록을 작성 시각 오름차순으로 반환한다.
func (r *PostgresCandleRepo) ListByCakeID(ctx context.Context, cakeID string) ([]*model.Candle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, cake_id, candle_name, candle_title, candle_content, writer, is_private, created_at
		 FROM candles WHERE cake_id = $1 ORDER BY created_at ASC`,
		cakeID,
	)
	if err != nil {
		return nil, fmt.Errorf("캔들 목록 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var candles []*model.Candle
	for rows.Next() {
		candle := &model.Candle{}
		if err := rows.Scan(&candle.ID, &candle.CakeID, &candle.Name, &candle.Title,
			&candle.Content, &candle.Writer, &candle.IsPrivate, &candle.CreatedAt); err != nil {
			return nil, fmt.Errorf("캔들 행 읽기에 실패했습니다: %w", err)
		}
		candles = append(candles, candle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("캔들 목록 순회에 실패했습니다: %w", err)
	}
	return candles, nil
}

// Create 는 캔들을 생성한다.
func (r *PostgresCandleRepo) Create(ctx context.Context, candle *model.Candle) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO candles (id, cake_id, candle_name, candle_title, candle_content, writer, is_private, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		candle.ID, candle.CakeID, candle.Name, candle.Title,
		candle.Content, candle.Writer, candle.IsPrivate, candle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("캔들 생성에 실패했습니다: %w", err)
	}
	return nil
}

// CountByCakeID 는 케이크의 캔들 개수를 반환한다.
func (r *PostgresCandleRepo) CountByCakeID(ctx context.Context, cakeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candles WHERE cake_id = $1`,
		cakeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("캔들 개수 조회에 실패했습니다: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ CandleRepository = (*PostgresCandleRepo)(nil)
