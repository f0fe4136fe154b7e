// Package boards provides PostgreSQL-backed persistence for boards.
package boards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/dbx"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Board, error) {
	query :=
		`SELECT id, name, description FROM boards
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Board, 0)
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Board, error) {
	query :=
		`SELECT id, name, description FROM boards
		 WHERE id = $1
		 `

	b := &models.Board{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, board *models.Board) (*models.Board, error) {
	query :=
		`INSERT INTO boards (name, description)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, board.Name, board.Description).Scan(&board.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return board, nil
}

func (r *PostgresRepository) Update(ctx context.Context, board *models.Board) (*models.Board, error) {
	query :=
		`UPDATE boards SET name = $2, description = $3
		 WHERE id = $1
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, board.ID, board.Name, board.Description).Scan(&board.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return board, nil
}

// Delete removes a board; lists and cards go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM boards WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
