// Package lists provides PostgreSQL-backed persistence for board lists.
package lists

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

// GetByBoard returns the board's lists in display order: position ascending,
// ties broken by id.
func (r *PostgresRepository) GetByBoard(ctx context.Context, boardID int64) ([]models.List, error) {
	query :=
		`SELECT id, board_id, title, position FROM lists
		 WHERE board_id = $1
		 ORDER BY position, id
		 `

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.List, 0)
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.List, error) {
	query :=
		`SELECT id, board_id, title, position FROM lists
		 WHERE id = $1
		 `

	l := &models.List{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.BoardID, &l.Title, &l.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}

func (r *PostgresRepository) CountByBoard(ctx context.Context, boardID int64) (int, error) {
	query := `SELECT COUNT(*) FROM lists WHERE board_id = $1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, boardID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	query :=
		`INSERT INTO lists (board_id, title, position)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, list.BoardID, list.Title, list.Position).Scan(&list.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, list *models.List) (*models.List, error) {
	query :=
		`UPDATE lists SET title = $2, position = $3
		 WHERE id = $1
		 RETURNING id, board_id
		 `

	err := r.db.QueryRowContext(ctx, query, list.ID, list.Title, list.Position).Scan(&list.ID, &list.BoardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// UpdatePosition rewrites a single sibling's rank during a renumbering pass.
func (r *PostgresRepository) UpdatePosition(ctx context.Context, id int64, position int) error {
	query := `UPDATE lists SET position = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, position); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Delete removes a list; its cards go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM lists WHERE id = $1`

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
