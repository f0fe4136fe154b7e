// Package cards provides PostgreSQL-backed persistence for cards.
package cards

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

// GetByList returns the list's cards in display order: position ascending,
// ties broken by id. Attachments are loaded separately.
func (r *PostgresRepository) GetByList(ctx context.Context, listID int64) ([]models.Card, error) {
	query :=
		`SELECT id, list_id, title, description, due_date, position FROM cards
		 WHERE list_id = $1
		 ORDER BY position, id
		 `

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Card, 0)
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.DueDate, &c.Position); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	query :=
		`SELECT id, list_id, title, description, due_date, position FROM cards
		 WHERE id = $1
		 `

	c := &models.Card{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.DueDate, &c.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) CountByList(ctx context.Context, listID int64) (int, error) {
	query := `SELECT COUNT(*) FROM cards WHERE list_id = $1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, listID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query :=
		`INSERT INTO cards (list_id, title, description, due_date, position)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		card.ListID, card.Title, card.Description, card.DueDate, card.Position).Scan(&card.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

// UpdateFields rewrites the card's content columns. Placement (list_id,
// position) is owned by UpdatePlacement so that moves stay a separate,
// transactional concern.
func (r *PostgresRepository) UpdateFields(ctx context.Context, card *models.Card) (*models.Card, error) {
	query :=
		`UPDATE cards SET title = $2, description = $3, due_date = $4
		 WHERE id = $1
		 RETURNING id, list_id, position
		 `

	err := r.db.QueryRowContext(ctx, query,
		card.ID, card.Title, card.Description, card.DueDate).Scan(&card.ID, &card.ListID, &card.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

// UpdatePlacement moves a card to a list and rank in one statement.
func (r *PostgresRepository) UpdatePlacement(ctx context.Context, id, listID int64, position int) error {
	query := `UPDATE cards SET list_id = $2, position = $3 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, listID, position)
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

// UpdatePosition rewrites a single sibling's rank during a renumbering pass.
func (r *PostgresRepository) UpdatePosition(ctx context.Context, id int64, position int) error {
	query := `UPDATE cards SET position = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, position); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cards WHERE id = $1`

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
