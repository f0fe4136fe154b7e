// Package comments provides PostgreSQL-backed persistence for card comments
// and the activity log written alongside them.
package comments

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

// GetByCard returns the card's comments oldest first, each enriched with the
// commenter's name and email when the comment is not anonymous.
func (r *PostgresRepository) GetByCard(ctx context.Context, cardID int64) ([]models.Comment, error) {
	query :=
		`SELECT c.id, c.card_id, c.user_id, c.content, c.created_at,
		        u.name AS user_name, u.email AS user_email
		 FROM comments c
		 LEFT JOIN users u ON u.id = c.user_id
		 WHERE c.card_id = $1
		 ORDER BY c.created_at, c.id
		 `

	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		var userName, userEmail sql.NullString
		if err := rows.Scan(&c.ID, &c.CardID, &c.UserID, &c.Content, &c.CreatedAt, &userName, &userEmail); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		c.UserName = userName.String
		c.UserEmail = userEmail.String
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (card_id, user_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.CardID, comment.UserID, comment.Content).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, content string) (*models.Comment, error) {
	query :=
		`UPDATE comments SET content = $2
		 WHERE id = $1
		 RETURNING id, card_id, user_id, content, created_at
		 `

	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id, content).Scan(&c.ID, &c.CardID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM comments WHERE id = $1 RETURNING card_id`

	var cardID int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return cardID, nil
}

func (r *PostgresRepository) LogActivity(ctx context.Context, cardID int64, userID *int64, action string) error {
	query :=
		`INSERT INTO activity_log (card_id, user_id, action)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, cardID, userID, action); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
