// Package attachments provides PostgreSQL-backed persistence for card
// attachment records. The file bytes themselves live in object storage;
// rows here only map original file names to stored object keys.
package attachments

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

func (r *PostgresRepository) Add(ctx context.Context, cardID int64, a models.Attachment) error {
	query :=
		`INSERT INTO attachments (card_id, file_name, stored_name, size)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := r.db.ExecContext(ctx, query, cardID, a.FileName, a.StoredName, a.Size); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByCard(ctx context.Context, cardID int64) ([]models.Attachment, error) {
	query :=
		`SELECT file_name, stored_name, size FROM attachments
		 WHERE card_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Attachment, 0)
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.FileName, &a.StoredName, &a.Size); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// GetByList loads the attachments of every card in a list in one query,
// keyed by card id. Used when assembling a list's cards for a response.
func (r *PostgresRepository) GetByList(ctx context.Context, listID int64) (map[int64][]models.Attachment, error) {
	query :=
		`SELECT a.card_id, a.file_name, a.stored_name, a.size
		 FROM attachments a
		 JOIN cards c ON c.id = a.card_id
		 WHERE c.list_id = $1
		 ORDER BY a.id
		 `

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.Attachment)
	for rows.Next() {
		var cardID int64
		var a models.Attachment
		if err := rows.Scan(&cardID, &a.FileName, &a.StoredName, &a.Size); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result[cardID] = append(result[cardID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByStoredName(ctx context.Context, storedName string) (*models.Attachment, error) {
	query :=
		`SELECT file_name, stored_name, size FROM attachments
		 WHERE stored_name = $1
		 `

	a := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, storedName).Scan(&a.FileName, &a.StoredName, &a.Size)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}
