package attachments

import (
	"context"

	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, cardID int64, a models.Attachment) error
	GetByCard(ctx context.Context, cardID int64) ([]models.Attachment, error)
	GetByList(ctx context.Context, listID int64) (map[int64][]models.Attachment, error)
	GetByStoredName(ctx context.Context, storedName string) (*models.Attachment, error)
}
