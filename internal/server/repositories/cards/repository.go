package cards

import (
	"context"

	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Repository interface {
	GetByList(ctx context.Context, listID int64) ([]models.Card, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	CountByList(ctx context.Context, listID int64) (int, error)
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	UpdateFields(ctx context.Context, card *models.Card) (*models.Card, error)
	UpdatePlacement(ctx context.Context, id, listID int64, position int) error
	UpdatePosition(ctx context.Context, id int64, position int) error
	Delete(ctx context.Context, id int64) error
}
