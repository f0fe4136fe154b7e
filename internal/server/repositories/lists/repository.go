package lists

import (
	"context"

	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Repository interface {
	GetByBoard(ctx context.Context, boardID int64) ([]models.List, error)
	Get(ctx context.Context, id int64) (*models.List, error)
	CountByBoard(ctx context.Context, boardID int64) (int, error)
	Create(ctx context.Context, list *models.List) (*models.List, error)
	Update(ctx context.Context, list *models.List) (*models.List, error)
	UpdatePosition(ctx context.Context, id int64, position int) error
	Delete(ctx context.Context, id int64) error
}
