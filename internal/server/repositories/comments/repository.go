package comments

import (
	"context"

	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Repository interface {
	GetByCard(ctx context.Context, cardID int64) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Update(ctx context.Context, id int64, content string) (*models.Comment, error)
	// Delete removes a comment and returns the card it belonged to.
	Delete(ctx context.Context, id int64) (int64, error)
	LogActivity(ctx context.Context, cardID int64, userID *int64, action string) error
}
