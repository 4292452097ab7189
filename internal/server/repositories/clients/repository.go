package clients

import (
	"context"

	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Update(ctx context.Context, c *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
