package invoices

import (
	"context"

	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	Delete(ctx context.Context, id string) error
	// LockNumbering serializes invoice number allocation until the
	// surrounding transaction ends.
	LockNumbering(ctx context.Context) error
	NextNumber(ctx context.Context) (string, error)
	SetAttachmentKey(ctx context.Context, id, key string) error
	CountByStatus(ctx context.Context, statuses ...string) (int, error)
	SumAmountByStatus(ctx context.Context, status string) (float64, error)
}
