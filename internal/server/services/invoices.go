package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	sc "github.com/dmitrijs2005/agencydesk/internal/server/config"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type InvoiceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewInvoiceService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *InvoiceService {
	return &InvoiceService{db: db, repomanager: m, config: config}
}

// Create stores an invoice for an existing client and assigns it the next
// invoice number. Numbering and insert share one transaction.
func (s *InvoiceService) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if _, err := s.repomanager.Clients(s.db).Get(ctx, inv.ClientID); err != nil {
		return nil, clientErr(err)
	}

	inv.ID = uuid.NewString()
	inv.AttachmentKey = nil
	normalizeInvoice(inv)

	var created *models.Invoice
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Invoices(tx)

		if err := repo.LockNumbering(ctx); err != nil {
			return err
		}
		num, err := repo.NextNumber(ctx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = num

		created, err = repo.Create(ctx, inv)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}

	return created, nil
}

func (s *InvoiceService) List(ctx context.Context) ([]*models.Invoice, error) {
	list, err := s.repomanager.Invoices(s.db).List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := s.repomanager.Invoices(s.db).Get(ctx, id)
	return inv, invoiceErr(err)
}

func (s *InvoiceService) Update(ctx context.Context, id string, inv *models.Invoice) (*models.Invoice, error) {
	inv.ID = id
	normalizeInvoice(inv)
	updated, err := s.repomanager.Invoices(s.db).Update(ctx, inv)
	return updated, invoiceErr(err)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	return invoiceErr(s.repomanager.Invoices(s.db).Delete(ctx, id))
}

func normalizeInvoice(inv *models.Invoice) {
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusPending
	}
	if inv.Items == nil {
		inv.Items = []models.InvoiceItem{}
	}
}

func invoiceErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrInvoiceNotFound
	default:
		return storageErr(err)
	}
}
