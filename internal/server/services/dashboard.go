package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/repomanager"
)

type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

// Stats aggregates the dashboard counters. Revenue counts paid invoices
// only; pending includes overdue.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		st  models.DashboardStats
		err error
	)

	if st.TotalClients, err = s.repomanager.Clients(s.db).Count(ctx); err != nil {
		return nil, storageErr(err)
	}

	projects := s.repomanager.Projects(s.db)
	if st.ActiveProjects, err = projects.CountByStatus(ctx, models.ProjectStatusActive); err != nil {
		return nil, storageErr(err)
	}
	if st.TotalProjects, err = projects.Count(ctx); err != nil {
		return nil, storageErr(err)
	}

	invoices := s.repomanager.Invoices(s.db)
	if st.TotalRevenue, err = invoices.SumAmountByStatus(ctx, models.InvoiceStatusPaid); err != nil {
		return nil, storageErr(err)
	}
	if st.PendingInvoices, err = invoices.CountByStatus(ctx, models.InvoiceStatusPending, models.InvoiceStatusOverdue); err != nil {
		return nil, storageErr(err)
	}

	return &st, nil
}
