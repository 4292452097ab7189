package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/clients"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/invoices"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/projects"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Clients(db dbx.DBTX) clients.Repository
	Projects(db dbx.DBTX) projects.Repository
	Invoices(db dbx.DBTX) invoices.Repository
}
