package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/clients"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/invoices"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/projects"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeRepoManager hands out in-memory repositories regardless of the DBTX.
type fakeRepoManager struct {
	users    *fakeUsersRepo
	clients  *fakeClientsRepo
	projects *fakeProjectsRepo
	invoices *fakeInvoicesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    &fakeUsersRepo{byName: map[string]*models.User{}},
		clients:  &fakeClientsRepo{items: map[string]*models.Client{}},
		projects: &fakeProjectsRepo{items: map[string]*models.Project{}},
		invoices: &fakeInvoicesRepo{items: map[string]*models.Invoice{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Clients(dbx.DBTX) clients.Repository          { return m.clients }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository        { return m.projects }
func (m *fakeRepoManager) Invoices(dbx.DBTX) invoices.Repository        { return m.invoices }

type fakeUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User

	existsErr error
	createErr error
	getErr    error

	creates int
	reads   int
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *u
	cp.CreatedAt = time.Now()
	f.byName[u.UserName] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byName[username]
	return ok, nil
}

func (f *fakeUsersRepo) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, u := range f.byName {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*models.User, 0, len(f.byName))
	for _, u := range f.byName {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out, nil
}

type fakeClientsRepo struct {
	items map[string]*models.Client
	err   error
}

func (f *fakeClientsRepo) Create(_ context.Context, c *models.Client) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c.CreatedAt = time.Now()
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeClientsRepo) List(context.Context) ([]*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Client, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientsRepo) Get(_ context.Context, id string) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeClientsRepo) Update(_ context.Context, c *models.Client) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	old, ok := f.items[c.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.CreatedAt = old.CreatedAt
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeClientsRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeClientsRepo) Count(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.items), nil
}

type fakeProjectsRepo struct {
	items map[string]*models.Project
	err   error
}

func (f *fakeProjectsRepo) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.CreatedAt = time.Now()
	f.items[p.ID] = p
	return p, nil
}

func (f *fakeProjectsRepo) List(context.Context) ([]*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Project, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectsRepo) Get(_ context.Context, id string) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProjectsRepo) Update(_ context.Context, p *models.Project) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.items[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.items[p.ID] = p
	return p, nil
}

func (f *fakeProjectsRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProjectsRepo) Count(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.items), nil
}

func (f *fakeProjectsRepo) CountByStatus(_ context.Context, status string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, p := range f.items {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeInvoicesRepo struct {
	items   map[string]*models.Invoice
	last    int
	err     error
	locks   int
	nextErr error
}

func (f *fakeInvoicesRepo) Create(_ context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv.CreatedAt = time.Now()
	f.items[inv.ID] = inv
	f.last++
	return inv, nil
}

func (f *fakeInvoicesRepo) List(context.Context) ([]*models.Invoice, error) {
	out := make([]*models.Invoice, 0, len(f.items))
	for _, inv := range f.items {
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInvoicesRepo) Get(_ context.Context, id string) (*models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return inv, nil
}

func (f *fakeInvoicesRepo) Update(_ context.Context, inv *models.Invoice) (*models.Invoice, error) {
	old, ok := f.items[inv.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	inv.InvoiceNumber = old.InvoiceNumber
	inv.AttachmentKey = old.AttachmentKey
	f.items[inv.ID] = inv
	return inv, nil
}

func (f *fakeInvoicesRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeInvoicesRepo) LockNumbering(context.Context) error {
	f.locks++
	return nil
}

func (f *fakeInvoicesRepo) NextNumber(context.Context) (string, error) {
	if f.nextErr != nil {
		return "", f.nextErr
	}
	return fmt.Sprintf("INV-%05d", f.last+1), nil
}

func (f *fakeInvoicesRepo) SetAttachmentKey(_ context.Context, id, key string) error {
	inv, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	inv.AttachmentKey = &key
	return nil
}

func (f *fakeInvoicesRepo) CountByStatus(_ context.Context, statuses ...string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, inv := range f.items {
		for _, s := range statuses {
			if inv.Status == s {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeInvoicesRepo) SumAmountByStatus(_ context.Context, status string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var sum float64
	for _, inv := range f.items {
		if inv.Status == status {
			sum += inv.Amount
		}
	}
	return sum, nil
}
