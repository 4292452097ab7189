package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/logging"
	"github.com/dmitrijs2005/agencydesk/internal/server/auth"
	"github.com/dmitrijs2005/agencydesk/internal/server/config"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/clients"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/invoices"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/projects"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/users"
	"github.com/dmitrijs2005/agencydesk/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() { gin.SetMode(gin.TestMode) }

// memUsers is an in-memory users.Repository.
type memUsers struct {
	mu   sync.Mutex
	rows []*models.User
	err  error
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.rows = append(m.rows, &cp)
	return &cp, nil
}

func (m *memUsers) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.rows {
		if match(u) {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := m.find(func(u *models.User) bool { return u.UserName == username })
	if err == common.ErrorNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := m.find(func(u *models.User) bool { return u.Email == email })
	if err == common.ErrorNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.UserName == login })
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *memUsers) List(context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]*models.User(nil), m.rows...), nil
}

func (m *memUsers) remove(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.rows {
		if u.UserName == username {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return
		}
	}
}

type usersOnlyManager struct{ users *memUsers }

func (m usersOnlyManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m usersOnlyManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m usersOnlyManager) Clients(dbx.DBTX) clients.Repository          { return nil }
func (m usersOnlyManager) Projects(dbx.DBTX) projects.Repository        { return nil }
func (m usersOnlyManager) Invoices(dbx.DBTX) invoices.Repository        { return nil }

type testEnv struct {
	server *HTTPServer
	users  *memUsers
	now    time.Time
}

// newTestEnv wires the real credential store and token authority over an
// in-memory users table. Record services are taken from deps.
func newTestEnv(t *testing.T, deps Deps) *testEnv {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	env := &testEnv{users: &memUsers{}, now: time.Now()}
	us, err := services.NewUserService(db, usersOnlyManager{users: env.users}, &config.Config{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	authority := auth.NewAuthority("test-secret", time.Hour, auth.WithClock(func() time.Time { return env.now }))

	deps.Auth = services.NewAuthService(us, authority)
	deps.Users = us

	env.server = NewHTTPServer("127.0.0.1:0", logging.Nop{}, deps, []string{"http://localhost:3000"})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signUp(t *testing.T, username, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenResponse](t, rec).AccessToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
