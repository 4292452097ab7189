// Package httpapi exposes the AgencyDesk JSON API over HTTP using gin.
//
// Every route under /api except registration and login sits behind the
// identity gate: the bearer token is verified first, then its subject is
// resolved to a stored identity, which handlers read from the request
// context.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/logging"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

type Authenticator interface {
	SignUp(ctx context.Context, username, email, password, role string) (*services.Session, error)
	SignIn(ctx context.Context, username, password string) (*services.Session, error)
	Identify(ctx context.Context, token string) (*models.User, error)
}

type UserDirectory interface {
	List(ctx context.Context) ([]*models.User, error)
}

type ClientService interface {
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Update(ctx context.Context, id string, c *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, id string, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceService interface {
	Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, id string, inv *models.Invoice) (*models.Invoice, error)
	Delete(ctx context.Context, id string) error
	PresignAttachmentUpload(ctx context.Context, id string) (*models.AttachmentURL, error)
	PresignAttachmentDownload(ctx context.Context, id string) (*models.AttachmentURL, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// Deps are the services the API is built on.
type Deps struct {
	Auth      Authenticator
	Users     UserDirectory
	Clients   ClientService
	Projects  ProjectService
	Invoices  InvoiceService
	Dashboard DashboardService
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	deps    Deps
	origins []string
	engine  *gin.Engine
}

func NewHTTPServer(address string, l logging.Logger, deps Deps, corsOrigins []string) *HTTPServer {
	s := &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		deps:    deps,
		origins: corsOrigins,
	}
	s.engine = s.routes()
	return s
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), cors(s.origins))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	gated := api.Group("", s.requireIdentity)
	gated.GET("/auth/me", s.me)
	gated.GET("/team", s.team)
	gated.GET("/dashboard/stats", s.stats)

	gated.POST("/clients", s.createClient)
	gated.GET("/clients", s.listClients)
	gated.GET("/clients/:id", s.getClient)
	gated.PUT("/clients/:id", s.updateClient)
	gated.DELETE("/clients/:id", s.deleteClient)

	gated.POST("/projects", s.createProject)
	gated.GET("/projects", s.listProjects)
	gated.GET("/projects/:id", s.getProject)
	gated.PUT("/projects/:id", s.updateProject)
	gated.DELETE("/projects/:id", s.deleteProject)

	gated.POST("/invoices", s.createInvoice)
	gated.GET("/invoices", s.listInvoices)
	gated.GET("/invoices/:id", s.getInvoice)
	gated.PUT("/invoices/:id", s.updateInvoice)
	gated.DELETE("/invoices/:id", s.deleteInvoice)
	gated.POST("/invoices/:id/attachment", s.uploadAttachment)
	gated.GET("/invoices/:id/attachment", s.downloadAttachment)

	return r
}

// Handler returns the traced HTTP handler.
func (s *HTTPServer) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, "agencydesk-http")
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
