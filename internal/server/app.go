// Package server initializes and runs the AgencyDesk server: it loads
// dependencies from configuration, applies database migrations, and runs
// the HTTP API and the gRPC health endpoint until a termination signal
// arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/logging"
	"github.com/dmitrijs2005/agencydesk/internal/server/auth"
	"github.com/dmitrijs2005/agencydesk/internal/server/config"
	"github.com/dmitrijs2005/agencydesk/internal/server/httpapi"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/agencydesk/internal/server/services"
	"github.com/dmitrijs2005/agencydesk/internal/server/telemetry"

	gs "github.com/dmitrijs2005/agencydesk/internal/server/grpc"
)

const serviceName = "agencydesk"

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        *services.AuthService
	users       *services.UserService
	deps        httpapi.Deps
}

// NewApp opens the database and builds every service from c. The
// database connection is not verified until Run.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	authority := auth.NewAuthority(c.SecretKey, c.AccessTokenValidityDuration)
	us, err := services.NewUserService(db, rm, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	as := services.NewAuthService(us, authority)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		auth:        as,
		users:       us,
		deps: httpapi.Deps{
			Auth:      as,
			Users:     us,
			Clients:   services.NewClientService(db, rm),
			Projects:  services.NewProjectService(db, rm),
			Invoices:  services.NewInvoiceService(db, rm, c),
			Dashboard: services.NewDashboardService(db, rm),
		},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.deps, app.config.CORSOrigins)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.auth, app.users, app.db)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run migrates the schema and serves until a signal arrives or a server
// fails. It returns the first startup error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()
	defer func() { _ = logging.Flush(app.logger) }()

	app.logger.Info(ctx, "Starting app...")

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, app.config.OTLPEndpoint, app.config.OTLPInsecure)
	if err != nil {
		app.logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			app.logger.Warn(sctx, "tracing shutdown", "error", err)
		}
	}()

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "Stopped")
	return nil
}
