// Package grpc runs the gRPC endpoint of the server: the standard health
// service, reporting SERVING while the database answers pings, and the
// agencydesk.v1.Identity service behind interceptors that apply the bearer
// identity gate to every non-health method.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/logging"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	pingInterval = 10 * time.Second
	pingTimeout  = 2 * time.Second
)

// Identifier runs the two-step gate: verify the token, then resolve its
// subject to a stored identity.
type Identifier interface {
	Identify(ctx context.Context, token string) (*models.User, error)
}

type UserLister interface {
	List(ctx context.Context) ([]*models.User, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address    string
	logger     logging.Logger
	identities Identifier
	users      UserLister
	db         Pinger
	health     *health.Server
}

func NewGRPCServer(a string, l logging.Logger, identities Identifier, users UserLister, db Pinger) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		identities: identities,
		users:      users,
		db:         db,
		health:     health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.accessTokenStreamInterceptor),
	)
	healthpb.RegisterHealthServer(srv, s.health)
	srv.RegisterService(&identityServiceDesc, &identityService{users: s.users})
	s.health.SetServingStatus(identityServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv
}

// checkDatabase updates the overall serving status from a single ping.
func (s *GRPCServer) checkDatabase(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn(ctx, "database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
}

func (s *GRPCServer) watchDatabase(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkDatabase(ctx)
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()
	s.checkDatabase(ctx)
	go s.watchDatabase(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	return srv.Serve(listen)
}
