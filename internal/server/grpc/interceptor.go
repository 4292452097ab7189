package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const healthServicePrefix = "/grpc.health.v1.Health/"

// authenticate applies the identity gate to incoming metadata and returns a
// context carrying the resolved identity.
func (s *GRPCServer) authenticate(ctx context.Context) (context.Context, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(common.AuthorizationHeaderName)); len(values) > 0 {
			header = values[0]
		}
	}

	token, err := auth.BearerToken(header)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	u, err := s.identities.Identify(ctx, token)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrTokenExpired):
		return nil, status.Error(codes.Unauthenticated, "token has expired")
	case errors.Is(err, common.ErrInvalidToken):
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	case errors.Is(err, common.ErrUserNotFound):
		return nil, status.Error(codes.NotFound, "user not found")
	default:
		s.logger.Error(ctx, "identity lookup failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return auth.WithIdentity(ctx, u), nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	ctx, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type identityStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *identityStream) Context() context.Context { return w.ctx }

func (s *GRPCServer) accessTokenStreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(srv, ss)
	}

	ctx, err := s.authenticate(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &identityStream{ServerStream: ss, ctx: ctx})
}
