package grpc

import (
	"context"

	"github.com/dmitrijs2005/agencydesk/internal/server/auth"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	identityServiceName = "agencydesk.v1.Identity"
	identityMeMethod    = "/" + identityServiceName + "/Me"
	identityTeamMethod  = "/" + identityServiceName + "/Team"
)

// IdentityServer is the gated identity service. Users are sent as
// google.protobuf.Struct values with the same fields as the REST summary
// (id, username, email, role).
type IdentityServer interface {
	Me(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	Team(in *emptypb.Empty, stream grpc.ServerStream) error
}

// identityServiceDesc is written by hand: the service only uses well-known
// types, so there is no generated package for it.
var identityServiceDesc = grpc.ServiceDesc{
	ServiceName: identityServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Me", Handler: identityMeHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Team", Handler: identityTeamHandler, ServerStreams: true},
	},
	Metadata: "agencydesk/v1/identity.proto",
}

func identityMeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Me(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: identityMeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Me(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func identityTeamHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(IdentityServer).Team(in, stream)
}

// identityService reads the identity the gate attached to the context.
type identityService struct {
	users UserLister
}

func (s *identityService) Me(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	return summaryStruct(u)
}

func (s *identityService) Team(_ *emptypb.Empty, stream grpc.ServerStream) error {
	if _, ok := auth.IdentityFromContext(stream.Context()); !ok {
		return status.Error(codes.Unauthenticated, "missing token")
	}

	list, err := s.users.List(stream.Context())
	if err != nil {
		return status.Error(codes.Internal, "internal error")
	}
	for _, u := range list {
		msg, err := summaryStruct(u)
		if err != nil {
			return err
		}
		if err := stream.SendMsg(msg); err != nil {
			return err
		}
	}
	return nil
}

func summaryStruct(u *models.User) (*structpb.Struct, error) {
	sum := u.Summary()
	msg, err := structpb.NewStruct(map[string]any{
		"id":       sum.ID,
		"username": sum.Username,
		"email":    sum.Email,
		"role":     sum.Role,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return msg, nil
}
