package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"riftrewind/api/dto"
	"riftrewind/api/filters"
	recapservice "riftrewind/api/services/recap"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName    = "riftrewind.RecapService"
	getRecapMethod = "/" + ServiceName + "/GetRecap"
)

// RecapService is the recap access exposed over gRPC.
type RecapService interface {
	GetRecap(ctx context.Context, filter *filters.RecapFilter) (*dto.Recap, error)
}

// Logger used by the server.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// RecapServer is the server side of the recap service.
// The messages are plain structs: region, gameName and gameTag in, the recap out.
type RecapServer interface {
	GetRecap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RecapServiceDesc describes the recap service for the registration.
var RecapServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecapServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRecap",
			Handler:    getRecapHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "riftrewind/recap.proto",
}

func getRecapHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(RecapServer).GetRecap(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getRecapMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecapServer).GetRecap(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server definition.
type server struct {
	service RecapService
}

// NewServer creates the gRPC server with the recap and health services registered.
func NewServer(service RecapService, logger Logger) *grpc.Server {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	grpcServer.RegisterService(&RecapServiceDesc, &server{service: service})

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer
}

// GetRecap returns the recap of the requested player.
func (s *server) GetRecap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	filter, err := filters.NewRecapFilter(filters.RecapParams{
		Region:   fields["region"].GetStringValue(),
		GameName: fields["gameName"].GetStringValue(),
		GameTag:  fields["gameTag"].GetStringValue(),
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	recap, err := s.service.GetRecap(ctx, filter)
	if err != nil {
		return nil, status.Error(codeFromError(err), err.Error())
	}

	resp, err := recapToStruct(recap)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "couldn't encode the recap: %v", err)
	}
	return resp, nil
}

// Map the service errors to the gRPC codes.
func codeFromError(err error) codes.Code {
	switch {
	case errors.Is(err, filters.ErrInvalidFilter):
		return codes.InvalidArgument
	case errors.Is(err, recapservice.ErrPlayerNotFound):
		return codes.NotFound
	case errors.Is(err, recapservice.ErrRecapInProgress):
		return codes.ResourceExhausted
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// Convert the recap through its JSON form.
func recapToStruct(recap *dto.Recap) (*structpb.Struct, error) {
	encoded, err := json.Marshal(recap)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

// Log every call with its duration.
func loggingInterceptor(logger Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if logger != nil {
			if err != nil {
				logger.Errorf("%s failed after %s: %v", info.FullMethod, time.Since(start), err)
			} else {
				logger.Infof("%s served in %s", info.FullMethod, time.Since(start))
			}
		}
		return resp, err
	}
}
