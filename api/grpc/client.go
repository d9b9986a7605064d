package grpcapi

import (
	"context"
	"encoding/json"
	"fmt"

	"riftrewind/api/dto"
	"riftrewind/api/filters"
	recapservice "riftrewind/api/services/recap"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// RecapGRPCClient requests recaps from a remote server.
type RecapGRPCClient interface {
	GetRecap(ctx context.Context, region string, gameName string, gameTag string) (*dto.Recap, error)
}

type recapGRPCClient struct {
	*grpc.ClientConn
}

// NewRecapGRPCClient creates a new recap gRPC client.
func NewRecapGRPCClient(grpcConn *grpc.ClientConn) RecapGRPCClient {
	return &recapGRPCClient{ClientConn: grpcConn}
}

// GetRecap makes a gRPC request for the recap of a player.
func (c *recapGRPCClient) GetRecap(ctx context.Context, region string, gameName string, gameTag string) (*dto.Recap, error) {
	req, err := structpb.NewStruct(map[string]any{
		"region":   region,
		"gameName": gameName,
		"gameTag":  gameTag,
	})
	if err != nil {
		return nil, err
	}

	resp := new(structpb.Struct)
	if err := c.ClientConn.Invoke(ctx, getRecapMethod, req, resp); err != nil {
		return nil, errorFromStatus(err)
	}

	encoded, err := json.Marshal(resp.AsMap())
	if err != nil {
		return nil, fmt.Errorf("couldn't read the recap: %w", err)
	}

	var recap dto.Recap
	if err := json.Unmarshal(encoded, &recap); err != nil {
		return nil, fmt.Errorf("couldn't read the recap: %w", err)
	}
	return &recap, nil
}

// Convert the status back to the service errors.
func errorFromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("couldn't execute GetRecap: %w", err)
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", filters.ErrInvalidFilter, st.Message())
	case codes.NotFound:
		return recapservice.ErrPlayerNotFound
	case codes.ResourceExhausted:
		return recapservice.ErrRecapInProgress
	case codes.DeadlineExceeded:
		return fmt.Errorf("couldn't execute GetRecap: %w", context.DeadlineExceeded)
	default:
		return fmt.Errorf("couldn't execute GetRecap: %s", st.Message())
	}
}
