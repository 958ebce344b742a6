package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/worldcovers/internal/common"
)

// HealthChecker probes the server's grpc.health.v1 endpoint.
type HealthChecker struct {
	endpoint string
	conn     *grpc.ClientConn
	client   healthpb.HealthClient
}

func NewHealthChecker(endpoint string) (*HealthChecker, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &HealthChecker{endpoint: endpoint, conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Ping returns nil when the server reports SERVING and ErrUnavailable when
// it cannot be reached or is not serving.
func (h *HealthChecker) Ping(ctx context.Context) error {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: common.HealthServiceName})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (h *HealthChecker) Close() error {
	return h.conn.Close()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded, codes.NotFound:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
