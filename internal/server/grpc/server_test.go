package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCheck_FollowsPing(t *testing.T) {
	var down atomic.Bool
	s := NewHealthServer("", nil, func(context.Context) error {
		if down.Load() {
			return errors.New("connection refused")
		}
		return nil
	}, time.Second)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, s.Check(context.Background()))
	down.Store(true)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, s.Check(context.Background()))
}

func TestServe_AnswersHealthCheck(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewHealthServer("", nil, func(context.Context) error { return nil }, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	cctx, ccancel := context.WithTimeout(ctx, 2*time.Second)
	defer ccancel()
	resp, err := healthpb.NewHealthClient(conn).Check(cctx, &healthpb.HealthCheckRequest{Service: ServiceName}, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	s := NewHealthServer("127.0.0.1:99999", nil, nil, 0)
	assert.Error(t, s.Run(context.Background()))
}
