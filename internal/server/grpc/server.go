// Package grpc serves the standard grpc.health.v1 service. The serving
// status follows database reachability so clients can switch between online
// and offline mode.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
)

// ServiceName is the health service name reported alongside the overall
// ("") status.
const ServiceName = common.HealthServiceName

// DefaultCheckInterval is how often the database is pinged.
const DefaultCheckInterval = 10 * time.Second

// HealthServer publishes database reachability over grpc.health.v1.
type HealthServer struct {
	address  string
	logger   logging.Logger
	ping     func(ctx context.Context) error
	interval time.Duration
	health   *health.Server
}

func NewHealthServer(addr string, l logging.Logger, ping func(ctx context.Context) error, interval time.Duration) *HealthServer {
	if l == nil {
		l = logging.Discard()
	}
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &HealthServer{
		address:  addr,
		logger:   l.With("module", "grpc_server"),
		ping:     ping,
		interval: interval,
		health:   health.NewServer(),
	}
}

// Check pings the database once and updates the serving status.
func (s *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if s.ping != nil {
		pctx, cancel := context.WithTimeout(ctx, s.interval)
		err := s.ping(pctx)
		cancel()
		if err != nil {
			s.logger.Warn(ctx, "database unreachable", "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	return st
}

func (s *HealthServer) watch(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Check(ctx)
		}
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.Check(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
