package server

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"trisa-demo/relay/internal/rvasp/api"
	"trisa-demo/relay/internal/server/interceptors"
	"trisa-demo/relay/internal/telemetry"
)

// GRPCDeps holds optional dependencies for the rVASP gRPC server.
type GRPCDeps struct {
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
	// Emitter, if set, receives one event per LiveUpdates stream.
	Emitter telemetry.EventEmitter
	// Reflection registers the gRPC reflection service (development only).
	Reflection bool
}

// NewGRPCServer returns a server speaking the rVASP wire codec with session
// propagation, logging and tracing on every stream.
func NewGRPCServer(deps GRPCDeps) *grpc.Server {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	chain := []grpc.StreamServerInterceptor{
		interceptors.SessionStreamServer(),
		interceptors.LoggingStreamServer(log),
	}
	if deps.Emitter != nil {
		chain = append(chain, interceptors.TelemetryStream(deps.Emitter))
	}
	return grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainStreamInterceptor(chain...),
	)
}

// RegisterServices registers the TRISADemo service and gRPC health on s and returns
// the health server so callers can flip it to NOT_SERVING on shutdown.
//
// Service → implementation:
//   - rvasp.v1.TRISADemo   → internal/rvasp/mock
//   - grpc.health.v1.Health → google.golang.org/grpc/health
func RegisterServices(s *grpc.Server, rvasp api.TRISADemoServer, deps GRPCDeps) *health.Server {
	api.RegisterTRISADemoServer(s, rvasp)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	if deps.Reflection {
		reflection.Register(s)
	}
	return hs
}
