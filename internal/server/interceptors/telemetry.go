package interceptors

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"trisa-demo/relay/internal/telemetry"
	"trisa-demo/relay/internal/telemetry/domain"
)

// grpcStreamMetadata is the JSON shape stored in Event.Metadata for grpc_stream events.
type grpcStreamMetadata struct {
	FullMethod string `json:"full_method"`
	StatusCode string `json:"status_code"`
	DurationMs int64  `json:"duration_ms"`
	ClientIP   string `json:"client_ip"`
}

// TelemetryStream returns a stream server interceptor that emits a telemetry event when each stream ends.
// Best-effort: failures are logged and do not fail the stream. If emitter is nil, the interceptor no-ops.
func TelemetryStream(emitter telemetry.EventEmitter) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		if emitter == nil {
			return err
		}
		ctx := ss.Context()
		meta := grpcStreamMetadata{
			FullMethod: info.FullMethod,
			StatusCode: status.Code(err).String(),
			DurationMs: time.Since(start).Milliseconds(),
			ClientIP:   ClientIP(ctx),
		}
		metaJSON, _ := json.Marshal(meta)
		sessionID, _ := GetSessionID(ctx)
		vaspID, _ := GetVaspID(ctx)
		telemetry.EmitAsync(emitter, context.Background(), &domain.Event{
			SessionID: sessionID,
			VaspID:    vaspID,
			EventType: "grpc_stream",
			Source:    "grpc_interceptor",
			Metadata:  metaJSON,
			CreatedAt: time.Now().UTC(),
		})
		return err
	}
}
