package interceptors

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingStreamClient logs each stream opened by a client with its target and outcome.
func LoggingStreamClient(logger logrus.FieldLogger) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		fields := logrus.Fields{"method": method, "target": cc.Target()}
		if id, ok := GetSessionID(ctx); ok {
			fields["session_id"] = id
		}
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			logger.WithFields(fields).WithField("code", status.Code(err).String()).Warn("rvasp: open stream failed")
			return nil, err
		}
		logger.WithFields(fields).Debug("rvasp: stream opened")
		return cs, nil
	}
}

// LoggingStreamServer logs each served stream when it ends, with duration and status code.
func LoggingStreamServer(logger logrus.FieldLogger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		entry := logger.WithFields(logrus.Fields{
			"method":      info.FullMethod,
			"code":        status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   ClientIP(ss.Context()),
		})
		if id, ok := GetSessionID(ss.Context()); ok && id != "" {
			entry = entry.WithField("session_id", id)
		}
		if err != nil {
			entry.WithError(err).Info("stream ended")
		} else {
			entry.Info("stream closed")
		}
		return err
	}
}

// ClientIP returns the client IP from gRPC metadata (x-forwarded-for, x-real-ip) or peer, or "unknown".
func ClientIP(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if s := firstValue(md, "x-forwarded-for"); s != "" {
			if i := strings.Index(s, ","); i > 0 {
				s = strings.TrimSpace(s[:i])
			}
			return s
		}
		if s := firstValue(md, "x-real-ip"); s != "" {
			return s
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		if host, _, err := net.SplitHostPort(p.Addr.String()); err == nil {
			return host
		}
		return p.Addr.String()
	}
	return "unknown"
}
