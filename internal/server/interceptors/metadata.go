package interceptors

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	sessionHeader = "x-relay-session"
	vaspHeader    = "x-relay-vasp"
)

// SessionStreamClient returns a stream client interceptor that forwards the session and
// VASP ids set by WithSession as outgoing metadata.
func SessionStreamClient() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(outgoingSession(ctx), desc, cc, method, opts...)
	}
}

func outgoingSession(ctx context.Context) context.Context {
	var kv []string
	if id, ok := GetSessionID(ctx); ok && id != "" {
		kv = append(kv, sessionHeader, id)
	}
	if id, ok := GetVaspID(ctx); ok && id != "" {
		kv = append(kv, vaspHeader, id)
	}
	if len(kv) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

// SessionStreamServer returns a stream server interceptor that restores the session and
// VASP ids from incoming metadata into the handler's context.
func SessionStreamServer() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := incomingSession(ss.Context())
		return handler(srv, &contextStream{ServerStream: ss, ctx: ctx})
	}
}

func incomingSession(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	return WithSession(ctx, firstValue(md, sessionHeader), firstValue(md, vaspHeader))
}

// firstValue returns the trimmed first value for key, or "".
func firstValue(md metadata.MD, key string) string {
	vals := md.Get(key)
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}
