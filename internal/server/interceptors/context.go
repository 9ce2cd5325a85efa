package interceptors

import "context"

type contextKey struct{ name string }

var (
	sessionIDKey = contextKey{"session_id"}
	vaspIDKey    = contextKey{"vasp_id"}
)

// WithSession returns a context carrying the browser session id and the VASP it is bound to.
// Client interceptors forward these as metadata; server interceptors restore them.
func WithSession(ctx context.Context, sessionID, vaspID string) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey, sessionID)
	ctx = context.WithValue(ctx, vaspIDKey, vaspID)
	return ctx
}

// GetSessionID returns the session_id from context and true if set; otherwise "", false.
func GetSessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok
}

// GetVaspID returns the vasp_id from context and true if set; otherwise "", false.
func GetVaspID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(vaspIDKey).(string)
	return v, ok
}
