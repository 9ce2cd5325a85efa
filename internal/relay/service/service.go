// Package service implements the browser-facing relay operations: selecting a VASP
// context, requesting transfers and account status, and disconnecting.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/relay/broadcast"
	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/relay/registry"
	"trisa-demo/relay/internal/relay/router"
	"trisa-demo/relay/internal/rvasp/api"
	"trisa-demo/relay/internal/rvasp/client"
	"trisa-demo/relay/internal/server/interceptors"
	"trisa-demo/relay/internal/telemetry"
	telemetrydomain "trisa-demo/relay/internal/telemetry/domain"
	"trisa-demo/relay/internal/telemetry/otel"
	vaspdomain "trisa-demo/relay/internal/vasp/domain"
)

const (
	// resolveTimeout bounds display name lookups made while routing.
	resolveTimeout = 2 * time.Second
	// resolveBackoff is how long a failed lookup is served as "" before retrying.
	resolveBackoff = 30 * time.Second
)

// Directory resolves VASP ids to directory entries. Unknown ids return an error
// wrapping domain.ErrVASPNotFound.
type Directory interface {
	GetVASP(ctx context.Context, vaspID string) (*vaspdomain.VASP, error)
}

// Relay connects browser sessions to rVASP bindings.
type Relay struct {
	directory Directory
	hub       *broadcast.Hub
	registry  *registry.Registry
	router    *router.Router
	builder   *client.Builder
	metrics   *otel.Metrics
	emitter   telemetry.EventEmitter
	log       logrus.FieldLogger
	now       func() time.Time

	mu       sync.RWMutex
	names    map[string]string
	failures map[string]time.Time
}

// Option configures a Relay.
type Option func(*Relay)

// WithMetrics records binding and command metrics.
func WithMetrics(m *otel.Metrics) Option {
	return func(r *Relay) { r.metrics = m }
}

// WithEmitter exports relay telemetry events.
func WithEmitter(e telemetry.EventEmitter) Option {
	return func(r *Relay) { r.emitter = e }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Relay) { r.log = log }
}

// WithClientName sets the client identifier stamped on rVASP commands.
func WithClientName(name string) Option {
	return func(r *Relay) { r.builder = client.NewBuilder(name) }
}

// New returns a Relay that dials rVASP servers with dialer and publishes to hub.
func New(directory Directory, hub *broadcast.Hub, dialer registry.Dialer, opts ...Option) *Relay {
	r := &Relay{
		directory: directory,
		hub:       hub,
		builder:   client.NewBuilder("trisa-demo-bff"),
		log:       logrus.StandardLogger(),
		now:       func() time.Time { return time.Now().UTC() },
		names:     make(map[string]string),
		failures:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(r)
	}
	routerOpts := []router.Option{router.WithLogger(r.log), router.WithMetrics(r.metrics)}
	if r.emitter != nil {
		routerOpts = append(routerOpts, router.WithEmitter(r.emitter))
	}
	r.router = router.New(hub, routerOpts...)
	r.registry = registry.New(dialer, registry.Hooks{
		OnBind:        r.onBind,
		OnUnbind:      r.onUnbind,
		OnMessage:     r.onMessage,
		OnStreamError: r.onStreamError,
	}, r.log)
	return r
}

// Connect registers a browser session's listener. Sessions receive nothing until they
// select a context, except failures reported directly to them.
func (r *Relay) Connect(l broadcast.Listener) {
	r.hub.Register(l)
	r.log.WithField("session_id", l.ID()).Info("session connected")
}

// SelectContext binds the session to the rVASP server of vctx.VaspID, replacing any
// previous binding. Lookup failures leave the current binding untouched; dial failures
// leave the session unbound.
func (r *Relay) SelectContext(ctx context.Context, sessionID string, vctx domain.VaspContext) error {
	if err := vctx.Validate(); err != nil {
		return r.fail(ctx, sessionID, err)
	}

	vasp, err := r.directory.GetVASP(ctx, vctx.VaspID)
	if err != nil {
		if !errors.Is(err, domain.ErrLookup) {
			err = &domain.LookupError{ID: vctx.VaspID, Err: err}
		}
		return r.fail(ctx, sessionID, err)
	}
	if vasp.RVASPAddress == "" {
		return r.fail(ctx, sessionID, &domain.LookupError{ID: vctx.VaspID, Err: errors.New("vasp has no rvasp address")})
	}
	r.remember(vasp)

	bindCtx := interceptors.WithSession(ctx, sessionID, vctx.VaspID)
	if _, err := r.registry.Bind(bindCtx, sessionID, vctx, vasp.RVASPAddress); err != nil {
		return r.fail(ctx, sessionID, err)
	}
	if err := r.send(ctx, sessionID, r.builder.NoOp(), ""); err != nil {
		return r.fail(ctx, sessionID, err)
	}
	return nil
}

// RequestTransfer sends a TRANSFER command on the session's binding and returns the
// correlation id attached to the resulting transaction event.
func (r *Relay) RequestTransfer(ctx context.Context, sessionID string, req domain.TransactionRequest) (string, error) {
	// The rVASP carries amounts as float32; validate what will actually be sent.
	amount := float32(req.Amount)
	if !(amount > 0) || req.Amount > math.MaxFloat32 {
		return "", r.fail(ctx, sessionID, domain.ErrInvalidAmount)
	}
	if req.OriginatorWalletID == "" || req.BeneficiaryWalletID == "" {
		return "", r.fail(ctx, sessionID, domain.Usage("originator and beneficiary wallets are required"))
	}
	b, ok := r.registry.Lookup(sessionID)
	if !ok {
		return "", r.fail(ctx, sessionID, domain.ErrNoContext)
	}
	if req.ContextID != "" && req.ContextID != b.Context.ContextID {
		return "", r.fail(ctx, sessionID, domain.Usage("transaction context does not match the bound context"))
	}

	originating := req.OriginatorVaspID
	if originating == "" {
		originating = b.Context.VaspID
	}
	cmd := r.builder.Transfer(&api.TransferRequest{
		Account:          req.OriginatorWalletID,
		Beneficiary:      req.BeneficiaryWalletID,
		Amount:           amount,
		OriginatingVasp:  originating,
		BeneficiaryVasp:  req.BeneficiaryVaspID,
		CheckBeneficiary: req.BeneficiaryVaspID != "",
	})
	correlationID := uuid.NewString()
	if err := r.send(ctx, sessionID, cmd, correlationID); err != nil {
		return "", r.fail(ctx, sessionID, err)
	}
	return correlationID, nil
}

// RequestAccount sends an ACCOUNT command on the session's binding.
func (r *Relay) RequestAccount(ctx context.Context, sessionID string, req domain.AccountRequest) error {
	if req.Account == "" {
		return r.fail(ctx, sessionID, domain.Usage("account is required"))
	}
	if err := r.send(ctx, sessionID, r.builder.Account(req.Account, req.NoTransactions), ""); err != nil {
		return r.fail(ctx, sessionID, err)
	}
	return nil
}

// Disconnect tears down the session's binding and forgets the session. Cleanup is
// complete when it returns.
func (r *Relay) Disconnect(sessionID string) {
	r.registry.Remove(sessionID)
	r.hub.UnsubscribeAll(sessionID)
	r.hub.Unregister(sessionID)
	r.log.WithField("session_id", sessionID).Info("session disconnected")
}

// Binding returns the session's current context, if bound.
func (r *Relay) Binding(sessionID string) (domain.VaspContext, bool) {
	b, ok := r.registry.Lookup(sessionID)
	if !ok {
		return domain.VaspContext{}, false
	}
	return b.Context, true
}

// Bindings returns the number of bound sessions.
func (r *Relay) Bindings() int {
	return r.registry.Len()
}

// Close tears down every binding.
func (r *Relay) Close() {
	r.registry.Close()
}

func (r *Relay) send(ctx context.Context, sessionID string, cmd *api.Command, correlationID string) error {
	b, err := r.registry.Send(ctx, sessionID, cmd, correlationID)
	if err != nil {
		return err
	}
	rpc := cmd.Type.String()
	r.metrics.CommandSent(ctx, rpc)
	r.emit(ctx, b, telemetrydomain.EventCommandSent, map[string]any{
		"rpc":            rpc,
		"command_id":     cmd.Id,
		"correlation_id": correlationID,
	})
	return nil
}

// fail reports err to the session and returns it.
func (r *Relay) fail(ctx context.Context, sessionID string, err error) error {
	b, _ := r.registry.Lookup(sessionID)
	r.report(ctx, sessionID, b, err)
	return err
}

// report delivers err as an ERROR log line: to b's room when bound, otherwise straight
// to the session.
func (r *Relay) report(ctx context.Context, sessionID string, b *registry.Binding, err error) {
	msg := domain.VaspLogMessage{
		Timestamp:          r.now().Format(time.RFC3339),
		MessageUnencrypted: err.Error(),
		ColorCode:          router.Color(domain.CategoryError),
	}
	log := r.log.WithError(err).WithField("session_id", sessionID)
	if b != nil {
		msg.VaspID = b.Context.VaspID
		r.hub.Publish(b.Context.RoomKey(), domain.EventVaspLogMessage, msg)
		log = log.WithField("room", b.Context.RoomKey())
	} else {
		r.hub.Send(sessionID, domain.EventVaspLogMessage, msg)
	}
	log.Warn("relay operation failed")

	if r.emitter != nil {
		meta, _ := json.Marshal(map[string]string{"error": err.Error()})
		ev := &telemetrydomain.Event{
			SessionID: sessionID,
			EventType: telemetrydomain.EventFailure,
			Source:    "relay",
			Metadata:  meta,
		}
		if b != nil {
			ev.Room = b.Context.RoomKey()
			ev.VaspID = b.Context.VaspID
		}
		telemetry.EmitAsync(r.emitter, ctx, ev)
	}
}

func (r *Relay) emit(ctx context.Context, b *registry.Binding, eventType string, meta any) {
	if r.emitter == nil {
		return
	}
	var raw json.RawMessage
	if meta != nil {
		raw, _ = json.Marshal(meta)
	}
	telemetry.EmitAsync(r.emitter, ctx, &telemetrydomain.Event{
		SessionID: b.SessionID,
		Room:      b.Context.RoomKey(),
		VaspID:    b.Context.VaspID,
		EventType: eventType,
		Source:    "relay",
		Metadata:  raw,
	})
}

func (r *Relay) onBind(b *registry.Binding) {
	r.hub.Subscribe(b.Context.RoomKey(), b.SessionID)
	r.metrics.BindingOpened(context.Background())
	r.emit(context.Background(), b, telemetrydomain.EventBind, map[string]string{"address": b.Address})
}

func (r *Relay) onUnbind(b *registry.Binding) {
	r.hub.Unsubscribe(b.Context.RoomKey(), b.SessionID)
	r.metrics.BindingClosed(context.Background())
	r.emit(context.Background(), b, telemetrydomain.EventUnbind, nil)
}

func (r *Relay) onMessage(b *registry.Binding, msg *api.Message) {
	r.router.Route(context.Background(), r.origin(b), msg)
}

func (r *Relay) onStreamError(b *registry.Binding, err error) {
	r.report(context.Background(), b.SessionID, b, err)
}

func (r *Relay) origin(b *registry.Binding) router.Origin {
	return router.Origin{
		SessionID:   b.SessionID,
		Context:     b.Context,
		DisplayName: r.displayName(b.Context.VaspID),
		Correlate:   b.Correlate,
		Resolve:     r.displayName,
	}
}

func (r *Relay) remember(v *vaspdomain.VASP) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[v.ID] = v.DisplayName
	delete(r.failures, v.ID)
}

// displayName returns the cached display name for vaspID, consulting the directory on
// a miss. Unknown ids resolve to "". Other lookup failures also resolve to "" and are
// not retried for resolveBackoff, so an unavailable directory does not stall routing.
func (r *Relay) displayName(vaspID string) string {
	if vaspID == "" {
		return ""
	}
	r.mu.RLock()
	name, ok := r.names[vaspID]
	failedAt, failed := r.failures[vaspID]
	r.mu.RUnlock()
	if ok {
		return name
	}
	if failed && r.now().Sub(failedAt) < resolveBackoff {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	v, err := r.directory.GetVASP(ctx, vaspID)
	if err != nil {
		notFound := errors.Is(err, domain.ErrVASPNotFound)
		r.mu.Lock()
		if notFound {
			r.names[vaspID] = ""
		} else {
			r.failures[vaspID] = r.now()
		}
		r.mu.Unlock()
		if !notFound {
			r.log.WithError(err).WithField("vasp_id", vaspID).Warn("display name lookup failed")
		}
		return ""
	}
	r.remember(v)
	return v.DisplayName
}
