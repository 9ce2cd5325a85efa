// Package registry owns the rVASP transport bound to each browser session. A session
// has at most one binding; binding, unbinding and sending are serialized per session.
package registry

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/rvasp/api"
	"trisa-demo/relay/internal/rvasp/client"
)

// tombstoneTTL is how long a removed session id keeps rejecting Binds.
const tombstoneTTL = 10 * time.Minute

// Transport is an open LiveUpdates stream.
type Transport interface {
	Send(ctx context.Context, cmd *api.Command) error
	Recv() (*api.Message, error)
	Close() error
}

// Dialer opens transports.
type Dialer interface {
	Dial(ctx context.Context, address string) (Transport, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, address string) (Transport, error)

func (f DialerFunc) Dial(ctx context.Context, address string) (Transport, error) {
	return f(ctx, address)
}

// StreamDialer adapts an rVASP client dialer.
func StreamDialer(d *client.Dialer) Dialer {
	return DialerFunc(func(ctx context.Context, address string) (Transport, error) {
		s, err := d.Dial(ctx, address)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Hooks are called on binding lifecycle events. OnBind and OnUnbind run under the
// session lock; OnMessage and OnStreamError run on the binding's drain goroutine.
// None of them may call back into the registry for the same session synchronously,
// except the lock-free Lookup.
type Hooks struct {
	OnBind        func(b *Binding)
	OnUnbind      func(b *Binding)
	OnMessage     func(b *Binding, msg *api.Message)
	OnStreamError func(b *Binding, err error)
}

// Binding is a session's live transport and the context it was opened for.
type Binding struct {
	SessionID string
	Context   domain.VaspContext
	Address   string

	transport Transport
	done      chan struct{}
	closing   atomic.Bool

	mu          sync.Mutex
	correlation map[uint64]string
}

// Correlate returns the correlation id recorded for a command sent on this binding.
func (b *Binding) Correlate(commandID uint64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.correlation[commandID]
}

func (b *Binding) track(commandID uint64, correlationID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.correlation[commandID] = correlationID
}

func (b *Binding) forget(commandID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.correlation, commandID)
}

type session struct {
	mu      sync.Mutex
	binding *Binding
	current atomic.Pointer[Binding]
	removed bool
}

func (s *session) set(b *Binding) {
	s.binding = b
	s.current.Store(b)
}

// Registry maps session ids to bindings.
type Registry struct {
	dialer Dialer
	hooks  Hooks
	log    logrus.FieldLogger

	mu       sync.Mutex
	sessions map[string]*session
	// removed remembers recently removed session ids so a late Bind cannot revive them.
	removed map[string]time.Time
	closed  bool
	now     func() time.Time
}

// New returns an empty registry. log may be nil.
func New(dialer Dialer, hooks Hooks, log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		dialer:   dialer,
		hooks:    hooks,
		log:      log,
		sessions: make(map[string]*session),
		removed:  make(map[string]time.Time),
		now:      time.Now,
	}
}

func (r *Registry) session(sessionID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionID]
}

// open returns the session for sessionID, creating it unless the id was removed or the
// registry is closed.
func (r *Registry) open(sessionID string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, domain.Usage("relay is shutting down")
	}
	if _, ok := r.removed[sessionID]; ok {
		return nil, domain.Usage("session disconnected")
	}
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &session{}
		r.sessions[sessionID] = s
	}
	return s, nil
}

// Bind replaces the session's binding with a new transport to address. Any previous
// binding is fully torn down before the dial. If the dial fails the session is left
// unbound and a *domain.ConnectionError is returned.
func (r *Registry) Bind(ctx context.Context, sessionID string, vctx domain.VaspContext, address string) (*Binding, error) {
	s, err := r.open(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removed {
		return nil, domain.Usage("session disconnected")
	}

	if old := s.binding; old != nil {
		s.set(nil)
		r.teardown(old)
	}

	t, err := r.dialer.Dial(ctx, address)
	if err != nil {
		if !errors.Is(err, domain.ErrConnection) {
			err = &domain.ConnectionError{Address: address, Err: err}
		}
		return nil, err
	}

	b := &Binding{
		SessionID:   sessionID,
		Context:     vctx,
		Address:     address,
		transport:   t,
		done:        make(chan struct{}),
		correlation: make(map[uint64]string),
	}
	s.set(b)
	if r.hooks.OnBind != nil {
		r.hooks.OnBind(b)
	}
	go r.drain(b)

	r.log.WithFields(logrus.Fields{"session_id": sessionID, "room": vctx.RoomKey(), "address": address}).Info("session bound")
	return b, nil
}

// Unbind tears down the session's binding, if any. It is idempotent.
func (r *Registry) Unbind(sessionID string) {
	s := r.session(sessionID)
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.binding; b != nil {
		s.set(nil)
		r.teardown(b)
	}
}

// Remove unbinds the session and forgets it. The id stays tombstoned for
// tombstoneTTL: Binds racing with or following Remove fail with a usage error.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	now := r.now()
	for id, at := range r.removed {
		if now.Sub(at) > tombstoneTTL {
			delete(r.removed, id)
		}
	}
	r.removed[sessionID] = now
	r.mu.Unlock()
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = true
	if b := s.binding; b != nil {
		s.set(nil)
		r.teardown(b)
	}
}

// Lookup returns the session's current binding without waiting on the session lock.
func (r *Registry) Lookup(sessionID string) (*Binding, bool) {
	s := r.session(sessionID)
	if s == nil {
		return nil, false
	}
	b := s.current.Load()
	return b, b != nil
}

// Send pushes cmd on the session's binding. A non-empty correlationID is recorded
// against the command id before the send so the reply can be matched. It returns
// domain.ErrNoContext when the session is unbound.
func (r *Registry) Send(ctx context.Context, sessionID string, cmd *api.Command, correlationID string) (*Binding, error) {
	s := r.session(sessionID)
	if s == nil {
		return nil, domain.ErrNoContext
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.binding
	if b == nil {
		return nil, domain.ErrNoContext
	}
	if correlationID != "" {
		b.track(cmd.Id, correlationID)
	}
	if err := b.transport.Send(ctx, cmd); err != nil {
		b.forget(cmd.Id)
		return b, err
	}
	return b, nil
}

// Len returns the number of sessions with a live binding.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sessions {
		if s.current.Load() != nil {
			n++
		}
	}
	return n
}

// Close removes every session. Later Binds fail with a usage error.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.Remove(id)
	}
}

// teardown closes the transport, waits for the drain goroutine, then fires OnUnbind.
// Callers hold the session lock.
func (r *Registry) teardown(b *Binding) {
	b.closing.Store(true)
	if err := b.transport.Close(); err != nil {
		r.log.WithError(err).WithField("session_id", b.SessionID).Debug("transport close")
	}
	<-b.done
	if r.hooks.OnUnbind != nil {
		r.hooks.OnUnbind(b)
	}
	r.log.WithFields(logrus.Fields{"session_id": b.SessionID, "room": b.Context.RoomKey()}).Info("session unbound")
}

func (r *Registry) drain(b *Binding) {
	defer close(b.done)
	for {
		msg, err := b.transport.Recv()
		if err != nil {
			if b.closing.Load() {
				return
			}
			if errors.Is(err, io.EOF) || !errors.Is(err, domain.ErrStream) {
				err = &domain.StreamError{Address: b.Address, Err: err}
			}
			if r.hooks.OnStreamError != nil {
				r.hooks.OnStreamError(b, err)
			}
			go r.release(b)
			return
		}
		if r.hooks.OnMessage != nil {
			r.hooks.OnMessage(b, msg)
		}
	}
}

// release unbinds b after its stream failed, unless it was already replaced.
func (r *Registry) release(b *Binding) {
	s := r.session(b.SessionID)
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.binding != b {
		return
	}
	s.set(nil)
	r.teardown(b)
}
