package registry

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/rvasp/api"
)

// fakeTransport delivers messages pushed on in and fails Recv with the error pushed on fail.
type fakeTransport struct {
	address string
	in      chan *api.Message
	fail    chan error
	closed  chan struct{}
	once    sync.Once
	closes  atomic.Int32

	mu   sync.Mutex
	sent []*api.Command
}

func newFakeTransport(address string) *fakeTransport {
	return &fakeTransport{
		address: address,
		in:      make(chan *api.Message, 16),
		fail:    make(chan error, 1),
		closed:  make(chan struct{}),
	}
}

func (f *fakeTransport) Send(_ context.Context, cmd *api.Command) error {
	select {
	case <-f.closed:
		return &domain.StreamError{Address: f.address, Err: domain.ErrClosed}
	default:
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmd)
	return nil
}

func (f *fakeTransport) Recv() (*api.Message, error) {
	select {
	case msg := <-f.in:
		return msg, nil
	case err := <-f.fail:
		return nil, err
	case <-f.closed:
		return nil, &domain.StreamError{Address: f.address, Err: domain.ErrClosed}
	}
}

func (f *fakeTransport) Close() error {
	f.closes.Add(1)
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeTransport) Sent() []*api.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*api.Command(nil), f.sent...)
}

type fakeDialer struct {
	mu         sync.Mutex
	transports []*fakeTransport
	err        error
}

func (d *fakeDialer) Dial(_ context.Context, address string) (Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	t := newFakeTransport(address)
	d.transports = append(d.transports, t)
	return t, nil
}

func (d *fakeDialer) last() *fakeTransport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transports[len(d.transports)-1]
}

type recorder struct {
	mu       sync.Mutex
	events   []string
	messages chan *api.Message
	errs     chan error
	unbound  chan *Binding
}

func newRecorder() *recorder {
	return &recorder{
		messages: make(chan *api.Message, 16),
		errs:     make(chan error, 4),
		unbound:  make(chan *Binding, 4),
	}
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnBind:   func(b *Binding) { r.add("bind " + b.Context.RoomKey()) },
		OnUnbind: func(b *Binding) { r.add("unbind " + b.Context.RoomKey()); r.unbound <- b },
		OnMessage: func(_ *Binding, msg *api.Message) {
			r.messages <- msg
		},
		OnStreamError: func(_ *Binding, err error) { r.add("error"); r.errs <- err },
	}
}

var (
	aliceCtx = domain.VaspContext{ContextID: "c1", VaspID: "alice", Role: domain.RoleOriginator}
	bobCtx   = domain.VaspContext{ContextID: "c1", VaspID: "bob", Role: domain.RoleBeneficiary}
)

func TestBind_ForwardsMessages(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)
	defer r.Close()

	b, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	assert.Equal(t, "alice:4434", b.Address)
	assert.Equal(t, []string{"bind c1:alice"}, rec.Events())

	got, ok := r.Lookup("s1")
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, 1, r.Len())

	d.last().in <- &api.Message{Id: 7, Update: "hello"}
	select {
	case msg := <-rec.messages:
		assert.Equal(t, "hello", msg.Update)
	case <-time.After(time.Second):
		t.Fatal("message not forwarded")
	}
}

func TestBind_ReplacesPreviousBinding(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)
	defer r.Close()

	_, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	first := d.last()

	b, err := r.Bind(context.Background(), "s1", bobCtx, "bob:5434")
	require.NoError(t, err)

	assert.Equal(t, int32(1), first.closes.Load())
	assert.Equal(t, []string{"bind c1:alice", "unbind c1:alice", "bind c1:bob"}, rec.Events())
	got, _ := r.Lookup("s1")
	assert.Same(t, b, got)
	assert.Equal(t, 1, r.Len())
	assert.Empty(t, rec.errs, "local close must not be reported as a stream error")
}

func TestBind_DialFailureLeavesSessionUnbound(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)
	defer r.Close()

	_, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	first := d.last()

	d.err = errors.New("connection refused")
	_, err = r.Bind(context.Background(), "s1", bobCtx, "bob:5434")
	require.Error(t, err)

	var connErr *domain.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "bob:5434", connErr.Address)
	assert.Equal(t, int32(1), first.closes.Load())

	_, ok := r.Lookup("s1")
	assert.False(t, ok)
	_, err = r.Send(context.Background(), "s1", &api.Command{Id: 1}, "")
	assert.ErrorIs(t, err, domain.ErrNoContext)
}

func TestSend(t *testing.T) {
	d := &fakeDialer{}
	r := New(d, Hooks{}, nil)
	defer r.Close()

	_, err := r.Send(context.Background(), "nobody", &api.Command{Id: 1}, "")
	assert.ErrorIs(t, err, domain.ErrNoContext)

	_, err = r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)

	b, err := r.Send(context.Background(), "s1", &api.Command{Id: 3, Type: api.RPC_TRANSFER}, "corr-3")
	require.NoError(t, err)
	assert.Equal(t, "corr-3", b.Correlate(3))
	assert.Empty(t, b.Correlate(4))
	require.Len(t, d.last().Sent(), 1)
	assert.Equal(t, uint64(3), d.last().Sent()[0].Id)
}

func TestSend_FailureForgetsCorrelation(t *testing.T) {
	d := &fakeDialer{}
	r := New(d, Hooks{}, nil)
	defer r.Close()

	b, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	d.last().Close()

	_, err = r.Send(context.Background(), "s1", &api.Command{Id: 9}, "corr-9")
	assert.ErrorIs(t, err, domain.ErrStream)
	assert.Empty(t, b.Correlate(9))
}

func TestUnbind_IsIdempotent(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)
	defer r.Close()

	r.Unbind("s1")

	_, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	r.Unbind("s1")
	r.Unbind("s1")

	assert.Equal(t, []string{"bind c1:alice", "unbind c1:alice"}, rec.Events())
	assert.Equal(t, int32(1), d.last().closes.Load())
	assert.Equal(t, 0, r.Len())
}

func TestStreamFailure_ReportsThenUnbinds(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)
	defer r.Close()

	_, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	d.last().fail <- io.EOF

	select {
	case err := <-rec.errs:
		assert.ErrorIs(t, err, domain.ErrStream)
		assert.ErrorIs(t, err, io.EOF)
	case <-time.After(time.Second):
		t.Fatal("stream error not reported")
	}
	select {
	case <-rec.unbound:
	case <-time.After(time.Second):
		t.Fatal("binding not released")
	}

	_, ok := r.Lookup("s1")
	assert.False(t, ok)
	assert.Equal(t, []string{"bind c1:alice", "error", "unbind c1:alice"}, rec.Events())
}

func TestStreamFailure_AfterRebindKeepsNewBinding(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)
	defer r.Close()

	old, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	_, err = r.Bind(context.Background(), "s1", bobCtx, "bob:5434")
	require.NoError(t, err)

	// A stale release must not touch the replacement binding.
	r.release(old)

	b, ok := r.Lookup("s1")
	require.True(t, ok)
	assert.Equal(t, "bob", b.Context.VaspID)
}

func TestRemove_RejectsLaterBindOnSameSession(t *testing.T) {
	d := &fakeDialer{}
	rec := newRecorder()
	r := New(d, rec.hooks(), nil)

	_, err := r.Bind(context.Background(), "s1", aliceCtx, "alice:4434")
	require.NoError(t, err)
	_, err = r.Bind(context.Background(), "s2", bobCtx, "bob:5434")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	r.Remove("s1")
	_, ok := r.Lookup("s1")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	_, err = r.Bind(context.Background(), "s1", bobCtx, "bob:5434")
	assert.ErrorIs(t, err, domain.ErrUsage)
	assert.Contains(t, err.Error(), "session disconnected")
	_, ok = r.Lookup("s1")
	assert.False(t, ok, "a removed session must not be revived")
	assert.Len(t, d.transports, 2, "no dial for a removed session")

	r.Close()
	assert.Equal(t, 0, r.Len())
	for _, tr := range d.transports {
		assert.Equal(t, int32(1), tr.closes.Load())
	}

	_, err = r.Bind(context.Background(), "s3", aliceCtx, "alice:4434")
	assert.ErrorIs(t, err, domain.ErrUsage)
	assert.Equal(t, 0, r.Len())
	assert.Len(t, d.transports, 2, "no dial after Close")
}

func TestRemove_TombstonesExpire(t *testing.T) {
	d := &fakeDialer{}
	r := New(d, Hooks{}, nil)
	defer r.Close()
	clock := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	r.Remove("s1")
	clock = clock.Add(tombstoneTTL + time.Second)
	r.Remove("s2")

	r.mu.Lock()
	_, s1 := r.removed["s1"]
	_, s2 := r.removed["s2"]
	r.mu.Unlock()
	assert.False(t, s1, "expired tombstones are pruned")
	assert.True(t, s2)
}

func TestConcurrentBinds_OneBindingPerSession(t *testing.T) {
	d := &fakeDialer{}
	r := New(d, Hooks{}, nil)
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vctx := aliceCtx
			if i%2 == 1 {
				vctx = bobCtx
			}
			_, _ = r.Bind(context.Background(), "s1", vctx, vctx.VaspID+":1")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
	open := 0
	for _, tr := range d.transports {
		if tr.closes.Load() == 0 {
			open++
		}
	}
	assert.Equal(t, 1, open)
}
