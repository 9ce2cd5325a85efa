package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"trisa-demo/relay/internal/relay/broadcast"
	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/relay/registry"
	"trisa-demo/relay/internal/rvasp/client"
	"trisa-demo/relay/internal/rvasp/mock"
	vaspdomain "trisa-demo/relay/internal/vasp/domain"
	"trisa-demo/relay/internal/vasp/fixtures"
	"trisa-demo/relay/internal/vasp/repository"
)

const (
	aliceID = "api.alice.vaspbot.net"
	bobID   = "api.bob.vaspbot.net"
	evilID  = "api.evil.vaspbot.net"
)

type harness struct {
	network *mock.Network
	hub     *broadcast.Hub
	relay   *Relay
}

// newHarness serves alice and bob on an in-process network and points the directory
// at them. evil's address is never served.
func newHarness(t *testing.T) *harness {
	t.Helper()
	vasps, err := fixtures.VASPs()
	require.NoError(t, err)
	wallets, err := fixtures.Wallets()
	require.NoError(t, err)

	network := mock.NewNetwork()
	addrs := map[string]string{
		aliceID: network.Serve("alice", mock.New(aliceID, mock.NewLedgerFromWallets(wallets))),
		bobID:   network.Serve("bob", mock.New(bobID, mock.NewLedgerFromWallets(wallets))),
		evilID:  "passthrough:///evil",
	}
	for _, v := range vasps {
		v.RVASPAddress = addrs[v.ID]
	}

	hub := broadcast.NewHub(nil)
	dialer := &client.Dialer{
		DialTimeout: 300 * time.Millisecond,
		SendTimeout: time.Second,
		Options:     []grpc.DialOption{network.DialOption()},
	}
	relay := New(repository.NewMemoryRepository(vasps, wallets), hub, registry.StreamDialer(dialer),
		WithClientName("relay-test"))

	t.Cleanup(func() {
		relay.Close()
		network.Close()
	})
	return &harness{network: network, hub: hub, relay: relay}
}

func (h *harness) connect(id string) *broadcast.ChanListener {
	l := broadcast.NewChanListener(id, 128)
	h.relay.Connect(l)
	return l
}

// waitFor returns the next envelope for event, skipping any others.
func waitFor(t *testing.T, l *broadcast.ChanListener, event string) any {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case env := <-l.C():
			if env.Event == event {
				return env.Payload
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s on %s", event, l.ID())
			return nil
		}
	}
}

// waitForLog returns the next log line with the given color.
func waitForLog(t *testing.T, l *broadcast.ChanListener, color string) domain.VaspLogMessage {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case env := <-l.C():
			if msg, ok := env.Payload.(domain.VaspLogMessage); ok && msg.ColorCode == color {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s log on %s", color, l.ID())
			return domain.VaspLogMessage{}
		}
	}
}

func originator(vaspID string) domain.VaspContext {
	return domain.VaspContext{ContextID: "c1", VaspID: vaspID, Role: domain.RoleOriginator}
}

func TestSelectContext_BindsAndAcknowledges(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))

	vctx, ok := h.relay.Binding("s1")
	require.True(t, ok)
	assert.Equal(t, "c1:"+aliceID, vctx.RoomKey())
	assert.Equal(t, 1, h.hub.Subscribers(vctx.RoomKey()))
	assert.Equal(t, 1, h.relay.Bindings())

	msg := waitFor(t, l, domain.EventVaspLogMessage).(domain.VaspLogMessage)
	assert.Contains(t, msg.MessageUnencrypted, "acknowledged")
	assert.Equal(t, aliceID, msg.VaspID)
	assert.Equal(t, "888888", msg.ColorCode)
}

func TestRequestTransfer_EndToEnd(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")
	watcher := h.connect("s2")

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))
	require.NoError(t, h.relay.SelectContext(context.Background(), "s2", originator(aliceID)))

	corr, err := h.relay.RequestTransfer(context.Background(), "s1", domain.TransactionRequest{
		ContextID:           "c1",
		OriginatorWalletID:  "alice@alicevasp.us",
		BeneficiaryWalletID: "robert@bobvasp.co.uk",
		BeneficiaryVaspID:   bobID,
		Amount:              10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, corr)

	for _, listener := range []*broadcast.ChanListener{l, watcher} {
		tx := waitFor(t, listener, domain.EventTransaction).(domain.Transaction)
		assert.Equal(t, corr, tx.TransactionID)
		assert.Equal(t, "1ASkqdo1hvydosVRvRv2j6eNnWpWLHucMX", tx.OriginatingWallet)
		assert.Equal(t, "18nxAxBktHZDrMoJ3N2fk9imLX8xNnYbNh", tx.BeneficiaryWallet)
		assert.Equal(t, aliceID, tx.OriginatingVaspID)
		assert.Equal(t, "AliceVASP", tx.OriginatingVaspDisplayName)
		assert.Equal(t, bobID, tx.BeneficiaryVaspID)
		assert.Equal(t, "BobVASP", tx.BeneficiaryVaspDisplayName)
		assert.Contains(t, tx.IVMS101Data, "robert@bobvasp.co.uk")
	}
}

func TestRequestTransfer_ServerErrorIsReported(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")
	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))

	_, err := h.relay.RequestTransfer(context.Background(), "s1", domain.TransactionRequest{
		OriginatorWalletID:  "nobody@alicevasp.us",
		BeneficiaryWalletID: "robert@bobvasp.co.uk",
		Amount:              1,
	})
	require.NoError(t, err, "the command is sent; the failure arrives on the stream")

	msg := waitForLog(t, l, "cc0000")
	assert.Contains(t, msg.MessageUnencrypted, "account not found")
}

func TestRequestTransfer_UsageErrors(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")
	valid := domain.TransactionRequest{OriginatorWalletID: "a", BeneficiaryWalletID: "b", Amount: 1}

	_, err := h.relay.RequestTransfer(context.Background(), "s1", valid)
	assert.ErrorIs(t, err, domain.ErrNoContext)
	msg := waitForLog(t, l, "cc0000")
	assert.Empty(t, msg.VaspID, "unbound sessions get errors directly")

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))

	zero := valid
	zero.Amount = 0
	_, err = h.relay.RequestTransfer(context.Background(), "s1", zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	msg = waitForLog(t, l, "cc0000")
	assert.Equal(t, aliceID, msg.VaspID)

	for _, amount := range []float64{1e-46, 3.5e38, math.Inf(1), math.NaN(), -2} {
		bad := valid
		bad.Amount = amount
		_, err = h.relay.RequestTransfer(context.Background(), "s1", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %g", amount)
	}

	noWallet := valid
	noWallet.BeneficiaryWalletID = ""
	_, err = h.relay.RequestTransfer(context.Background(), "s1", noWallet)
	assert.ErrorIs(t, err, domain.ErrUsage)

	otherContext := valid
	otherContext.ContextID = "c2"
	_, err = h.relay.RequestTransfer(context.Background(), "s1", otherContext)
	assert.ErrorIs(t, err, domain.ErrUsage)
	assert.Contains(t, err.Error(), "does not match the bound context")

	sameContext := valid
	sameContext.ContextID = "c1"
	_, err = h.relay.RequestTransfer(context.Background(), "s1", sameContext)
	assert.NoError(t, err)
}

func TestRequestAccount(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")

	assert.ErrorIs(t, h.relay.RequestAccount(context.Background(), "s1", domain.AccountRequest{Account: "alice@alicevasp.us"}), domain.ErrNoContext)

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))
	require.NoError(t, h.relay.RequestAccount(context.Background(), "s1", domain.AccountRequest{Account: "alice@alicevasp.us"}))

	status := waitFor(t, l, domain.EventAccount).(domain.AccountStatus)
	assert.Equal(t, "alice@alicevasp.us", status.Email)
	assert.Equal(t, 1000.0, status.Balance)
	assert.Equal(t, aliceID, status.VaspID)

	assert.ErrorIs(t, h.relay.RequestAccount(context.Background(), "s1", domain.AccountRequest{}), domain.ErrUsage)
}

func TestSelectContext_UnknownVASPKeepsBinding(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")

	err := h.relay.SelectContext(context.Background(), "s1", originator("api.nobody.vaspbot.net"))
	assert.ErrorIs(t, err, domain.ErrVASPNotFound)
	waitForLog(t, l, "cc0000")
	_, ok := h.relay.Binding("s1")
	assert.False(t, ok)

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))
	err = h.relay.SelectContext(context.Background(), "s1", originator("api.nobody.vaspbot.net"))
	assert.ErrorIs(t, err, domain.ErrLookup)

	vctx, ok := h.relay.Binding("s1")
	require.True(t, ok, "lookup failures abort before the old binding is torn down")
	assert.Equal(t, aliceID, vctx.VaspID)
}

func TestSelectContext_DialFailureLeavesSessionUnbound(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))
	err := h.relay.SelectContext(context.Background(), "s1", originator(evilID))
	assert.ErrorIs(t, err, domain.ErrConnection)

	_, ok := h.relay.Binding("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, h.hub.Subscribers("c1:"+aliceID))
	msg := waitForLog(t, l, "cc0000")
	assert.Contains(t, msg.MessageUnencrypted, "connection error")
}

func TestSelectContext_InvalidContext(t *testing.T) {
	h := newHarness(t)
	h.connect("s1")
	err := h.relay.SelectContext(context.Background(), "s1", domain.VaspContext{VaspID: aliceID, Role: domain.RoleOriginator})
	assert.ErrorIs(t, err, domain.ErrUsage)
}

func TestSelectContext_ReselectMovesRooms(t *testing.T) {
	h := newHarness(t)
	h.connect("s1")

	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))
	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", domain.VaspContext{ContextID: "c1", VaspID: bobID, Role: domain.RoleBeneficiary}))

	assert.Equal(t, 0, h.hub.Subscribers("c1:"+aliceID))
	assert.Equal(t, 1, h.hub.Subscribers("c1:"+bobID))
	assert.Equal(t, 1, h.relay.Bindings())
}

func TestDisconnect(t *testing.T) {
	h := newHarness(t)
	h.connect("s1")
	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))

	h.relay.Disconnect("s1")

	_, ok := h.relay.Binding("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, h.relay.Bindings())
	assert.Equal(t, 0, h.hub.Subscribers("c1:"+aliceID))
	assert.False(t, h.hub.Send("s1", domain.EventVaspLogMessage, nil), "listener is unregistered")

	// Disconnecting twice is harmless.
	h.relay.Disconnect("s1")
}

func TestStreamDrop_ReportsThenUnbinds(t *testing.T) {
	h := newHarness(t)
	l := h.connect("s1")
	require.NoError(t, h.relay.SelectContext(context.Background(), "s1", originator(aliceID)))
	waitFor(t, l, domain.EventVaspLogMessage)

	h.network.Stop("alice")

	msg := waitForLog(t, l, "cc0000")
	assert.Contains(t, msg.MessageUnencrypted, "stream error")
	assert.Eventually(t, func() bool {
		_, ok := h.relay.Binding("s1")
		return !ok
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, h.hub.Subscribers("c1:"+aliceID))
}

// flakyDirectory fails every lookup with err until healed.
type flakyDirectory struct {
	mu     sync.Mutex
	calls  int
	err    error
	healed *vaspdomain.VASP
}

func (d *flakyDirectory) GetVASP(_ context.Context, vaspID string) (*vaspdomain.VASP, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.healed != nil {
		return d.healed, nil
	}
	return nil, d.err
}

func (d *flakyDirectory) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func TestDisplayName_BacksOffAfterDirectoryFailure(t *testing.T) {
	dir := &flakyDirectory{err: errors.New("connection refused")}
	relay := New(dir, broadcast.NewHub(nil), nil)
	clock := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	relay.now = func() time.Time { return clock }

	assert.Equal(t, "", relay.displayName(bobID))
	assert.Equal(t, "", relay.displayName(bobID))
	assert.Equal(t, "", relay.displayName(bobID))
	assert.Equal(t, 1, dir.count(), "failed lookups are not retried within the backoff")

	dir.mu.Lock()
	dir.healed = &vaspdomain.VASP{ID: bobID, DisplayName: "BobVASP"}
	dir.mu.Unlock()
	clock = clock.Add(resolveBackoff)
	assert.Equal(t, "BobVASP", relay.displayName(bobID))
	assert.Equal(t, "BobVASP", relay.displayName(bobID))
	assert.Equal(t, 2, dir.count(), "resolved names are cached")
}

func TestDisplayName_CachesUnknownVASPs(t *testing.T) {
	dir := &flakyDirectory{err: &domain.LookupError{ID: evilID, Err: domain.ErrVASPNotFound}}
	relay := New(dir, broadcast.NewHub(nil), nil)

	assert.Equal(t, "", relay.displayName(evilID))
	assert.Equal(t, "", relay.displayName(evilID))
	assert.Equal(t, 1, dir.count())
}
