package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(l *ChanListener) []Envelope {
	var out []Envelope
	for {
		select {
		case e := <-l.C():
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestHub_PublishReachesOnlyRoomSubscribers(t *testing.T) {
	h := NewHub(nil)
	a, b, c := NewChanListener("a", 8), NewChanListener("b", 8), NewChanListener("c", 8)
	for _, l := range []*ChanListener{a, b, c} {
		h.Register(l)
	}
	require.True(t, h.Subscribe("ctx:alice", "a"))
	require.True(t, h.Subscribe("ctx:alice", "b"))
	require.True(t, h.Subscribe("ctx:bob", "c"))

	assert.Equal(t, 2, h.Publish("ctx:alice", "vasp_log_message", "hello"))
	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
	assert.Empty(t, drain(c))

	assert.Equal(t, 0, h.Publish("ctx:nobody", "x", nil))
}

func TestHub_SubscribeUnknownListener(t *testing.T) {
	h := NewHub(nil)
	assert.False(t, h.Subscribe("room", "ghost"))
	assert.Equal(t, 0, h.Subscribers("room"))
}

func TestHub_UnsubscribeAndUnregister(t *testing.T) {
	h := NewHub(nil)
	a := NewChanListener("a", 8)
	h.Register(a)
	h.Subscribe("r1", "a")
	h.Subscribe("r2", "a")
	assert.ElementsMatch(t, []string{"r1", "r2"}, h.Rooms("a"))

	h.Unsubscribe("r1", "a")
	assert.Equal(t, 0, h.Publish("r1", "e", nil))
	assert.Equal(t, 1, h.Publish("r2", "e", nil))

	h.Unregister("a")
	assert.Equal(t, 0, h.Publish("r2", "e", nil))
	assert.False(t, h.Send("a", "e", nil))
	assert.Empty(t, h.Rooms("a"))
}

func TestHub_SendAddressesOneListener(t *testing.T) {
	h := NewHub(nil)
	a, b := NewChanListener("a", 8), NewChanListener("b", 8)
	h.Register(a)
	h.Register(b)

	assert.True(t, h.Send("a", "vasp_log_message", 1))
	assert.Len(t, drain(a), 1)
	assert.Empty(t, drain(b))
}

func TestHub_FullBufferDropsWithoutBlocking(t *testing.T) {
	h := NewHub(nil)
	a := NewChanListener("a", 1)
	h.Register(a)
	h.Subscribe("r", "a")
	assert.Equal(t, 1, h.Publish("r", "e", 1))
	assert.Equal(t, 0, h.Publish("r", "e", 2))
	got := drain(a)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Payload)
}

func TestChanListener_OverflowRefusesLaterEvents(t *testing.T) {
	a := NewChanListener("a", 1)
	select {
	case <-a.Overflowed():
		t.Fatal("fresh listener must not be overflowed")
	default:
	}

	require.True(t, a.Deliver("e", 1))
	require.False(t, a.Deliver("e", 2))
	select {
	case <-a.Overflowed():
	default:
		t.Fatal("dropped event must mark the listener overflowed")
	}

	// Room in the buffer again does not revive an overflowed listener.
	require.Len(t, drain(a), 1)
	assert.False(t, a.Deliver("e", 3))
	assert.False(t, a.Deliver("e", 4))
	assert.Empty(t, drain(a))
}

func TestHub_PreservesPerListenerOrder(t *testing.T) {
	h := NewHub(nil)
	a := NewChanListener("a", 100)
	h.Register(a)
	h.Subscribe("r", "a")
	for i := 0; i < 100; i++ {
		h.Publish("r", "e", i)
	}
	got := drain(a)
	require.Len(t, got, 100)
	for i, e := range got {
		assert.Equal(t, i, e.Payload)
	}
}

// unsubscribingListener removes another listener from the room while a publish is in flight.
type unsubscribingListener struct {
	*ChanListener
	hub    *Hub
	room   string
	target string
}

func (l *unsubscribingListener) Deliver(event string, payload any) bool {
	l.hub.Unsubscribe(l.room, l.target)
	return l.ChanListener.Deliver(event, payload)
}

func TestHub_UnsubscribedMidPublishIsSkipped(t *testing.T) {
	// Map iteration order is random, so run enough publishes that the victim is
	// ordered after the remover at least once; it must never receive after removal.
	for i := 0; i < 50; i++ {
		h := NewHub(nil)
		victim := NewChanListener("victim", 8)
		remover := &unsubscribingListener{ChanListener: NewChanListener("remover", 8), hub: h, room: "r", target: "victim"}
		h.Register(victim)
		h.Register(remover)
		h.Subscribe("r", "victim")
		h.Subscribe("r", "remover")

		delivered := h.Publish("r", "e", nil)
		got := drain(victim)
		if len(got) == 0 {
			assert.Equal(t, 1, delivered)
		} else {
			assert.Equal(t, 2, delivered, "victim may only receive if it was ordered before the remover")
		}
		assert.Equal(t, 1, h.Publish("r", "e", nil), "second publish reaches only the remover")
	}
}

func TestHub_SubscribeDuringPublishMissesInFlightEvent(t *testing.T) {
	h := NewHub(nil)
	late := NewChanListener("late", 8)
	h.Register(late)
	joiner := &joiningListener{ChanListener: NewChanListener("joiner", 8), hub: h}
	h.Register(joiner)
	h.Subscribe("r", "joiner")

	assert.Equal(t, 1, h.Publish("r", "e", nil))
	assert.Empty(t, drain(late))
	assert.Equal(t, 2, h.Publish("r", "e", nil))
}

type joiningListener struct {
	*ChanListener
	hub *Hub
}

func (l *joiningListener) Deliver(event string, payload any) bool {
	l.hub.Subscribe("r", "late")
	return l.ChanListener.Deliver(event, payload)
}
