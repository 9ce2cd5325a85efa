package broadcast

import "sync"

// Envelope is one delivered event.
type Envelope struct {
	Event   string
	Payload any
}

// ChanListener buffers delivered events on a channel. The first event that does not
// fit marks the listener overflowed: it refuses every later event and Overflowed is
// closed, so the consumer can drop the session instead of silently missing updates.
type ChanListener struct {
	id       string
	c        chan Envelope
	overflow chan struct{}
	once     sync.Once
}

// NewChanListener returns a listener with a buffer of size events.
func NewChanListener(id string, size int) *ChanListener {
	return &ChanListener{
		id:       id,
		c:        make(chan Envelope, size),
		overflow: make(chan struct{}),
	}
}

func (l *ChanListener) ID() string { return l.id }

// C is the delivery channel. It is never closed.
func (l *ChanListener) C() <-chan Envelope { return l.c }

// Overflowed is closed once an event has been refused because the buffer was full.
func (l *ChanListener) Overflowed() <-chan struct{} { return l.overflow }

func (l *ChanListener) Deliver(event string, payload any) bool {
	select {
	case <-l.overflow:
		return false
	default:
	}
	select {
	case l.c <- Envelope{Event: event, Payload: payload}:
		return true
	default:
		l.once.Do(func() { close(l.overflow) })
		return false
	}
}
