// Package ws is the browser-facing WebSocket gateway. Each connection is one relay
// session: inbound frames become relay operations and events published to the
// session's room are written back as frames.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/relay/broadcast"
	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/relay/router"
)

const (
	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Send pings at this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024

	defaultWriteTimeout = 10 * time.Second
	defaultSendBuffer   = 64
)

// Relay is the session-facing relay API.
type Relay interface {
	Connect(l broadcast.Listener)
	SelectContext(ctx context.Context, sessionID string, vctx domain.VaspContext) error
	RequestTransfer(ctx context.Context, sessionID string, req domain.TransactionRequest) (string, error)
	RequestAccount(ctx context.Context, sessionID string, req domain.AccountRequest) error
	Disconnect(sessionID string)
}

// Config tunes the gateway. Zero values use defaults.
type Config struct {
	WriteTimeout time.Duration
	SendBuffer   int
	// AllowedOrigins lists accepted Origin headers; "*" or empty accepts any.
	AllowedOrigins []string
}

// Gateway upgrades HTTP requests and serves one relay session per connection.
type Gateway struct {
	relay    Relay
	cfg      Config
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewGateway returns a gateway for relay. log may be nil.
func NewGateway(relay Relay, cfg Config, log logrus.FieldLogger) *Gateway {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}
	g := &Gateway{relay: relay, cfg: cfg, log: log}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     g.checkOrigin,
	}
	return g
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(g.cfg.AllowedOrigins) == 0 || slices.Contains(g.cfg.AllowedOrigins, "*") {
		return true
	}
	return slices.Contains(g.cfg.AllowedOrigins, origin)
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).WithField("remote_addr", r.RemoteAddr).Debug("websocket upgrade failed")
		return
	}
	sessionID := uuid.NewString()
	log := g.log.WithFields(logrus.Fields{"session_id": sessionID, "remote_addr": r.RemoteAddr})

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	s := &session{
		id:       sessionID,
		conn:     conn,
		listener: broadcast.NewChanListener(sessionID, g.cfg.SendBuffer),
		relay:    g.relay,
		cfg:      g.cfg,
		log:      log,
	}
	g.relay.Connect(s.listener)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump(ctx)
	}()

	s.readLoop(ctx)
	g.relay.Disconnect(sessionID)
	cancel()
	<-done
	_ = conn.Close()
}

type session struct {
	id       string
	conn     *websocket.Conn
	listener *broadcast.ChanListener
	relay    Relay
	cfg      Config
	log      logrus.FieldLogger
}

// readLoop handles inbound frames in order until the peer goes away.
func (s *session) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		typ, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Info("websocket closed unexpectedly")
			}
			return
		}
		if typ != websocket.TextMessage {
			s.reject(domain.Usage("frames must be JSON text"))
			continue
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			s.reject(domain.Usage("malformed frame"))
			continue
		}
		s.handle(ctx, f)
	}
}

func (s *session) handle(ctx context.Context, f Frame) {
	var err error
	switch f.Event {
	case domain.EventVaspContext:
		var vctx domain.VaspContext
		if err = f.Decode(&vctx); err != nil {
			break
		}
		_ = s.relay.SelectContext(ctx, s.id, vctx)
		return
	case domain.EventTransactionRequest:
		var req domain.TransactionRequest
		if err = f.Decode(&req); err != nil {
			break
		}
		_, _ = s.relay.RequestTransfer(ctx, s.id, req)
		return
	case domain.EventAccountRequest:
		var req domain.AccountRequest
		if err = f.Decode(&req); err != nil {
			break
		}
		_ = s.relay.RequestAccount(ctx, s.id, req)
		return
	default:
		err = domain.Usage("unknown event " + f.Event)
	}
	s.reject(err)
}

// reject reports a frame the relay never saw.
func (s *session) reject(err error) {
	s.log.WithError(err).Debug("rejected frame")
	s.listener.Deliver(domain.EventVaspLogMessage, domain.VaspLogMessage{
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		MessageUnencrypted: err.Error(),
		ColorCode:          router.Color(domain.CategoryError),
	})
}

// writePump writes delivered events and keepalive pings until ctx is done.
func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(s.cfg.WriteTimeout))
			return
		case <-s.listener.Overflowed():
			// A session that cannot keep up would silently miss room events; drop it.
			s.log.WithField("send_buffer", s.cfg.SendBuffer).Warn("websocket send buffer overflowed, closing session")
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "send buffer overflow"),
				time.Now().Add(s.cfg.WriteTimeout))
			_ = s.conn.Close()
			return
		case env := <-s.listener.C():
			msg, err := encode(env.Event, env.Payload)
			if err != nil {
				s.log.WithError(err).WithField("event", env.Event).Error("encode frame")
				continue
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.log.WithError(err).Debug("websocket write failed")
				_ = s.conn.Close()
				return
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.cfg.WriteTimeout)); err != nil {
				_ = s.conn.Close()
				return
			}
		}
	}
}
