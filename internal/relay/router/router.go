// Package router classifies messages received on rVASP bindings and publishes them to
// the binding's context room.
package router

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/rvasp/api"
	"trisa-demo/relay/internal/telemetry"
	telemetrydomain "trisa-demo/relay/internal/telemetry/domain"
	"trisa-demo/relay/internal/telemetry/otel"
)

// Sink receives routed events.
type Sink interface {
	Publish(room, event string, payload any) int
}

// Router publishes classified messages. Metrics and Emitter are optional.
type Router struct {
	sink    Sink
	metrics *otel.Metrics
	emitter telemetry.EventEmitter
	log     logrus.FieldLogger
	now     func() time.Time
}

// Option configures a Router.
type Option func(*Router)

func WithMetrics(m *otel.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

func WithEmitter(e telemetry.EventEmitter) Option {
	return func(r *Router) { r.emitter = e }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Router) { r.log = log }
}

// New returns a Router publishing to sink.
func New(sink Sink, opts ...Option) *Router {
	r := &Router{
		sink: sink,
		log:  logrus.StandardLogger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route classifies msg and publishes it to the origin's room. It returns the event name.
func (r *Router) Route(ctx context.Context, origin Origin, msg *api.Message) string {
	event, payload := Classify(origin, msg, r.now())
	room := origin.Context.RoomKey()
	n := r.sink.Publish(room, event, payload)

	r.metrics.EventRouted(ctx, event)
	r.log.WithFields(logrus.Fields{
		"session_id": origin.SessionID,
		"room":       room,
		"event":      event,
		"listeners":  n,
	}).Debug("routed message")

	if r.emitter != nil {
		meta, _ := json.Marshal(struct {
			Event   string `json:"event"`
			Payload any    `json:"payload"`
		}{event, payload})
		telemetry.EmitAsync(r.emitter, ctx, &telemetrydomain.Event{
			SessionID: origin.SessionID,
			Room:      room,
			VaspID:    origin.Context.VaspID,
			EventType: telemetrydomain.EventRouted,
			Source:    "router",
			Metadata:  meta,
		})
	}
	return event
}
