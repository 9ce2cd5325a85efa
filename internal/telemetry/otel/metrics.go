package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "trisa-demo/relay"

// Metrics are the relay's instruments. A nil *Metrics records nothing.
type Metrics struct {
	bindings metric.Int64UpDownCounter
	routed   metric.Int64Counter
	commands metric.Int64Counter
}

// NewMetrics creates the relay instruments on meter, or on the global MeterProvider when meter is nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}
	bindings, err := meter.Int64UpDownCounter("relay.bindings.active",
		metric.WithDescription("Open rVASP LiveUpdates bindings"))
	if err != nil {
		return nil, err
	}
	routed, err := meter.Int64Counter("relay.events.routed",
		metric.WithDescription("Events published to context rooms"))
	if err != nil {
		return nil, err
	}
	commands, err := meter.Int64Counter("relay.commands.sent",
		metric.WithDescription("Commands sent to rVASP servers"))
	if err != nil {
		return nil, err
	}
	return &Metrics{bindings: bindings, routed: routed, commands: commands}, nil
}

func (m *Metrics) BindingOpened(ctx context.Context) {
	if m != nil {
		m.bindings.Add(ctx, 1)
	}
}

func (m *Metrics) BindingClosed(ctx context.Context) {
	if m != nil {
		m.bindings.Add(ctx, -1)
	}
}

// EventRouted counts one published event by name (vasp_log_message, transaction, account).
func (m *Metrics) EventRouted(ctx context.Context, event string) {
	if m != nil {
		m.routed.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
	}
}

// CommandSent counts one command by RPC kind.
func (m *Metrics) CommandSent(ctx context.Context, rpc string) {
	if m != nil {
		m.commands.Add(ctx, 1, metric.WithAttributes(attribute.String("rpc", rpc)))
	}
}
