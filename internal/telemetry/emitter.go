package telemetry

import (
	"context"

	"trisa-demo/relay/internal/telemetry/domain"
)

// EventEmitter emits relay telemetry events (e.g. to OTel Logs or Kafka). Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *domain.Event) error
}

// Multi fans an event out to every non-nil emitter and returns the first error.
func Multi(emitters ...EventEmitter) EventEmitter {
	var out multi
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

type multi []EventEmitter

func (m multi) Emit(ctx context.Context, event *domain.Event) error {
	var first error
	for _, e := range m {
		if err := e.Emit(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
