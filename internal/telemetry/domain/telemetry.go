// Package domain defines the relay telemetry event exported to OTel logs and Kafka.
package domain

import (
	"encoding/json"
	"time"
)

// Event types emitted by the relay.
const (
	EventBind        = "bind"
	EventUnbind      = "unbind"
	EventRouted      = "routed"
	EventCommandSent = "command_sent"
	EventFailure     = "failure"
)

// Event is a single relay telemetry record. Metadata is free-form JSON; for routed
// events it is the payload published to the room.
type Event struct {
	SessionID string          `json:"sessionId,omitempty"`
	Room      string          `json:"room,omitempty"`
	VaspID    string          `json:"vaspId,omitempty"`
	EventType string          `json:"eventType"`
	Source    string          `json:"source,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
