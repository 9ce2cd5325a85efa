package ws

import (
	"bytes"
	"encoding/json"
	"fmt"

	"trisa-demo/relay/internal/relay/domain"
)

// Frame is one JSON text message on the browser socket.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Decode unmarshals the frame data into v. Data may be a JSON object or a string
// holding JSON-encoded text, which is how browser clients of the demo send it.
func (f Frame) Decode(v any) error {
	data := bytes.TrimSpace(f.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return domain.Usage(fmt.Sprintf("%s: missing data", f.Event))
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return domain.Usage(fmt.Sprintf("%s: %v", f.Event, err))
		}
		data = []byte(s)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return domain.Usage(fmt.Sprintf("%s: %v", f.Event, err))
	}
	return nil
}

// encode builds an outbound frame.
func encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: data})
}
