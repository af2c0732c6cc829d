package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec serializes plain Go message structs. It is registered under the
// name "json", replacing Connect's protobuf-only JSON codec, so handlers and
// clients agree on Content-Type application/json.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON returns the option that installs the JSON codec on a handler or client.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
