// Package apiconnect contains Connect handler and client constructors for the
// biteswipe.v1 services.
package apiconnect

import (
	"encoding/json"
	"fmt"
)

// Codec encodes messages as plain JSON. It registers under the "json" name,
// replacing Connect's protobuf-JSON codec, so application/json and
// application/connect+json requests both work with the plain structs in
// package api.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to decode %T: %w", msg, err)
	}
	return nil
}
