package navstate

import (
	"encoding/json"
	"fmt"
)

// Decode parses a serialized state of unknown trust. The stale field is the
// discriminant: an explicit stale=false decodes into a *NavigationState,
// anything else (stale absent or true) into a *PartialState. This is the only
// sanctioned way to turn bytes from a persistence or deep-link boundary back
// into a state value; it guarantees untrusted input can never pose as a full
// state.
func Decode(data []byte) (State, error) {
	var probe struct {
		Stale *bool `json:"stale"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("navstate: decode state: %w", err)
	}

	if probe.Stale != nil && !*probe.Stale {
		var full NavigationState
		if err := json.Unmarshal(data, &full); err != nil {
			return nil, fmt.Errorf("navstate: decode full state: %w", err)
		}
		return &full, nil
	}

	var partial PartialState
	if err := json.Unmarshal(data, &partial); err != nil {
		return nil, fmt.Errorf("navstate: decode partial state: %w", err)
	}
	return &partial, nil
}

// Encode serializes a state value to JSON using the wire vocabulary.
func Encode(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("navstate: encode state: %w", err)
	}
	return data, nil
}

// UnmarshalJSON decodes a route, dispatching the nested state field to the
// appropriate variant via Decode.
func (r *Route) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key    string          `json:"key"`
		Name   string          `json:"name"`
		Params Params          `json:"params"`
		State  json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Key = raw.Key
	r.Name = raw.Name
	r.Params = raw.Params
	r.State = nil

	if len(raw.State) > 0 && string(raw.State) != "null" {
		nested, err := Decode(raw.State)
		if err != nil {
			return fmt.Errorf("route %q: %w", raw.Key, err)
		}
		r.State = nested
	}
	return nil
}
