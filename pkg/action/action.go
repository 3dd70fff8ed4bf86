// Package action defines the discriminated action protocol routers consume.
// An action describes one requested state transition; the Type field is the
// discriminant and Payload carries the per-type arguments. Actions are plain
// data: dispatching them and deciding which navigator handles them is the
// composition layer's job (pkg/navtree), and the transition itself is the
// router's (pkg/router).
package action

import (
	"encoding/json"
	"fmt"

	"github.com/normanking/pathways/pkg/navstate"
)

// Type discriminates action shapes. The spellings are the wire protocol and
// never change; routers switch on them.
type Type string

// Actions every router understands (handled by the shared base behavior or
// by the concrete router).
const (
	TypeNavigate  Type = "NAVIGATE"
	TypeGoBack    Type = "GO_BACK"
	TypeReset     Type = "RESET"
	TypeSetParams Type = "SET_PARAMS"
)

// Stack-specific actions.
const (
	TypePush     Type = "PUSH"
	TypePop      Type = "POP"
	TypePopToTop Type = "POP_TO_TOP"
	TypeReplace  Type = "REPLACE"
)

// Tab- and drawer-specific actions.
const (
	TypeJumpTo       Type = "JUMP_TO"
	TypeOpenDrawer   Type = "OPEN_DRAWER"
	TypeCloseDrawer  Type = "CLOSE_DRAWER"
	TypeToggleDrawer Type = "TOGGLE_DRAWER"
)

// Action is one requested navigation transition.
//
// Source, when set, is the key of the route that dispatched the action:
// resolution starts at the navigator owning that route and walks upward.
// Target, when set, is the key of the navigator state meant to handle it:
// only that navigator treats the action as addressed to itself, everyone
// else passes it toward descendants.
type Action struct {
	Type    Type    `json:"type"`
	Payload Payload `json:"payload,omitzero"`
	Source  string  `json:"source,omitempty"`
	Target  string  `json:"target,omitempty"`
}

// Payload is the argument bag for all action types. Which fields matter is
// determined by the action type; unused fields stay zero and are omitted on
// the wire.
type Payload struct {
	// Name addresses a configured screen (NAVIGATE, PUSH, REPLACE, JUMP_TO).
	Name string `json:"name,omitempty"`

	// Key addresses an existing route instance (NAVIGATE by key).
	Key string `json:"key,omitempty"`

	// Params are passed to or merged into the addressed route.
	Params navstate.Params `json:"params,omitempty"`

	// Count is how many routes POP removes; values below 1 mean 1.
	Count int `json:"count,omitempty"`

	// State is the replacement tree for RESET. A partial state is passed
	// through stale so an outer caller rehydrates it.
	State navstate.State `json:"state,omitempty"`
}

// UnmarshalJSON decodes a payload, dispatching the embedded state (if any)
// to the right variant via navstate.Decode.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Key    string          `json:"key"`
		Params navstate.Params `json:"params"`
		Count  int             `json:"count"`
		State  json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = raw.Name
	p.Key = raw.Key
	p.Params = raw.Params
	p.Count = raw.Count
	p.State = nil

	if len(raw.State) > 0 && string(raw.State) != "null" {
		st, err := navstate.Decode(raw.State)
		if err != nil {
			return fmt.Errorf("action payload: %w", err)
		}
		p.State = st
	}
	return nil
}
