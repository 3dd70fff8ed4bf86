// Package navstate defines the navigation state tree: the routes a navigator
// holds, which one is focused, and the partial/stale variants that cross
// persistence boundaries before they have been rehydrated.
//
// Values of these types are treated as immutable once produced. Routers and
// the composition layer always build new values and share untouched slices;
// nothing in this module mutates a state in place, and callers must not
// either. See pkg/router for the transition functions that produce them.
package navstate

import "slices"

// Params is the opaque key-value payload a route carries. The core never
// interprets params beyond merging maps; screens own their meaning.
type Params map[string]any

// Merge returns a new Params with over applied on top of p. Either side may
// be nil. The result is nil when both are, so zero-params routes stay zero.
func (p Params) Merge(over Params) Params {
	if p == nil && over == nil {
		return nil
	}
	merged := make(Params, len(p)+len(over))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

// History entry kinds. Routers that track focus history (tab, drawer) store
// these in NavigationState.History; the stack router leaves History empty.
const (
	HistoryRoute  = "route"
	HistoryDrawer = "drawer"
)

// Drawer status values recorded in drawer history entries.
const (
	DrawerOpen   = "open"
	DrawerClosed = "closed"
)

// HistoryEntry records one focus-history event for routers that keep history.
// Kind HistoryRoute references a route by key; kind HistoryDrawer records the
// drawer status at that point.
type HistoryEntry struct {
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Status string `json:"status,omitempty"`
}

// Route is one screen instance inside a navigator. Its key is generated once
// when the route is created and never changes; its name refers to a
// statically configured screen. A route may own a nested navigator's state.
type Route struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Params Params `json:"params,omitempty"`

	// State is the nested child navigator's state, if this route hosts one.
	// Before the child has been rehydrated it is a *PartialState; afterwards
	// a *NavigationState. It is exclusively owned by this route.
	State State `json:"state,omitempty"`
}

// NavigationState is a fully hydrated navigator state. All invariants hold:
// Index addresses Routes, every route name appears in RouteNames, Key is set
// and immutable, and Stale is false. Only routers produce values of this
// type; everything else treats them as read-only.
type NavigationState struct {
	Key        string   `json:"key"`
	Index      int      `json:"index"`
	RouteNames []string `json:"routeNames"`
	Routes     []Route  `json:"routes"`

	// Type tags the navigator kind ("stack", "tab", "drawer"). A persisted
	// state only rehydrates into a navigator of the same type; on mismatch
	// the state is discarded and a fresh initial state is built.
	Type string `json:"type"`

	// Stale is always false on a full state. It is serialized explicitly so
	// consumers on the other side of a persistence boundary can tell a
	// trusted state from a partial one.
	Stale bool `json:"stale"`

	// History is the focus history kept by tab-like routers, newest last.
	History []HistoryEntry `json:"history,omitempty"`
}

// State is the sum of the two state variants: *NavigationState (full,
// trusted) and *PartialState (spec/intent, requires rehydration). Consumers
// type-switch on it; a nil State from a router means "action unhandled".
type State interface {
	stateVariant()
}

func (*NavigationState) stateVariant() {}
func (*PartialState) stateVariant()    {}

// FocusedRoute returns a copy of the route Index points at.
// The state must be valid; an out-of-range index panics like any slice access.
func (s *NavigationState) FocusedRoute() Route {
	return s.Routes[s.Index]
}

// IndexOfKey returns the position of the route with the given key, or -1.
func (s *NavigationState) IndexOfKey(key string) int {
	return slices.IndexFunc(s.Routes, func(r Route) bool { return r.Key == key })
}

// LastIndexOfName returns the position of the topmost route with the given
// name, or -1. Stack navigation resolves names from the top down.
func (s *NavigationState) LastIndexOfName(name string) int {
	for i := len(s.Routes) - 1; i >= 0; i-- {
		if s.Routes[i].Name == name {
			return i
		}
	}
	return -1
}

// HasRouteName reports whether name is one of the configured route names.
func (s *NavigationState) HasRouteName(name string) bool {
	return slices.Contains(s.RouteNames, name)
}
