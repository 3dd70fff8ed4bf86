package navstate

import "slices"

// PartialState is a navigation state that has not been rehydrated: a spec of
// what the state should become, not a final result. Every field except Routes
// is optional. Partial states come from persistence, deep links and RESET
// actions, and must pass through a router's GetRehydratedState before anything
// trusts them.
type PartialState struct {
	Key        string         `json:"key,omitempty"`
	Index      *int           `json:"index,omitempty"`
	RouteNames []string       `json:"routeNames,omitempty"`
	Routes     []PartialRoute `json:"routes"`
	Type       string         `json:"type,omitempty"`

	// Stale distinguishes "absent" from an explicit value so round-trips
	// preserve the wire form. Anything other than an explicit false means
	// the state is stale; see MarkedStale.
	Stale *bool `json:"stale,omitempty"`

	History []HistoryEntry `json:"history,omitempty"`
}

// PartialRoute is a route inside a PartialState. Key is optional and gets
// assigned during rehydration; a nested state is recursively partial.
type PartialRoute struct {
	Key    string        `json:"key,omitempty"`
	Name   string        `json:"name"`
	Params Params        `json:"params,omitempty"`
	State  *PartialState `json:"state,omitempty"`
}

// InitialState is the shape callers provide to seed a navigator from scratch:
// a partial state with no keys anywhere. Structurally it is a PartialState;
// the alias keeps the two roles distinct at API boundaries.
type InitialState = PartialState

// MarkedStale reports whether this state still needs rehydration. Only an
// explicit stale=false marks a state as hydrated, so an absent field counts
// as stale.
func (s *PartialState) MarkedStale() bool {
	return s.Stale == nil || *s.Stale
}

// FindRouteByName returns the first partial route with the given name, or nil.
// Rehydration merges persisted routes into fresh ones by name.
func (s *PartialState) FindRouteByName(name string) *PartialRoute {
	for i := range s.Routes {
		if s.Routes[i].Name == name {
			return &s.Routes[i]
		}
	}
	return nil
}

// AsPartial converts a full state into the partial shape. Useful when a
// caller wants to reuse a full state as a rehydration spec, e.g. after the
// configured route names changed out from under a persisted tree.
func AsPartial(s *NavigationState) *PartialState {
	if s == nil {
		return nil
	}
	routes := make([]PartialRoute, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = PartialRoute{Key: r.Key, Name: r.Name, Params: r.Params}
		switch nested := r.State.(type) {
		case *PartialState:
			routes[i].State = nested
		case *NavigationState:
			routes[i].State = AsPartial(nested)
		}
	}
	idx := s.Index
	staleTrue := true
	return &PartialState{
		Key:        s.Key,
		Index:      &idx,
		RouteNames: slices.Clone(s.RouteNames),
		Routes:     routes,
		Type:       s.Type,
		Stale:      &staleTrue,
		History:    slices.Clone(s.History),
	}
}
