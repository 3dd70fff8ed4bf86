package router

import (
	"slices"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
)

// baseStateForAction implements the transitions every navigator kind shares:
// SET_PARAMS and RESET. Concrete routers fall through to it after their own
// switch cases fail to match.
func baseStateForAction(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	switch act.Type {
	case action.TypeSetParams:
		return setParams(state, act)
	case action.TypeReset:
		return reset(state, act, opts)
	default:
		return nil
	}
}

// setParams merges the payload params into the route the action came from:
// the route whose key matches the action source, else the focused route. A
// source key that matches no route means the action belongs to some other
// navigator, so it stays unhandled.
func setParams(state *navstate.NavigationState, act action.Action) navstate.State {
	idx := state.Index
	if act.Source != "" {
		idx = state.IndexOfKey(act.Source)
		if idx == -1 {
			return nil
		}
	}

	routes := slices.Clone(state.Routes)
	routes[idx].Params = routes[idx].Params.Merge(act.Payload.Params)

	next := *state
	next.Routes = routes
	return &next
}

// reset substitutes a replacement tree for the navigator's state.
//
// A full-state payload is accepted only when it targets this navigator: its
// key and routeNames must match the current state exactly. A partial payload
// must carry at least one route, and every route name must be configured; it
// is returned still stale so the outer caller rehydrates it (and its nested
// states) through the proper routers. Anything else is unhandled.
func reset(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	switch payload := act.Payload.State.(type) {
	case *navstate.NavigationState:
		if payload.Key != state.Key || !slices.Equal(payload.RouteNames, state.RouteNames) {
			return nil
		}
		return payload

	case *navstate.PartialState:
		if len(payload.Routes) == 0 {
			return nil
		}
		for _, route := range payload.Routes {
			if !slices.Contains(opts.RouteNames, route.Name) {
				return nil
			}
		}
		staleTrue := true
		next := *payload
		next.Stale = &staleTrue
		return &next

	default:
		return nil
	}
}
