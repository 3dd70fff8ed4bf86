package router

import (
	"slices"

	"github.com/normanking/pathways/internal/keygen"
	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
)

// StackOptions configures a stack router.
type StackOptions struct {
	// InitialRouteName is the screen the stack starts on. Empty means the
	// first configured route name.
	InitialRouteName string
}

// Stack is the router for last-in-first-out navigators: screens push onto a
// stack and going back pops them.
//
// Tie-break policies, chosen deliberately:
//   - Route-names change: surviving routes keep their position; if the
//     focused route is dropped, focus clamps to min(old index, last route),
//     i.e. toward the previous route.
//   - NAVIGATE to a name already in the stack unwinds to its topmost
//     occurrence instead of pushing a duplicate, merging params.
//   - Focus-by-key pops everything above the focused route, so the focused
//     route is always the top of the stack.
type Stack struct {
	opts StackOptions
}

// NewStack returns a stack router.
func NewStack(opts StackOptions) *Stack {
	return &Stack{opts: opts}
}

// Type returns "stack".
func (r *Stack) Type() string { return StackType }

// InitialRouteName returns the configured initial route name, if any.
func (r *Stack) InitialRouteName() string { return r.opts.InitialRouteName }

// GetInitialState builds a stack holding exactly the initial route.
func (r *Stack) GetInitialState(opts ConfigOptions) *navstate.NavigationState {
	name, _ := resolveInitialRoute(opts, r.opts.InitialRouteName)
	return &navstate.NavigationState{
		Key:        keygen.New(StackType),
		Index:      0,
		RouteNames: slices.Clone(opts.RouteNames),
		Routes:     []navstate.Route{newRoute(opts, name, nil)},
		Type:       StackType,
	}
}

// GetRehydratedState repairs a partial or stale state. Routes whose name is
// no longer configured are dropped, missing route keys are assigned, static
// initial params sit under persisted params, and focus lands on the last
// surviving route. An empty result falls back to the initial state. A state
// that is already valid for this router passes through untouched.
func (r *Stack) GetRehydratedState(st navstate.State, opts ConfigOptions) *navstate.NavigationState {
	partial := asRehydratable(st, StackType)
	if partial == nil {
		return st.(*navstate.NavigationState)
	}

	routes := make([]navstate.Route, 0, len(partial.Routes))
	for _, route := range partial.Routes {
		if !slices.Contains(opts.RouteNames, route.Name) {
			continue
		}
		key := route.Key
		if key == "" {
			key = keygen.New(route.Name)
		}
		hydrated := navstate.Route{
			Key:    key,
			Name:   route.Name,
			Params: opts.RouteParamList[route.Name].Merge(route.Params),
		}
		if route.State != nil {
			hydrated.State = route.State
		}
		routes = append(routes, hydrated)
	}

	if len(routes) == 0 {
		return r.GetInitialState(opts)
	}

	return &navstate.NavigationState{
		Key:        keygen.New(StackType),
		Index:      len(routes) - 1,
		RouteNames: slices.Clone(opts.RouteNames),
		Routes:     routes,
		Type:       StackType,
	}
}

// GetStateForRouteNamesChange drops routes whose name vanished and clamps
// the focus toward the previous route. A stack never gains routes from new
// names alone, but it must never be empty either, so losing every route
// rebuilds the initial one.
func (r *Stack) GetStateForRouteNamesChange(state *navstate.NavigationState, opts ConfigOptions) *navstate.NavigationState {
	routes := make([]navstate.Route, 0, len(state.Routes))
	for _, route := range state.Routes {
		if slices.Contains(opts.RouteNames, route.Name) {
			routes = append(routes, route)
		}
	}
	if len(routes) == 0 {
		name, _ := resolveInitialRoute(opts, r.opts.InitialRouteName)
		routes = append(routes, newRoute(opts, name, nil))
	}

	next := *state
	next.RouteNames = slices.Clone(opts.RouteNames)
	next.Routes = routes
	next.Index = min(state.Index, len(routes)-1)
	return &next
}

// GetStateForRouteFocus focuses the route with the given key by popping
// everything above it. Unknown keys leave the state untouched.
func (r *Stack) GetStateForRouteFocus(state *navstate.NavigationState, key string) *navstate.NavigationState {
	idx := state.IndexOfKey(key)
	if idx == -1 || idx == state.Index && idx == len(state.Routes)-1 {
		return state
	}

	next := *state
	next.Routes = state.Routes[:idx+1]
	next.Index = idx
	return &next
}

// GetStateForAction applies one stack transition, or nil when the action is
// not a stack concern here.
func (r *Stack) GetStateForAction(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	switch act.Type {
	case action.TypePush:
		if !slices.Contains(opts.RouteNames, act.Payload.Name) {
			return nil
		}
		return r.push(state, opts, act.Payload.Name, act.Payload.Params)

	case action.TypeNavigate:
		return r.navigate(state, act, opts)

	case action.TypePop:
		return r.pop(state, act)

	case action.TypePopToTop:
		if len(state.Routes) == 1 {
			return state
		}
		next := *state
		next.Routes = state.Routes[:1]
		next.Index = 0
		return &next

	case action.TypeReplace:
		return r.replace(state, act, opts)

	case action.TypeGoBack:
		popOne := action.Pop(1)
		popOne.Source = act.Source
		return r.pop(state, popOne)

	default:
		return baseStateForAction(state, act, opts)
	}
}

// ShouldActionChangeFocus reports true for NAVIGATE: reaching a screen in a
// descendant navigator must also focus the route hosting that navigator.
func (r *Stack) ShouldActionChangeFocus(act action.Action) bool {
	return act.Type == action.TypeNavigate
}

func (r *Stack) push(state *navstate.NavigationState, opts ConfigOptions, name string, params navstate.Params) navstate.State {
	next := *state
	next.Routes = append(slices.Clip(state.Routes[:state.Index+1]), newRoute(opts, name, params))
	next.Index = len(next.Routes) - 1
	return &next
}

// navigate goes to an existing route when the stack already holds one with
// the requested key or name, unwinding everything above it and merging
// params; otherwise it pushes a fresh route. Unknown keys and unconfigured
// names are unhandled.
func (r *Stack) navigate(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	idx := -1
	switch {
	case act.Payload.Key != "":
		idx = state.IndexOfKey(act.Payload.Key)
		if idx == -1 {
			return nil
		}
	case act.Payload.Name != "":
		if !slices.Contains(opts.RouteNames, act.Payload.Name) {
			return nil
		}
		idx = state.LastIndexOfName(act.Payload.Name)
		if idx == -1 {
			return r.push(state, opts, act.Payload.Name, act.Payload.Params)
		}
	default:
		return nil
	}

	routes := slices.Clone(state.Routes[:idx+1])
	routes[idx].Params = routes[idx].Params.Merge(act.Payload.Params)

	next := *state
	next.Routes = routes
	next.Index = idx
	return &next
}

// pop removes up to count routes ending at the popped position: the source
// route when the action carries one, else the focused route. Popping at the
// bottom of the stack is unhandled so the action can bubble to a parent.
func (r *Stack) pop(state *navstate.NavigationState, act action.Action) navstate.State {
	idx := state.Index
	if act.Source != "" {
		if i := state.IndexOfKey(act.Source); i != -1 {
			idx = i
		}
	}
	if idx == 0 {
		return nil
	}

	count := max(act.Payload.Count, 1)
	keep := max(idx-count+1, 1)
	routes := append(slices.Clone(state.Routes[:keep]), state.Routes[idx+1:]...)

	next := *state
	next.Routes = routes
	next.Index = len(routes) - 1
	return &next
}

// replace swaps the source (else focused) route for a fresh one, keeping
// stack depth and position.
func (r *Stack) replace(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	if !slices.Contains(opts.RouteNames, act.Payload.Name) {
		return nil
	}

	idx := state.Index
	if act.Source != "" {
		idx = state.IndexOfKey(act.Source)
		if idx == -1 {
			return nil
		}
	}

	routes := slices.Clone(state.Routes)
	routes[idx] = newRoute(opts, act.Payload.Name, act.Payload.Params)

	next := *state
	next.Routes = routes
	return &next
}
