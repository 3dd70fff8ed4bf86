package router

import (
	"slices"
	"strings"

	"github.com/normanking/pathways/internal/keygen"
	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
)

// BackBehavior selects what GO_BACK means inside a tab-like navigator.
type BackBehavior string

const (
	// BackInitialRoute returns to the configured initial tab, then gives up.
	BackInitialRoute BackBehavior = "initialRoute"
	// BackOrder walks tabs right-to-left in configuration order.
	BackOrder BackBehavior = "order"
	// BackHistory retraces the focus history, most recent first.
	BackHistory BackBehavior = "history"
	// BackFirstRoute returns to the first configured tab, then gives up.
	BackFirstRoute BackBehavior = "firstRoute"
	// BackNone makes GO_BACK unhandled so it always bubbles to the parent.
	BackNone BackBehavior = "none"
)

// TabOptions configures a tab router.
type TabOptions struct {
	// InitialRouteName is the tab focused at creation. Empty means the
	// first configured route name.
	InitialRouteName string

	// BackBehavior selects the GO_BACK policy. Empty means BackInitialRoute.
	BackBehavior BackBehavior
}

// Tab is the router for sibling navigators: every configured route exists at
// all times and navigation only moves focus between them.
//
// Tie-break policies, chosen deliberately:
//   - Route-names change: focus follows the focused route's name when it
//     survives, else falls back to the first tab.
//   - Rehydration rebuilds the full route set from the configuration,
//     merging persisted routes by name; a persisted route key is reused
//     only when it carries the "<name>-" prefix, so a key can never end up
//     attached to a different screen than it was minted for.
//   - NAVIGATE merges params into the target tab; JUMP_TO replaces them
//     (on top of the static initial params), so a jump always lands in a
//     predictable state.
type Tab struct {
	opts TabOptions
}

// NewTab returns a tab router.
func NewTab(opts TabOptions) *Tab {
	if opts.BackBehavior == "" {
		opts.BackBehavior = BackInitialRoute
	}
	return &Tab{opts: opts}
}

// Type returns "tab".
func (r *Tab) Type() string { return TabType }

// InitialRouteName returns the configured initial route name, if any.
func (r *Tab) InitialRouteName() string { return r.opts.InitialRouteName }

// GetInitialState builds a state with one route per configured name, focused
// on the initial route.
func (r *Tab) GetInitialState(opts ConfigOptions) *navstate.NavigationState {
	return r.initialState(TabType, opts)
}

func (r *Tab) initialState(navType string, opts ConfigOptions) *navstate.NavigationState {
	_, index := resolveInitialRoute(opts, r.opts.InitialRouteName)
	routes := make([]navstate.Route, len(opts.RouteNames))
	for i, name := range opts.RouteNames {
		routes[i] = newRoute(opts, name, nil)
	}
	state := &navstate.NavigationState{
		Key:        keygen.New(navType),
		Index:      index,
		RouteNames: slices.Clone(opts.RouteNames),
		Routes:     routes,
		Type:       navType,
	}
	state.History = r.rebuildHistory(state, nil)
	return state
}

// GetRehydratedState rebuilds the full one-route-per-name set, merging the
// partial state's routes in by name. Focus follows the partial's index when
// one is given, else the last persisted route whose name survived, else the
// configured initial route.
func (r *Tab) GetRehydratedState(st navstate.State, opts ConfigOptions) *navstate.NavigationState {
	return r.rehydrate(TabType, st, opts)
}

func (r *Tab) rehydrate(navType string, st navstate.State, opts ConfigOptions) *navstate.NavigationState {
	partial := asRehydratable(st, navType)
	if partial == nil {
		return st.(*navstate.NavigationState)
	}

	routes := make([]navstate.Route, len(opts.RouteNames))
	for i, name := range opts.RouteNames {
		route := navstate.Route{Name: name, Params: opts.RouteParamList[name].Merge(nil)}
		if persisted := partial.FindRouteByName(name); persisted != nil {
			if strings.HasPrefix(persisted.Key, name+"-") {
				route.Key = persisted.Key
			}
			route.Params = route.Params.Merge(persisted.Params)
			if persisted.State != nil {
				route.State = persisted.State
			}
		}
		if route.Key == "" {
			route.Key = keygen.New(name)
		}
		routes[i] = route
	}

	// Focus resolution: the partial's explicit index wins; without one the
	// last persisted route that survived carries the user's intent; a
	// partial with nothing recognizable falls back to the initial route.
	index := -1
	if partial.Index != nil && *partial.Index >= 0 && *partial.Index < len(partial.Routes) {
		index = slices.Index(opts.RouteNames, partial.Routes[*partial.Index].Name)
	}
	for j := len(partial.Routes) - 1; index == -1 && j >= 0; j-- {
		index = slices.Index(opts.RouteNames, partial.Routes[j].Name)
	}
	if index == -1 {
		_, index = resolveInitialRoute(opts, r.opts.InitialRouteName)
	}

	state := &navstate.NavigationState{
		Key:        keygen.New(navType),
		Index:      index,
		RouteNames: slices.Clone(opts.RouteNames),
		Routes:     routes,
		Type:       navType,
	}
	state.History = r.rebuildHistory(state, filterHistory(partial.History, routes))
	return state
}

// GetStateForRouteNamesChange keeps surviving routes, creates fresh routes
// for new names at their configured position, and follows the focused
// route's name when it survives.
func (r *Tab) GetStateForRouteNamesChange(state *navstate.NavigationState, opts ConfigOptions) *navstate.NavigationState {
	routes := make([]navstate.Route, len(opts.RouteNames))
	for i, name := range opts.RouteNames {
		if j := state.LastIndexOfName(name); j != -1 {
			routes[i] = state.Routes[j]
		} else {
			routes[i] = newRoute(opts, name, nil)
		}
	}

	index := 0
	if i := slices.Index(opts.RouteNames, state.FocusedRoute().Name); i != -1 {
		index = i
	}

	next := *state
	next.RouteNames = slices.Clone(opts.RouteNames)
	next.Routes = routes
	next.Index = index
	next.History = r.rebuildHistory(&next, filterHistory(state.History, routes))
	return &next
}

// GetStateForRouteFocus moves focus to the route with the given key, leaving
// the route set untouched. Unknown keys leave the state untouched.
func (r *Tab) GetStateForRouteFocus(state *navstate.NavigationState, key string) *navstate.NavigationState {
	idx := state.IndexOfKey(key)
	if idx == -1 || idx == state.Index {
		return state
	}
	return r.changeIndex(state, idx)
}

// GetStateForAction applies one tab transition, or nil when the action is
// not a tab concern here.
func (r *Tab) GetStateForAction(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	switch act.Type {
	case action.TypeJumpTo, action.TypeNavigate:
		return r.focusRoute(state, act, opts)
	case action.TypeGoBack:
		return r.goBack(state)
	default:
		return baseStateForAction(state, act, opts)
	}
}

// ShouldActionChangeFocus reports true for NAVIGATE.
func (r *Tab) ShouldActionChangeFocus(act action.Action) bool {
	return act.Type == action.TypeNavigate
}

// focusRoute handles NAVIGATE and JUMP_TO: resolve the target tab by name or
// key, move focus there, and apply params per the action's merge policy.
func (r *Tab) focusRoute(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	idx := -1
	switch {
	case act.Payload.Name != "":
		idx = state.LastIndexOfName(act.Payload.Name)
	case act.Payload.Key != "" && act.Type == action.TypeNavigate:
		idx = state.IndexOfKey(act.Payload.Key)
	}
	if idx == -1 {
		return nil
	}

	next := r.changeIndex(state, idx)
	if act.Payload.Params != nil {
		routes := slices.Clone(next.Routes)
		if act.Type == action.TypeJumpTo {
			routes[idx].Params = opts.RouteParamList[routes[idx].Name].Merge(act.Payload.Params)
		} else {
			routes[idx].Params = routes[idx].Params.Merge(act.Payload.Params)
		}
		next.Routes = routes
	}
	return next
}

// goBack retraces the focus history: drop the newest entry and focus the one
// before it. A single-entry history means there is nowhere to go, so the
// action bubbles to the parent.
func (r *Tab) goBack(state *navstate.NavigationState) navstate.State {
	if r.opts.BackBehavior == BackNone {
		return nil
	}

	last := -1
	for i := len(state.History) - 1; i >= 0; i-- {
		if state.History[i].Type == navstate.HistoryRoute {
			last = i
			break
		}
	}
	if last <= 0 {
		return nil
	}

	prev := state.History[last-1]
	if prev.Type != navstate.HistoryRoute {
		return nil
	}
	idx := state.IndexOfKey(prev.Key)
	if idx == -1 {
		return nil
	}

	next := *state
	next.Index = idx
	next.History = slices.Clone(state.History[:last])
	return &next
}

// changeIndex moves focus to idx and rewrites history per the back behavior.
func (r *Tab) changeIndex(state *navstate.NavigationState, idx int) *navstate.NavigationState {
	next := *state
	next.Index = idx
	next.History = r.rebuildHistory(&next, state.History)
	return &next
}

// rebuildHistory computes the focus history for a state per the configured
// back behavior. previous is consulted only by BackHistory; the other
// behaviors derive history from the route set and focus alone.
func (r *Tab) rebuildHistory(state *navstate.NavigationState, previous []navstate.HistoryEntry) []navstate.HistoryEntry {
	focused := state.Routes[state.Index].Key

	switch r.opts.BackBehavior {
	case BackOrder:
		history := make([]navstate.HistoryEntry, 0, state.Index+1)
		for _, route := range state.Routes[:state.Index+1] {
			history = append(history, navstate.HistoryEntry{Type: navstate.HistoryRoute, Key: route.Key})
		}
		return history

	case BackHistory:
		history := make([]navstate.HistoryEntry, 0, len(previous)+1)
		for _, entry := range previous {
			if entry.Type == navstate.HistoryRoute && entry.Key != focused {
				history = append(history, entry)
			}
		}
		return append(history, navstate.HistoryEntry{Type: navstate.HistoryRoute, Key: focused})

	case BackFirstRoute:
		return anchoredHistory(state.Routes[0].Key, focused)

	case BackNone:
		return []navstate.HistoryEntry{{Type: navstate.HistoryRoute, Key: focused}}

	default: // BackInitialRoute
		anchor := state.Routes[0].Key
		if r.opts.InitialRouteName != "" {
			if i := state.LastIndexOfName(r.opts.InitialRouteName); i != -1 {
				anchor = state.Routes[i].Key
			}
		}
		return anchoredHistory(anchor, focused)
	}
}

// anchoredHistory is the two-entry history form shared by the initialRoute
// and firstRoute behaviors: the anchor tab, then the focused tab when they
// differ.
func anchoredHistory(anchor, focused string) []navstate.HistoryEntry {
	history := []navstate.HistoryEntry{{Type: navstate.HistoryRoute, Key: anchor}}
	if focused != anchor {
		history = append(history, navstate.HistoryEntry{Type: navstate.HistoryRoute, Key: focused})
	}
	return history
}

// filterHistory drops entries referencing routes that no longer exist.
func filterHistory(history []navstate.HistoryEntry, routes []navstate.Route) []navstate.HistoryEntry {
	kept := make([]navstate.HistoryEntry, 0, len(history))
	for _, entry := range history {
		if entry.Type != navstate.HistoryRoute {
			kept = append(kept, entry)
			continue
		}
		if slices.ContainsFunc(routes, func(r navstate.Route) bool { return r.Key == entry.Key }) {
			kept = append(kept, entry)
		}
	}
	return kept
}
