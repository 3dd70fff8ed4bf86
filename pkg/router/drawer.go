package router

import (
	"slices"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
)

// DrawerOptions configures a drawer router.
type DrawerOptions struct {
	TabOptions

	// DefaultStatus is the drawer status when nothing has toggled it:
	// navstate.DrawerClosed (the default) or navstate.DrawerOpen.
	DefaultStatus string
}

// Drawer is the router for drawer navigators: tab semantics for the route
// set plus an open/closed drawer status.
//
// The status is stored as a single drawer history entry that exists only
// while the drawer deviates from its default status. Moving focus resets the
// drawer to the default, and GO_BACK restores the default status before it
// does anything else, so a visible drawer always closes first.
type Drawer struct {
	tab  *Tab
	opts DrawerOptions
}

// NewDrawer returns a drawer router.
func NewDrawer(opts DrawerOptions) *Drawer {
	if opts.DefaultStatus == "" {
		opts.DefaultStatus = navstate.DrawerClosed
	}
	return &Drawer{tab: NewTab(opts.TabOptions), opts: opts}
}

// Type returns "drawer".
func (r *Drawer) Type() string { return DrawerType }

// InitialRouteName returns the configured initial route name, if any.
func (r *Drawer) InitialRouteName() string { return r.opts.InitialRouteName }

// GetInitialState builds a tab-shaped state tagged as a drawer, with the
// drawer at its default status.
func (r *Drawer) GetInitialState(opts ConfigOptions) *navstate.NavigationState {
	return r.tab.initialState(DrawerType, opts)
}

// GetRehydratedState rehydrates like a tab router and carries a persisted
// non-default drawer status over.
func (r *Drawer) GetRehydratedState(st navstate.State, opts ConfigOptions) *navstate.NavigationState {
	partial := asRehydratable(st, DrawerType)
	if partial == nil {
		return st.(*navstate.NavigationState)
	}
	state := r.tab.rehydrate(DrawerType, partial, opts)
	if status := persistedStatus(partial.History); status != "" {
		state = r.setStatus(state, status)
	}
	return state
}

// GetStateForRouteNamesChange reconciles the route set like a tab router,
// keeping the current drawer status.
func (r *Drawer) GetStateForRouteNamesChange(state *navstate.NavigationState, opts ConfigOptions) *navstate.NavigationState {
	return r.setStatus(r.tab.GetStateForRouteNamesChange(state, opts), r.Status(state))
}

// GetStateForRouteFocus moves focus like a tab router. A focus change resets
// the drawer to its default status.
func (r *Drawer) GetStateForRouteFocus(state *navstate.NavigationState, key string) *navstate.NavigationState {
	next := r.tab.GetStateForRouteFocus(state, key)
	if next == state {
		return state
	}
	return next
}

// GetStateForAction applies one drawer transition, falling back to the tab
// behavior for everything that is not drawer-specific.
func (r *Drawer) GetStateForAction(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State {
	switch act.Type {
	case action.TypeOpenDrawer:
		return r.setStatus(state, navstate.DrawerOpen)

	case action.TypeCloseDrawer:
		return r.setStatus(state, navstate.DrawerClosed)

	case action.TypeToggleDrawer:
		if r.Status(state) == navstate.DrawerOpen {
			return r.setStatus(state, navstate.DrawerClosed)
		}
		return r.setStatus(state, navstate.DrawerOpen)

	case action.TypeGoBack:
		if status := r.Status(state); status != r.opts.DefaultStatus {
			return r.setStatus(state, r.opts.DefaultStatus)
		}
		return r.tab.goBack(state)

	default:
		return r.tab.GetStateForAction(state, act, opts)
	}
}

// ShouldActionChangeFocus reports true for NAVIGATE.
func (r *Drawer) ShouldActionChangeFocus(act action.Action) bool {
	return r.tab.ShouldActionChangeFocus(act)
}

// Status returns the drawer's current status for a state produced by this
// router.
func (r *Drawer) Status(state *navstate.NavigationState) string {
	if status := persistedStatus(state.History); status != "" {
		return status
	}
	return r.opts.DefaultStatus
}

// setStatus returns a state with the drawer at the given status. The status
// is represented as a trailing drawer history entry present only while it
// deviates from the default; setting the default status removes it.
func (r *Drawer) setStatus(state *navstate.NavigationState, status string) *navstate.NavigationState {
	if r.Status(state) == status {
		return state
	}

	history := slices.DeleteFunc(slices.Clone(state.History), func(e navstate.HistoryEntry) bool {
		return e.Type == navstate.HistoryDrawer
	})
	if status != r.opts.DefaultStatus {
		history = append(history, navstate.HistoryEntry{Type: navstate.HistoryDrawer, Status: status})
	}

	next := *state
	next.History = history
	return &next
}

// persistedStatus extracts the drawer status recorded in a history, or ""
// when no drawer entry is present.
func persistedStatus(history []navstate.HistoryEntry) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Type == navstate.HistoryDrawer {
			return history[i].Status
		}
	}
	return ""
}
