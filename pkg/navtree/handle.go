package navtree

import (
	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/events"
	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/screen"
)

// handle is the screen.Navigation implementation handed to rendered routes.
// It is a capability, not a reference: it carries the route key and resolves
// everything else through the tree's lookup tables at call time, so holding
// a handle never keeps a removed route alive.
type handle struct {
	tree     *Tree
	nav      *Navigator
	routeKey string
}

var _ screen.Navigation = (*handle)(nil)

// Dispatch sends an action sourced from this route unless the action
// already names a source.
func (h *handle) Dispatch(act action.Action) bool {
	if act.Source == "" {
		act.Source = h.routeKey
	}
	return h.tree.Dispatch(act)
}

func (h *handle) Navigate(name string, params navstate.Params) bool {
	return h.Dispatch(action.Navigate(name, params))
}

func (h *handle) GoBack() bool {
	return h.Dispatch(action.GoBack())
}

func (h *handle) Push(name string, params navstate.Params) bool {
	return h.Dispatch(action.Push(name, params))
}

func (h *handle) Pop(count int) bool {
	return h.Dispatch(action.Pop(count))
}

func (h *handle) PopToTop() bool {
	return h.Dispatch(action.PopToTop())
}

func (h *handle) Replace(name string, params navstate.Params) bool {
	return h.Dispatch(action.Replace(name, params))
}

func (h *handle) JumpTo(name string, params navstate.Params) bool {
	return h.Dispatch(action.JumpTo(name, params))
}

func (h *handle) SetParams(params navstate.Params) bool {
	return h.Dispatch(action.SetParams(params))
}

func (h *handle) Reset(state navstate.State) bool {
	return h.Dispatch(action.Reset(state))
}

// CanGoBack probes the navigator chain from this route's owner upward.
func (h *handle) CanGoBack() bool {
	for nav := h.nav; nav != nil; nav = h.tree.parentOf(nav) {
		if nav.router.GetStateForAction(nav.state, action.GoBack(), nav.opts) != nil {
			return true
		}
	}
	return false
}

// IsFocused reports whether this route lies on the focused path.
func (h *handle) IsFocused() bool {
	return h.nav.isFocused(h.routeKey)
}

// AddListener subscribes to events scoped to this route.
func (h *handle) AddListener(eventType string, fn events.Listener) func() {
	return h.tree.emitter.AddListener(h.routeKey, eventType, fn)
}

// Parent returns the handle of the route hosting this navigator, or nil at
// the root.
func (h *handle) Parent() screen.Navigation {
	parent := h.tree.parentOf(h.nav)
	if parent == nil {
		return nil
	}
	return &handle{tree: h.tree, nav: parent, routeKey: h.nav.hostKey}
}

// State returns a snapshot of the navigator owning this route.
func (h *handle) State() *navstate.NavigationState {
	return h.nav.State()
}
