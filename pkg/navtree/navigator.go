package navtree

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/events"
	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/router"
	"github.com/normanking/pathways/pkg/screen"
)

// Navigator binds one router to one screen configuration and owns the
// resulting state subtree. Stored states keep their nested route states
// stripped: each child subtree lives in the child navigator, and the
// full tree is assembled on demand by composedState. That keeps exactly one
// owner per subtree while the tree is live, matching the ownership rule of
// the data model.
type Navigator struct {
	tree    *Tree
	router  router.Router
	screens screen.Config
	opts    router.ConfigOptions
	state   *navstate.NavigationState

	// hostKey is the key of the parent route hosting this navigator, empty
	// at the root. The parent itself is found through the tree's
	// route-ownership table, never stored here.
	hostKey string

	// children maps this navigator's route keys to the nested navigators
	// those routes host.
	children map[string]*Navigator
}

// newNavigator builds a navigator, rehydrating the seed through its router
// when one is given, and registers it and its routes with the tree.
func newNavigator(t *Tree, r router.Router, screens screen.Config, hostKey string, seed navstate.State) *Navigator {
	opts := screens.ConfigOptions()

	var state *navstate.NavigationState
	if seed == nil {
		state = r.GetInitialState(opts)
	} else {
		// Detach in case rehydration passed the caller's value through:
		// the committed state is ours to reconcile, the seed is not.
		state = detached(r.GetRehydratedState(seed, opts))
	}

	nav := &Navigator{
		tree:     t,
		router:   r,
		screens:  screens,
		opts:     opts,
		state:    state,
		hostKey:  hostKey,
		children: make(map[string]*Navigator),
	}
	t.navByStateKey[state.Key] = nav
	nav.reconcileChildren(state)
	return nav
}

// Key returns the navigator's state key, the address actions target.
func (nav *Navigator) Key() string { return nav.state.Key }

// Router returns the navigator's router.
func (nav *Navigator) Router() router.Router { return nav.router }

// Screens returns the navigator's screen configuration.
func (nav *Navigator) Screens() screen.Config { return nav.screens }

// State returns a snapshot of the navigator's subtree with nested states
// embedded. The snapshot is detached from subsequent transitions.
func (nav *Navigator) State() *navstate.NavigationState {
	return nav.composedState()
}

// Child returns the nested navigator hosted by the route with the given
// key, or nil.
func (nav *Navigator) Child(routeKey string) *Navigator {
	return nav.children[routeKey]
}

// Descriptors returns one descriptor per route, in route order. Routes that
// host a nested navigator carry no render function; the rendering layer
// recurses into Child instead.
func (nav *Navigator) Descriptors() []screen.Descriptor {
	ds := make([]screen.Descriptor, len(nav.state.Routes))
	for i, route := range nav.state.Routes {
		ds[i] = nav.descriptorFor(route)
	}
	return ds
}

// FocusedDescriptor returns the descriptor of the focused route.
func (nav *Navigator) FocusedDescriptor() screen.Descriptor {
	return nav.descriptorFor(nav.state.FocusedRoute())
}

func (nav *Navigator) descriptorFor(route navstate.Route) screen.Descriptor {
	d := screen.Descriptor{
		Route:      route,
		Navigation: &handle{tree: nav.tree, nav: nav, routeKey: route.Key},
	}
	if rc := nav.screens.Find(route.Name); rc != nil {
		d.Render = rc.Render
		d.Options = rc.Options
	}
	return d
}

// SetScreens swaps the navigator's screen configuration at runtime and
// reconciles the state against the new route names. Misconfiguration fails
// loudly without touching the navigator.
func (nav *Navigator) SetScreens(screens screen.Config) error {
	if err := screens.Validate(nav.router); err != nil {
		return fmt.Errorf("navtree: %w", err)
	}
	nav.screens = screens
	nav.opts = screens.ConfigOptions()
	nav.apply(nav.router.GetStateForRouteNamesChange(nav.state, nav.opts), action.Action{})
	return nil
}

// apply commits a transition result. Before anything is committed it emits
// the preventable lifecycle events: blur on every route leaving the focused
// path (deepest first) and beforeRemove on every route about to be dropped.
// Any listener preventing its event vetoes the whole transition. After the
// commit it reconciles child navigators, emits focus on routes joining the
// focused path, and notifies state subscribers.
//
// It reports whether the transition was committed.
func (nav *Navigator) apply(next *navstate.NavigationState, act action.Action) bool {
	if next == nil || next == nav.state {
		return true
	}

	t := nav.tree
	oldPath := t.focusedPath()
	newPath := t.predictedFocusedPath(nav, next)

	for i := len(oldPath) - 1; i >= 0; i-- {
		key := oldPath[i]
		if slices.Contains(newPath, key) {
			continue
		}
		ev := t.emitter.Emit(events.EmitOptions{Type: events.Blur, Target: key, CanPreventDefault: true})
		if ev.DefaultPrevented() {
			log.Debug().Str("route", key).Msg("navtree: transition vetoed by blur listener")
			return false
		}
	}

	for _, route := range nav.state.Routes {
		if next.IndexOfKey(route.Key) != -1 {
			continue
		}
		ev := t.emitter.Emit(events.EmitOptions{
			Type:              events.BeforeRemove,
			Target:            route.Key,
			Data:              act,
			CanPreventDefault: true,
		})
		if ev.DefaultPrevented() {
			log.Debug().Str("route", route.Key).Msg("navtree: transition vetoed by beforeRemove listener")
			return false
		}
	}

	for _, route := range nav.state.Routes {
		if next.IndexOfKey(route.Key) == -1 {
			delete(t.ownerByRouteKey, route.Key)
			t.emitter.RemoveTarget(route.Key)
			if child := nav.children[route.Key]; child != nil {
				child.destroy()
				delete(nav.children, route.Key)
			}
		}
	}

	if next.Key != nav.state.Key {
		delete(t.navByStateKey, nav.state.Key)
		t.navByStateKey[next.Key] = nav
	}
	nav.state = next
	nav.reconcileChildren(next)

	for _, key := range t.focusedPath() {
		if !slices.Contains(oldPath, key) {
			t.emitter.Emit(events.EmitOptions{Type: events.Focus, Target: key})
		}
	}

	t.notify()
	return true
}

// reconcileChildren registers route ownership and builds nested navigators
// for routes that declare children. A route arriving with an embedded state
// (a rehydration seed) hands it to the child: a freshly built child takes it
// as its starting point, an existing child rehydrates and commits it over
// its current state. The embedded copy is then stripped, since the child
// navigator owns the subtree from here on. Seeds only occur on freshly built
// route slices, so stripping never touches a previously committed state.
func (nav *Navigator) reconcileChildren(state *navstate.NavigationState) {
	t := nav.tree
	for i := range state.Routes {
		route := &state.Routes[i]
		t.ownerByRouteKey[route.Key] = nav

		rc := nav.screens.Find(route.Name)
		if rc != nil && rc.Children != nil {
			if child := nav.children[route.Key]; child == nil {
				nav.children[route.Key] = newNavigator(t, rc.Children.Router, rc.Children.Screens, route.Key, route.State)
			} else if route.State != nil {
				// The route survived but arrived with an embedded state, as
				// when a whole snapshot is restored over a live tree. The
				// child rehydrates it through its own router, recursing into
				// its own embedded states the same way.
				child.apply(detached(child.router.GetRehydratedState(route.State, child.opts)), action.Action{})
			}
		}
		route.State = nil
	}
}

// destroy unregisters the navigator and its whole subtree from the tree's
// lookup tables and drops the subtree's listeners.
func (nav *Navigator) destroy() {
	t := nav.tree
	delete(t.navByStateKey, nav.state.Key)
	for _, route := range nav.state.Routes {
		delete(t.ownerByRouteKey, route.Key)
		t.emitter.RemoveTarget(route.Key)
		if child := nav.children[route.Key]; child != nil {
			child.destroy()
		}
	}
}

// detached returns a copy whose route slice is independent of the input, so
// committing and stripping seeds never mutates a caller-held snapshot.
func detached(s *navstate.NavigationState) *navstate.NavigationState {
	c := *s
	c.Routes = slices.Clone(s.Routes)
	return &c
}

// composedState clones the navigator's state with every child subtree
// embedded in its hosting route.
func (nav *Navigator) composedState() *navstate.NavigationState {
	s := *nav.state
	s.RouteNames = slices.Clone(nav.state.RouteNames)
	s.Routes = slices.Clone(nav.state.Routes)
	s.History = slices.Clone(nav.state.History)
	for i := range s.Routes {
		if child := nav.children[s.Routes[i].Key]; child != nil {
			s.Routes[i].State = child.composedState()
		}
	}
	return &s
}

// isFocused reports whether the route with the given key lies on the
// focused path: focused in this navigator, which is itself focused all the
// way up.
func (nav *Navigator) isFocused(routeKey string) bool {
	if nav.state.FocusedRoute().Key != routeKey {
		return false
	}
	for n := nav; n.hostKey != ""; {
		parent := n.tree.parentOf(n)
		if parent == nil || parent.state.FocusedRoute().Key != n.hostKey {
			return false
		}
		n = parent
	}
	return true
}
