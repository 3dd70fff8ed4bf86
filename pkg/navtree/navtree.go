// Package navtree composes routers into a navigator tree and gives screens
// their imperative surface. Routers (pkg/router) are pure transition
// functions over a single navigator's state; this package owns everything
// the router contract leaves to an "external collaborator": walking the tree
// to find the navigator an action is addressed to, bubbling unhandled
// actions upward, recursively rehydrating nested states through each child's
// own router, emitting focus and blur events, and handing each rendered
// route a navigation capability.
//
// The whole tree is single-threaded by contract, like the routers it hosts.
// Dispatches are processed one at a time in call order; a listener that
// dispatches again runs its nested dispatch to completion before the outer
// one finishes.
package navtree

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/events"
	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/router"
	"github.com/normanking/pathways/pkg/screen"
)

// Tree owns the root navigator and the bookkeeping the navigators share: the
// event emitter, the state-key and route-key lookup tables, and the state
// change subscribers. Lookup tables hold non-owning references; ownership of
// nested state lives exclusively in the parent route, per the data model.
type Tree struct {
	emitter *events.Emitter
	root    *Navigator

	// navByStateKey resolves an action target (a navigator state key).
	navByStateKey map[string]*Navigator

	// ownerByRouteKey resolves an action source (a route key) to the
	// navigator owning that route. It doubles as the parent-lookup table:
	// a navigator's host route key resolves to its parent.
	ownerByRouteKey map[string]*Navigator

	onChange []func(*navstate.NavigationState)
}

// Option configures a Tree.
type Option func(*treeConfig)

type treeConfig struct {
	initial navstate.State
}

// WithInitialState seeds the tree from a persisted or deep-linked state
// instead of each router's initial state. The value is treated as untrusted:
// every level passes through its own router's rehydration, and a level whose
// type does not match falls back to a fresh initial state.
func WithInitialState(st navstate.State) Option {
	return func(c *treeConfig) { c.initial = st }
}

// New builds a navigator tree from a root router and its screens. The
// configuration is validated first and New fails loudly on any
// misconfiguration; nothing here is recoverable at runtime.
func New(r router.Router, screens screen.Config, opts ...Option) (*Tree, error) {
	var cfg treeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := screens.Validate(r); err != nil {
		return nil, fmt.Errorf("navtree: %w", err)
	}

	t := &Tree{
		emitter:         events.NewEmitter(),
		navByStateKey:   make(map[string]*Navigator),
		ownerByRouteKey: make(map[string]*Navigator),
	}
	t.root = newNavigator(t, r, screens, "", cfg.initial)

	for _, key := range t.focusedPath() {
		t.emitter.Emit(events.EmitOptions{Type: events.Focus, Target: key})
	}
	return t, nil
}

// Root returns the root navigator.
func (t *Tree) Root() *Navigator { return t.root }

// RootState returns a snapshot of the whole tree with every nested state
// embedded in its owning route, per the serialization contract. The snapshot
// is safe to hold and serialize; it shares nothing mutable with the tree.
func (t *Tree) RootState() *navstate.NavigationState {
	return t.root.composedState()
}

// OnStateChange subscribes to committed state changes. Subscribers receive
// the composed root state after every transition, in subscription order.
func (t *Tree) OnStateChange(fn func(*navstate.NavigationState)) {
	t.onChange = append(t.onChange, fn)
}

// Events exposes the tree's emitter so navigators and screens can emit
// custom events alongside the core focus lifecycle.
func (t *Tree) Events() *events.Emitter { return t.emitter }

// SetState replaces the whole tree from a state of unknown trust, running
// rehydration at every level. Children of routes whose key survives keep
// their navigators; everything else is rebuilt from the embedded seeds.
func (t *Tree) SetState(st navstate.State) {
	next := detached(t.root.router.GetRehydratedState(st, t.root.opts))
	t.root.apply(next, action.Action{})
}

// Dispatch routes one action through the tree and reports whether any
// navigator handled it. Resolution follows the action protocol: an explicit
// target addresses exactly one navigator and never bubbles; otherwise the
// walk starts at the source route's owner (or the deepest focused navigator
// when there is no source) and climbs toward the root until a router accepts
// the action. An action nobody handles is dropped silently.
func (t *Tree) Dispatch(act action.Action) bool {
	if act.Target != "" {
		nav, ok := t.navByStateKey[act.Target]
		if !ok {
			log.Debug().Str("type", string(act.Type)).Str("target", act.Target).
				Msg("navtree: dropping action for unknown target")
			return false
		}
		return t.dispatchAt(nav, act)
	}

	start := t.deepestFocused()
	if act.Source != "" {
		owner, ok := t.ownerByRouteKey[act.Source]
		if !ok {
			log.Debug().Str("type", string(act.Type)).Str("source", act.Source).
				Msg("navtree: dropping action from unknown source")
			return false
		}
		start = owner
	}

	for nav := start; nav != nil; nav = t.parentOf(nav) {
		if t.dispatchAt(nav, act) {
			return true
		}
	}

	log.Debug().Str("type", string(act.Type)).Msg("navtree: action unhandled, dropped")
	return false
}

// dispatchAt offers the action to one navigator. A partial result is
// rehydrated through the navigator's own router before committing. When the
// navigator handles the action, ancestors whose router says this action kind
// moves focus are refocused onto the subtree that handled it.
func (t *Tree) dispatchAt(nav *Navigator, act action.Action) bool {
	result := nav.router.GetStateForAction(nav.state, act, nav.opts)
	if result == nil {
		return false
	}

	var next *navstate.NavigationState
	switch r := result.(type) {
	case *navstate.NavigationState:
		next = r
	case *navstate.PartialState:
		next = nav.router.GetRehydratedState(r, nav.opts)
	}

	if !nav.apply(next, act) {
		// A listener vetoed the transition. The action still counts as
		// handled so it does not bubble and get applied elsewhere.
		return true
	}

	for child := nav; child.hostKey != ""; {
		parent := t.parentOf(child)
		if parent == nil {
			break
		}
		if parent.router.ShouldActionChangeFocus(act) {
			parent.apply(parent.router.GetStateForRouteFocus(parent.state, child.hostKey), act)
		}
		child = parent
	}
	return true
}

// predictedFocusedPath computes what the tree's focused path will be once
// nav commits next, without committing anything. When nav sits outside the
// focused path the leaf path does not change; otherwise the path is the
// chain above nav, next's focused route, and the existing chain below it.
func (t *Tree) predictedFocusedPath(nav *Navigator, next *navstate.NavigationState) []string {
	var prefix []string
	for n := nav; n.hostKey != ""; {
		parent := t.parentOf(n)
		if parent == nil || parent.state.FocusedRoute().Key != n.hostKey {
			return t.focusedPath()
		}
		prefix = append([]string{n.hostKey}, prefix...)
		n = parent
	}

	key := next.FocusedRoute().Key
	path := append(prefix, key)
	for child := nav.children[key]; child != nil; {
		k := child.state.FocusedRoute().Key
		path = append(path, k)
		child = child.children[k]
	}
	return path
}

// CanGoBack reports whether a GO_BACK dispatched right now would be handled
// anywhere on the focused path. Routers are pure, so probing them commits
// nothing.
func (t *Tree) CanGoBack() bool {
	for nav := t.deepestFocused(); nav != nil; nav = t.parentOf(nav) {
		if nav.router.GetStateForAction(nav.state, action.GoBack(), nav.opts) != nil {
			return true
		}
	}
	return false
}

// parentOf resolves a navigator's parent through the route-ownership table.
func (t *Tree) parentOf(nav *Navigator) *Navigator {
	if nav.hostKey == "" {
		return nil
	}
	return t.ownerByRouteKey[nav.hostKey]
}

// deepestFocused descends the focused route chain to the innermost
// navigator.
func (t *Tree) deepestFocused() *Navigator {
	nav := t.root
	for {
		child := nav.children[nav.state.FocusedRoute().Key]
		if child == nil {
			return nav
		}
		nav = child
	}
}

// focusedPath lists the focused route keys from the root down to the leaf.
func (t *Tree) focusedPath() []string {
	var path []string
	for nav := t.root; nav != nil; {
		key := nav.state.FocusedRoute().Key
		path = append(path, key)
		nav = nav.children[key]
	}
	return path
}

// notify delivers the composed root state to every subscriber.
func (t *Tree) notify() {
	if len(t.onChange) == 0 {
		return
	}
	snapshot := t.RootState()
	for _, fn := range t.onChange {
		fn(snapshot)
	}
}
