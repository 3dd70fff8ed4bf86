// Package router implements the pure state-transition cores for each
// navigator kind. A Router is a stateless bundle of transition functions:
// every function takes a state (and usually the current route configuration)
// and returns a new state, never mutating its input. Routers know nothing
// about screens, rendering, or the navigator tree; composing routers into a
// tree and routing actions between them is pkg/navtree's job.
//
// The unhandled-action contract: GetStateForAction returns nil when the
// router does not recognize an action. That is a routing signal, not an
// error. The caller is expected to offer the action to the parent navigator,
// and to drop it silently when no ancestor handles it either.
package router

import (
	"fmt"
	"slices"

	"github.com/normanking/pathways/internal/keygen"
	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
)

// Navigator type tags. A state's Type field carries one of these; persisted
// state only rehydrates into a router with the same tag.
const (
	StackType  = "stack"
	TabType    = "tab"
	DrawerType = "drawer"
)

// ConfigOptions is the per-call route configuration every transition needs:
// the ordered set of valid route names for the navigator and the statically
// declared initial params per route name. The configuration layer
// (pkg/screen) builds these; routers treat RouteNames as a set and assume it
// is free of duplicates, which pkg/screen enforces before any router runs.
type ConfigOptions struct {
	RouteNames     []string
	RouteParamList map[string]navstate.Params
}

// Router is the transition-function bundle for one navigator kind.
//
// All methods are pure: same inputs, same outputs, no side effects beyond
// fresh key generation in states they create. Implementations must never
// panic on well-formed unknown actions; nil from GetStateForAction is the
// designated signal. Panics are reserved for malformed configuration, which
// is a programmer error.
type Router interface {
	// Type returns the navigator type tag baked into produced states.
	Type() string

	// GetInitialState builds a fresh state for this navigator kind. Which
	// routes it contains is router-specific; focus prefers the configured
	// initial route name when present, else the first route.
	GetInitialState(opts ConfigOptions) *navstate.NavigationState

	// GetRehydratedState turns a state of unknown trust into a valid one.
	// An already-valid state of the matching type is returned as-is; a
	// stale or type-mismatched state is rebuilt from the configuration,
	// merging recognizable routes by name to preserve user intent. Only the
	// top level is guaranteed valid: nested route states stay partial until
	// the composition layer delegates them to their own routers.
	GetRehydratedState(st navstate.State, opts ConfigOptions) *navstate.NavigationState

	// GetStateForRouteNamesChange reconciles a state against a changed
	// route-name list: routes whose name vanished are dropped, new names
	// gain routes per router-specific placement, and focus stays valid.
	// Idempotent for an unchanged list.
	GetStateForRouteNamesChange(state *navstate.NavigationState, opts ConfigOptions) *navstate.NavigationState

	// GetStateForRouteFocus moves focus to the route with the given key.
	// Unknown keys return the state unchanged.
	GetStateForRouteFocus(state *navstate.NavigationState, key string) *navstate.NavigationState

	// GetStateForAction applies one action. It returns nil for unhandled
	// actions, a full state for completed transitions, or a partial state
	// when the transition intentionally leaves rehydration to the caller
	// (e.g. RESET with a partial payload).
	GetStateForAction(state *navstate.NavigationState, act action.Action, opts ConfigOptions) navstate.State

	// ShouldActionChangeFocus reports whether handling this action anywhere
	// below a navigator should also move that navigator's own focus toward
	// the handler, independent of whether this router handled it.
	ShouldActionChangeFocus(act action.Action) bool
}

// resolveInitialRoute picks the route name initial focus lands on: the
// preferred name when it is configured, else the first route name.
func resolveInitialRoute(opts ConfigOptions, preferred string) (string, int) {
	if len(opts.RouteNames) == 0 {
		panic("router: ConfigOptions has no route names")
	}
	if preferred != "" {
		if i := slices.Index(opts.RouteNames, preferred); i != -1 {
			return preferred, i
		}
	}
	return opts.RouteNames[0], 0
}

// newRoute creates a fresh route for name with a generated key. Static
// initial params sit under the explicit params.
func newRoute(opts ConfigOptions, name string, params navstate.Params) navstate.Route {
	return navstate.Route{
		Key:    keygen.New(name),
		Name:   name,
		Params: opts.RouteParamList[name].Merge(params),
	}
}

// asRehydratable decides whether a state needs rebuilding. It returns nil
// when st is already a valid full state for a navigator of the given type
// (the caller returns it as-is); otherwise it returns the partial spec to
// rehydrate from. A full state of the wrong type or marked stale is demoted
// to a partial so its recognizable routes can still be merged; a nil state
// rehydrates from an empty spec, i.e. the initial state.
func asRehydratable(st navstate.State, navType string) *navstate.PartialState {
	switch s := st.(type) {
	case *navstate.NavigationState:
		if !s.Stale && s.Type == navType {
			return nil
		}
		return navstate.AsPartial(s)
	case *navstate.PartialState:
		return s
	default:
		return &navstate.PartialState{}
	}
}

// mustValidNames panics when RouteNames carries duplicates. Routers call it
// nowhere on hot paths; it backs the screen-config validation and tests.
func mustValidNames(opts ConfigOptions) {
	seen := make(map[string]bool, len(opts.RouteNames))
	for _, name := range opts.RouteNames {
		if seen[name] {
			panic(fmt.Sprintf("router: duplicate route name %q in configuration", name))
		}
		seen[name] = true
	}
}
