package screen

import (
	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/events"
	"github.com/normanking/pathways/pkg/navstate"
)

// Navigation is the capability handle a rendered route receives: the
// imperative API screens use to trigger actions and observe focus changes.
// It is a handle, not a stored reference: the data model never points back
// at navigators, and Parent lookups go through the composition layer's
// route-ownership table. pkg/navtree provides the implementation.
type Navigation interface {
	// Dispatch sends an action sourced from this route. It reports whether
	// any navigator handled the action; unhandled actions are dropped
	// silently per the routing contract.
	Dispatch(act action.Action) bool

	// Navigate goes to the named screen, Push/Pop/PopToTop/Replace are the
	// stack verbs, JumpTo the tab verb; each is shorthand for Dispatch with
	// the matching action creator.
	Navigate(name string, params navstate.Params) bool
	GoBack() bool
	Push(name string, params navstate.Params) bool
	Pop(count int) bool
	PopToTop() bool
	Replace(name string, params navstate.Params) bool
	JumpTo(name string, params navstate.Params) bool
	SetParams(params navstate.Params) bool
	Reset(state navstate.State) bool

	// CanGoBack reports whether GO_BACK dispatched from here would be
	// handled by this navigator or any ancestor.
	CanGoBack() bool

	// IsFocused reports whether this route lies on the focused path.
	IsFocused() bool

	// AddListener subscribes to events scoped to this route ("focus",
	// "blur", "beforeRemove", or custom types). The returned function
	// unsubscribes; calling it again is a no-op.
	AddListener(eventType string, fn events.Listener) func()

	// Parent returns the handle of the route hosting this navigator, or
	// nil at the root.
	Parent() Navigation

	// State returns the current state of the navigator owning this route.
	State() *navstate.NavigationState
}
