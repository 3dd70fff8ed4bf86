package action

import "github.com/normanking/pathways/pkg/navstate"

// Navigate goes to the screen with the given name, creating it if the
// navigator does not already show one. Params are merged into an existing
// route's params; pass nil to leave them untouched.
func Navigate(name string, params navstate.Params) Action {
	return Action{Type: TypeNavigate, Payload: Payload{Name: name, Params: params}}
}

// NavigateTo goes to an existing route addressed by its key.
func NavigateTo(key string, params navstate.Params) Action {
	return Action{Type: TypeNavigate, Payload: Payload{Key: key, Params: params}}
}

// GoBack returns to the previous location in the handling navigator.
func GoBack() Action {
	return Action{Type: TypeGoBack}
}

// Reset replaces a navigator's state wholesale. A partial state is legal;
// it flows back out of the router still stale for the caller to rehydrate.
func Reset(state navstate.State) Action {
	return Action{Type: TypeReset, Payload: Payload{State: state}}
}

// SetParams merges params into the route that dispatched the action (or the
// focused route when dispatched without a source).
func SetParams(params navstate.Params) Action {
	return Action{Type: TypeSetParams, Payload: Payload{Params: params}}
}

// Push adds a screen on top of a stack navigator.
func Push(name string, params navstate.Params) Action {
	return Action{Type: TypePush, Payload: Payload{Name: name, Params: params}}
}

// Pop removes count screens from the top of a stack navigator. Counts below
// one behave as one.
func Pop(count int) Action {
	return Action{Type: TypePop, Payload: Payload{Count: count}}
}

// PopToTop unwinds a stack navigator to its first screen.
func PopToTop() Action {
	return Action{Type: TypePopToTop}
}

// Replace swaps the focused screen for a new one, keeping stack depth.
func Replace(name string, params navstate.Params) Action {
	return Action{Type: TypeReplace, Payload: Payload{Name: name, Params: params}}
}

// JumpTo focuses a tab by name. Params replace the tab's params rather than
// merging, so a jump always lands in a predictable state.
func JumpTo(name string, params navstate.Params) Action {
	return Action{Type: TypeJumpTo, Payload: Payload{Name: name, Params: params}}
}

// OpenDrawer opens a drawer navigator's drawer.
func OpenDrawer() Action {
	return Action{Type: TypeOpenDrawer}
}

// CloseDrawer closes a drawer navigator's drawer.
func CloseDrawer() Action {
	return Action{Type: TypeCloseDrawer}
}

// ToggleDrawer flips a drawer navigator's drawer status.
func ToggleDrawer() Action {
	return Action{Type: TypeToggleDrawer}
}
