package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
)

func drawerOpts() ConfigOptions {
	return ConfigOptions{RouteNames: []string{"Inbox", "Archive", "Trash"}}
}

func TestDrawerInitialState(t *testing.T) {
	r := NewDrawer(DrawerOptions{})

	s := r.GetInitialState(drawerOpts())

	require.NoError(t, navstate.Validate(s))
	assert.Equal(t, DrawerType, s.Type)
	assert.Len(t, s.Routes, 3)
	assert.Equal(t, navstate.DrawerClosed, r.Status(s))
}

func TestDrawerOpenCloseToggle(t *testing.T) {
	r := NewDrawer(DrawerOptions{})
	s := r.GetInitialState(drawerOpts())

	open := r.GetStateForAction(s, action.OpenDrawer(), drawerOpts()).(*navstate.NavigationState)
	require.NoError(t, navstate.Validate(open))
	assert.Equal(t, navstate.DrawerOpen, r.Status(open))
	assert.Equal(t, navstate.DrawerClosed, r.Status(s), "input state is never mutated")

	same := r.GetStateForAction(open, action.OpenDrawer(), drawerOpts()).(*navstate.NavigationState)
	assert.Same(t, open, same, "opening an open drawer is a no-op")

	closed := r.GetStateForAction(open, action.CloseDrawer(), drawerOpts()).(*navstate.NavigationState)
	assert.Equal(t, navstate.DrawerClosed, r.Status(closed))
	assert.Empty(t, closed.History[len(closed.History)-1].Status, "the default status leaves no drawer entry")

	toggled := r.GetStateForAction(closed, action.ToggleDrawer(), drawerOpts()).(*navstate.NavigationState)
	assert.Equal(t, navstate.DrawerOpen, r.Status(toggled))
}

func TestDrawerGoBackClosesBeforeDelegating(t *testing.T) {
	r := NewDrawer(DrawerOptions{TabOptions: TabOptions{InitialRouteName: "Inbox"}})
	s := r.GetInitialState(drawerOpts())
	s = r.GetStateForAction(s, action.JumpTo("Trash", nil), drawerOpts()).(*navstate.NavigationState)
	s = r.GetStateForAction(s, action.OpenDrawer(), drawerOpts()).(*navstate.NavigationState)

	back := r.GetStateForAction(s, action.GoBack(), drawerOpts()).(*navstate.NavigationState)
	assert.Equal(t, navstate.DrawerClosed, r.Status(back), "GO_BACK closes the drawer first")
	assert.Equal(t, 2, back.Index, "closing the drawer does not move focus")

	back = r.GetStateForAction(back, action.GoBack(), drawerOpts()).(*navstate.NavigationState)
	assert.Equal(t, 0, back.Index, "then GO_BACK behaves like a tab")
}

func TestDrawerFocusChangeClosesDrawer(t *testing.T) {
	r := NewDrawer(DrawerOptions{})
	s := r.GetInitialState(drawerOpts())
	s = r.GetStateForAction(s, action.OpenDrawer(), drawerOpts()).(*navstate.NavigationState)

	next := r.GetStateForAction(s, action.JumpTo("Archive", nil), drawerOpts()).(*navstate.NavigationState)

	assert.Equal(t, 1, next.Index)
	assert.Equal(t, navstate.DrawerClosed, r.Status(next))
}

func TestDrawerDefaultStatusOpen(t *testing.T) {
	r := NewDrawer(DrawerOptions{DefaultStatus: navstate.DrawerOpen})
	s := r.GetInitialState(drawerOpts())
	assert.Equal(t, navstate.DrawerOpen, r.Status(s))

	closed := r.GetStateForAction(s, action.CloseDrawer(), drawerOpts()).(*navstate.NavigationState)
	assert.Equal(t, navstate.DrawerClosed, r.Status(closed))

	back := r.GetStateForAction(closed, action.GoBack(), drawerOpts()).(*navstate.NavigationState)
	assert.Equal(t, navstate.DrawerOpen, r.Status(back), "GO_BACK restores the default status")
}

func TestDrawerRehydrateCarriesStatus(t *testing.T) {
	r := NewDrawer(DrawerOptions{})
	s := r.GetInitialState(drawerOpts())
	s = r.GetStateForAction(s, action.OpenDrawer(), drawerOpts()).(*navstate.NavigationState)

	rehydrated := r.GetRehydratedState(navstate.AsPartial(s), drawerOpts())

	require.NoError(t, navstate.Validate(rehydrated))
	assert.Equal(t, navstate.DrawerOpen, r.Status(rehydrated), "a persisted open drawer stays open")
}

func TestDrawerRehydrateRoutesWithoutIndexFocusesNamed(t *testing.T) {
	r := NewDrawer(DrawerOptions{})
	partial := &navstate.PartialState{
		Routes: []navstate.PartialRoute{{Name: "Trash"}},
	}

	s := r.GetRehydratedState(partial, drawerOpts())

	require.NoError(t, navstate.Validate(s))
	assert.Equal(t, 2, s.Index, "an index-less partial focuses the persisted route")
}

func TestDrawerRehydrateTypeMismatchRebuilds(t *testing.T) {
	r := NewDrawer(DrawerOptions{})
	tabState := NewTab(TabOptions{}).GetInitialState(drawerOpts())

	s := r.GetRehydratedState(tabState, drawerOpts())

	require.NoError(t, navstate.Validate(s))
	assert.Equal(t, DrawerType, s.Type)
}

func TestDrawerStackActionsUnhandled(t *testing.T) {
	r := NewDrawer(DrawerOptions{})
	s := r.GetInitialState(drawerOpts())

	assert.Nil(t, r.GetStateForAction(s, action.Push("Inbox", nil), drawerOpts()))
	assert.Nil(t, r.GetStateForAction(s, action.Pop(1), drawerOpts()))
}
