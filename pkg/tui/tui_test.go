package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navtree"
	"github.com/normanking/pathways/pkg/router"
	"github.com/normanking/pathways/pkg/screen"
)

func demoTree(t *testing.T) *navtree.Tree {
	t.Helper()
	tree, err := navtree.New(
		router.NewTab(router.TabOptions{}),
		screen.Config{
			{Name: "Feed", Options: screen.Options{Title: "Feed"}, Render: func(screen.Descriptor) string { return "feed body" }},
			{Name: "Search", Options: screen.Options{Title: "Search"}, Render: func(screen.Descriptor) string { return "search body" }},
		},
	)
	require.NoError(t, err)
	return tree
}

func TestViewRendersTabsAndFocusedScreen(t *testing.T) {
	m := New(demoTree(t))

	view := m.View()

	assert.Contains(t, view, "Feed")
	assert.Contains(t, view, "Search")
	assert.Contains(t, view, "feed body")
	assert.NotContains(t, view, "search body", "only the focused screen renders")
}

func TestDispatchMsgRoutesAction(t *testing.T) {
	m := New(demoTree(t))

	next, _ := m.Update(DispatchMsg{Action: action.JumpTo("Search", nil)})
	m = next.(Model)

	assert.Contains(t, m.View(), "search body")
}

func TestTabKeyCyclesTabs(t *testing.T) {
	m := New(demoTree(t))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, 1, m.Tree().Root().State().Index)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, 0, m.Tree().Root().State().Index, "cycling wraps around")
}

func TestBackKeyDispatchesGoBack(t *testing.T) {
	m := New(demoTree(t))
	next, _ := m.Update(DispatchMsg{Action: action.JumpTo("Search", nil)})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	assert.Equal(t, 0, m.Tree().Root().State().Index)
}

func TestQuitKey(t *testing.T) {
	m := New(demoTree(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNestedStackRendersBreadcrumb(t *testing.T) {
	tree, err := navtree.New(
		router.NewStack(router.StackOptions{}),
		screen.Config{
			{Name: "List", Options: screen.Options{Title: "Inbox"}, Render: func(screen.Descriptor) string { return "list body" }},
			{Name: "Detail", Options: screen.Options{Title: "Message"}, Render: func(screen.Descriptor) string { return "detail body" }},
		},
	)
	require.NoError(t, err)
	require.True(t, tree.Dispatch(action.Push("Detail", nil)))

	view := New(tree).View()

	assert.Contains(t, view, "Inbox")
	assert.Contains(t, view, "Message")
	assert.Contains(t, view, "detail body")
	assert.NotContains(t, view, "list body")

	tail := strings.Split(view, "\n")
	assert.Contains(t, tail[len(tail)-1], "esc back", "the status bar advertises back when available")
}
