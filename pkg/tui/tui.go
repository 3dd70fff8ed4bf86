// Package tui is the reference rendering adapter: the Bubble Tea side of
// the Descriptor boundary. It consumes descriptors from a navigator tree
// and draws the focused path (tab bars for tab and drawer navigators,
// breadcrumbs for stacks) without reaching into any router internals. The
// navigation core stays renderer-agnostic; this package is one consumer of
// its output and a worked example for writing others.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/normanking/pathways/pkg/action"
	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/navtree"
	"github.com/normanking/pathways/pkg/router"
)

// DispatchMsg asks the model to route one navigation action. Screens return
// it from their own update logic via Dispatch.
type DispatchMsg struct {
	Action action.Action
}

// Dispatch wraps an action in a command, the Bubble Tea way for a screen to
// navigate.
func Dispatch(act action.Action) tea.Cmd {
	return func() tea.Msg { return DispatchMsg{Action: act} }
}

// KeyMap is the model's key bindings.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.NextTab, k.PrevTab}, {k.Back, k.Help, k.Quit}}
}

// Styles groups the lipgloss styles the adapter draws with.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Breadcrumb  lipgloss.Style
	Crumb       lipgloss.Style
	Pane        lipgloss.Style
	StatusBar   lipgloss.Style
}

// DefaultStyles returns the stock look.
func DefaultStyles() Styles {
	return Styles{
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		Breadcrumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Crumb:       lipgloss.NewStyle().Bold(true),
		Pane:        lipgloss.NewStyle().Padding(1, 2),
		StatusBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Model renders one navigator tree. It owns no navigation state of its own;
// every transition goes through the tree and the view is re-derived from
// tree snapshots.
type Model struct {
	tree   *navtree.Tree
	keys   KeyMap
	styles Styles
	help   help.Model

	width    int
	height   int
	showHelp bool
}

// New returns a model over the given tree.
func New(tree *navtree.Tree) Model {
	return Model{
		tree:   tree,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		help:   help.New(),
	}
}

// Tree returns the model's navigator tree.
func (m Model) Tree() *navtree.Tree { return m.tree }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case DispatchMsg:
		m.tree.Dispatch(msg.Action)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Back):
			m.tree.Dispatch(action.GoBack())
		case key.Matches(msg, m.keys.NextTab):
			m.shiftTab(1)
		case key.Matches(msg, m.keys.PrevTab):
			m.shiftTab(-1)
		}
	}
	return m, nil
}

// shiftTab moves focus inside the innermost tab-like navigator on the
// focused path, wrapping around the edges.
func (m Model) shiftTab(delta int) {
	nav := m.focusedTabNavigator()
	if nav == nil {
		return
	}
	st := nav.State()
	next := st.Routes[(st.Index+delta+len(st.Routes))%len(st.Routes)]

	act := action.JumpTo(next.Name, nil)
	act.Target = nav.Key()
	m.tree.Dispatch(act)
}

func (m Model) focusedTabNavigator() *navtree.Navigator {
	var hit *navtree.Navigator
	for nav := m.tree.Root(); nav != nil; {
		if nav.Router().Type() != router.StackType {
			hit = nav
		}
		nav = nav.Child(nav.State().FocusedRoute().Key)
	}
	return hit
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNavigator(m.tree.Root()))
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderNavigator draws one navigator: its chrome (tab bar or breadcrumb)
// and then the focused route, recursing into a nested navigator when the
// route hosts one.
func (m Model) renderNavigator(nav *navtree.Navigator) string {
	st := nav.State()

	var chrome string
	switch nav.Router().Type() {
	case router.StackType:
		chrome = m.renderBreadcrumb(nav, st)
	default:
		chrome = m.renderTabBar(nav, st)
	}

	focused := st.FocusedRoute()
	var content string
	if child := nav.Child(focused.Key); child != nil {
		content = m.renderNavigator(child)
	} else {
		content = m.styles.Pane.Render(nav.FocusedDescriptor().View())
	}

	if chrome == "" {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Left, chrome, content)
}

func (m Model) renderTabBar(nav *navtree.Navigator, st *navstate.NavigationState) string {
	tabs := make([]string, 0, len(st.Routes))
	for i, d := range nav.Descriptors() {
		if d.Options.Hidden {
			continue
		}
		title := d.Options.Title
		if title == "" {
			title = d.Route.Name
		}
		if i == st.Index {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) renderBreadcrumb(nav *navtree.Navigator, st *navstate.NavigationState) string {
	if len(st.Routes) == 1 {
		return ""
	}
	crumbs := make([]string, 0, len(st.Routes))
	for i, d := range nav.Descriptors() {
		title := d.Options.Title
		if title == "" {
			title = d.Route.Name
		}
		if i == st.Index {
			crumbs = append(crumbs, m.styles.Crumb.Render(title))
		} else {
			crumbs = append(crumbs, title)
		}
	}
	return m.styles.Breadcrumb.Render(strings.Join(crumbs, " › "))
}

func (m Model) statusBar() string {
	parts := []string{"? help"}
	if m.tree.CanGoBack() {
		parts = append([]string{"esc back"}, parts...)
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " · "))
}
