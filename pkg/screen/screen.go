// Package screen holds the declarative side of navigation: which screens a
// navigator shows, how they are configured, and the Descriptor unit handed
// to whatever renders them. The configuration here is folded into
// router.ConfigOptions before any router runs, and it is where configuration
// errors (duplicate names, unknown initial route, screens with nothing to
// show) are caught loudly instead of leaking into the transition algorithm.
package screen

import (
	"errors"
	"fmt"

	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/router"
)

// Configuration errors surfaced by Validate. They are programmer errors:
// detect them at startup and fail fast.
var (
	ErrNoScreens      = errors.New("screen: navigator has no screens")
	ErrEmptyName      = errors.New("screen: route name is empty")
	ErrDuplicateRoute = errors.New("screen: duplicate route name")
	ErrUnknownRoute   = errors.New("screen: unknown route name")
	ErrNothingToShow  = errors.New("screen: route has neither a render function nor a nested navigator")
)

// Options carries per-screen presentation hints. The navigation core never
// interprets them; they ride the Descriptor to the rendering layer.
type Options struct {
	// Title is the human-readable screen title.
	Title string

	// Hidden keeps the screen out of tab bars and drawers while still
	// navigable by name.
	Hidden bool

	// Extra holds renderer-specific hints the core has no vocabulary for.
	Extra map[string]any
}

// RenderFunc produces the visual representation of one route. What the
// string means is the rendering layer's business; the reference adapter in
// pkg/tui treats it as a terminal view.
type RenderFunc func(d Descriptor) string

// RouteConfig declares one screen of a navigator.
type RouteConfig struct {
	// Name is the route name screens navigate to. Unique per navigator.
	Name string

	// Options are presentation hints for the rendering layer.
	Options Options

	// InitialParams are the static params every fresh route of this name
	// starts with; explicit navigation params are merged on top.
	InitialParams navstate.Params

	// Render draws the screen. Exactly one of Render and Children should
	// be set; a route with Children renders its nested navigator.
	Render RenderFunc

	// Children declares a nested navigator hosted by this route.
	Children *Child
}

// Child is a nested navigator declaration: its router and its own screens.
type Child struct {
	Router  router.Router
	Screens Config
}

// Config is the ordered screen list of one navigator. Order matters: it is
// the routeNames order tab routers materialize and the placement rule for
// everything order-sensitive.
type Config []RouteConfig

// Validate checks the configuration and the router's initial route name
// against it. Any error here is a misconfiguration the program should refuse
// to start with.
func (c Config) Validate(r router.Router) error {
	if len(c) == 0 {
		return ErrNoScreens
	}

	seen := make(map[string]bool, len(c))
	for _, rc := range c {
		if rc.Name == "" {
			return ErrEmptyName
		}
		if seen[rc.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateRoute, rc.Name)
		}
		seen[rc.Name] = true

		if rc.Render == nil && rc.Children == nil {
			return fmt.Errorf("%w: %q", ErrNothingToShow, rc.Name)
		}
		if rc.Children != nil {
			if err := rc.Children.Screens.Validate(rc.Children.Router); err != nil {
				return fmt.Errorf("screen %q: %w", rc.Name, err)
			}
		}
	}

	if ir, ok := r.(interface{ InitialRouteName() string }); ok {
		if name := ir.InitialRouteName(); name != "" && !seen[name] {
			return fmt.Errorf("%w: initial route %q", ErrUnknownRoute, name)
		}
	}
	return nil
}

// ConfigOptions folds the screen list into the shape routers consume.
func (c Config) ConfigOptions() router.ConfigOptions {
	opts := router.ConfigOptions{
		RouteNames:     make([]string, len(c)),
		RouteParamList: make(map[string]navstate.Params, len(c)),
	}
	for i, rc := range c {
		opts.RouteNames[i] = rc.Name
		if rc.InitialParams != nil {
			opts.RouteParamList[rc.Name] = rc.InitialParams
		}
	}
	return opts
}

// Find returns the config for a route name, or nil.
func (c Config) Find(name string) *RouteConfig {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}

// Descriptor is the per-route unit the rendering layer consumes: the route,
// how to draw it, its presentation options, and the navigation capability
// its screen acts through.
type Descriptor struct {
	Route      navstate.Route
	Render     RenderFunc
	Options    Options
	Navigation Navigation
}

// View invokes the descriptor's render function. Routes that host a nested
// navigator have no render function of their own; the rendering layer
// recurses into the child instead.
func (d Descriptor) View() string {
	if d.Render == nil {
		return ""
	}
	return d.Render(d)
}
