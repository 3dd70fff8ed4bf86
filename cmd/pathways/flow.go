package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/router"
	"github.com/normanking/pathways/pkg/screen"
)

// flowFile is the YAML schema for demo flows: a declarative navigator tree
// the demo folds into routers and screen configs. It exists so the demo can
// show arbitrary navigation structures without recompiling.
type flowFile struct {
	Navigator flowNavigator `yaml:"navigator"`
}

type flowNavigator struct {
	// Type is the navigator kind: stack, tab or drawer.
	Type string `yaml:"type"`

	// InitialRoute is the route focused at creation.
	InitialRoute string `yaml:"initialRoute,omitempty"`

	// BackBehavior applies to tab and drawer navigators.
	BackBehavior string `yaml:"backBehavior,omitempty"`

	Screens []flowScreen `yaml:"screens"`
}

type flowScreen struct {
	Name   string         `yaml:"name"`
	Title  string         `yaml:"title,omitempty"`
	Body   string         `yaml:"body,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`

	// Children nests another navigator under this screen.
	Children *flowNavigator `yaml:"children,omitempty"`
}

// loadFlow reads a flow file, or returns the built-in demo flow for an
// empty path.
func loadFlow(path string) (*flowNavigator, error) {
	if path == "" {
		return defaultFlow(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow: %w", err)
	}
	var f flowFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse flow %s: %w", path, err)
	}
	return &f.Navigator, nil
}

// build turns a flow navigator into a router and its screen config.
func (f *flowNavigator) build() (router.Router, screen.Config, error) {
	var r router.Router
	switch f.Type {
	case router.StackType, "":
		r = router.NewStack(router.StackOptions{InitialRouteName: f.InitialRoute})
	case router.TabType:
		r = router.NewTab(router.TabOptions{
			InitialRouteName: f.InitialRoute,
			BackBehavior:     router.BackBehavior(f.BackBehavior),
		})
	case router.DrawerType:
		r = router.NewDrawer(router.DrawerOptions{TabOptions: router.TabOptions{
			InitialRouteName: f.InitialRoute,
			BackBehavior:     router.BackBehavior(f.BackBehavior),
		}})
	default:
		return nil, nil, fmt.Errorf("unknown navigator type %q", f.Type)
	}

	cfg := make(screen.Config, 0, len(f.Screens))
	for _, fs := range f.Screens {
		rc := screen.RouteConfig{
			Name:          fs.Name,
			Options:       screen.Options{Title: fs.Title},
			InitialParams: navstate.Params(fs.Params),
		}
		if fs.Children != nil {
			childRouter, childScreens, err := fs.Children.build()
			if err != nil {
				return nil, nil, fmt.Errorf("screen %q: %w", fs.Name, err)
			}
			rc.Children = &screen.Child{Router: childRouter, Screens: childScreens}
		} else {
			rc.Render = bodyRenderer(fs.Body)
		}
		cfg = append(cfg, rc)
	}
	return r, cfg, nil
}

// bodyRenderer renders a static body plus whatever params the route has
// accumulated, so dispatched SET_PARAMS are visible in the demo.
func bodyRenderer(body string) screen.RenderFunc {
	return func(d screen.Descriptor) string {
		var b strings.Builder
		if body != "" {
			b.WriteString(body)
		} else {
			b.WriteString(d.Route.Name)
		}
		if len(d.Route.Params) > 0 {
			b.WriteString("\n\nparams:")
			for k, v := range d.Route.Params {
				fmt.Fprintf(&b, "\n  %s: %v", k, v)
			}
		}
		return b.String()
	}
}

// defaultFlow is the built-in demo: tabs at the root, a stack inside the
// first tab.
func defaultFlow() *flowNavigator {
	return &flowNavigator{
		Type:         router.TabType,
		InitialRoute: "Inbox",
		Screens: []flowScreen{
			{Name: "Inbox", Title: "Inbox", Children: &flowNavigator{
				Type: router.StackType,
				Screens: []flowScreen{
					{Name: "Messages", Title: "Messages", Body: "You have no new messages."},
					{Name: "Thread", Title: "Thread", Body: "Thread view."},
				},
			}},
			{Name: "Contacts", Title: "Contacts", Body: "Nobody here yet."},
			{Name: "Settings", Title: "Settings", Body: "Nothing to configure."},
		},
	}
}
