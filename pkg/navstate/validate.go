package navstate

import (
	"fmt"
	"slices"
)

// Validate checks every NavigationState invariant. A state produced by a
// router always passes; failures indicate either hand-built states or a
// router bug, so callers should treat an error here as a programmer error,
// not a runtime condition to recover from.
func Validate(s *NavigationState) error {
	if s == nil {
		return fmt.Errorf("navstate: state is nil")
	}
	if s.Key == "" {
		return fmt.Errorf("navstate: state has no key")
	}
	if s.Type == "" {
		return fmt.Errorf("navstate: state %q has no navigator type", s.Key)
	}
	if s.Stale {
		return fmt.Errorf("navstate: state %q is marked stale", s.Key)
	}
	if len(s.Routes) == 0 {
		return fmt.Errorf("navstate: state %q has no routes", s.Key)
	}
	if s.Index < 0 || s.Index >= len(s.Routes) {
		return fmt.Errorf("navstate: state %q index %d out of range [0,%d)", s.Key, s.Index, len(s.Routes))
	}

	seenKeys := make(map[string]bool, len(s.Routes))
	for i, route := range s.Routes {
		if route.Key == "" {
			return fmt.Errorf("navstate: state %q route %d (%s) has no key", s.Key, i, route.Name)
		}
		if seenKeys[route.Key] {
			return fmt.Errorf("navstate: state %q has duplicate route key %q", s.Key, route.Key)
		}
		seenKeys[route.Key] = true
		if !slices.Contains(s.RouteNames, route.Name) {
			return fmt.Errorf("navstate: state %q route %q has name %q not in routeNames", s.Key, route.Key, route.Name)
		}
	}

	for _, entry := range s.History {
		switch entry.Type {
		case HistoryRoute:
			if !seenKeys[entry.Key] {
				return fmt.Errorf("navstate: state %q history references unknown route key %q", s.Key, entry.Key)
			}
		case HistoryDrawer:
			if entry.Status != DrawerOpen && entry.Status != DrawerClosed {
				return fmt.Errorf("navstate: state %q history has invalid drawer status %q", s.Key, entry.Status)
			}
		default:
			return fmt.Errorf("navstate: state %q history has unknown entry type %q", s.Key, entry.Type)
		}
	}
	return nil
}

// ValidateDeep validates the state and every hydrated nested state below it.
// Nested partial states are permitted: they are exactly what rehydration has
// not reached yet.
func ValidateDeep(s *NavigationState) error {
	if err := Validate(s); err != nil {
		return err
	}
	for _, route := range s.Routes {
		if nested, ok := route.State.(*NavigationState); ok {
			if err := ValidateDeep(nested); err != nil {
				return fmt.Errorf("nested in route %q: %w", route.Key, err)
			}
		}
	}
	return nil
}
