package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/normanking/pathways/pkg/navstate"
)

func TestResolveInitialRoute(t *testing.T) {
	opts := ConfigOptions{RouteNames: []string{"A", "B", "C"}}

	name, idx := resolveInitialRoute(opts, "B")
	assert.Equal(t, "B", name)
	assert.Equal(t, 1, idx)

	name, idx = resolveInitialRoute(opts, "")
	assert.Equal(t, "A", name)
	assert.Equal(t, 0, idx)

	name, idx = resolveInitialRoute(opts, "Ghost")
	assert.Equal(t, "A", name, "an unconfigured preference falls back to the first route")
	assert.Equal(t, 0, idx)
}

func TestResolveInitialRoutePanicsWithoutNames(t *testing.T) {
	assert.Panics(t, func() { resolveInitialRoute(ConfigOptions{}, "") })
}

func TestMustValidNames(t *testing.T) {
	assert.NotPanics(t, func() {
		mustValidNames(ConfigOptions{RouteNames: []string{"A", "B"}})
	})
	assert.Panics(t, func() {
		mustValidNames(ConfigOptions{RouteNames: []string{"A", "A"}})
	}, "duplicate route names are a configuration error")
}

func TestNewRouteAppliesStaticParams(t *testing.T) {
	opts := ConfigOptions{
		RouteNames:     []string{"A"},
		RouteParamList: map[string]navstate.Params{"A": {"size": 10, "color": "red"}},
	}

	r := newRoute(opts, "A", navstate.Params{"size": 12})

	assert.Equal(t, "A", r.Name)
	assert.NotEmpty(t, r.Key)
	assert.Equal(t, navstate.Params{"size": 12, "color": "red"}, r.Params, "explicit params sit on top of static ones")
}
