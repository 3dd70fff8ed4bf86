package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/pathways/pkg/navstate"
)

func TestCreators(t *testing.T) {
	tests := []struct {
		name string
		act  Action
		want Action
	}{
		{"navigate", Navigate("Profile", navstate.Params{"id": 7}),
			Action{Type: TypeNavigate, Payload: Payload{Name: "Profile", Params: navstate.Params{"id": 7}}}},
		{"navigate by key", NavigateTo("Profile-1", nil),
			Action{Type: TypeNavigate, Payload: Payload{Key: "Profile-1"}}},
		{"go back", GoBack(), Action{Type: TypeGoBack}},
		{"set params", SetParams(navstate.Params{"q": "x"}),
			Action{Type: TypeSetParams, Payload: Payload{Params: navstate.Params{"q": "x"}}}},
		{"push", Push("Detail", nil), Action{Type: TypePush, Payload: Payload{Name: "Detail"}}},
		{"pop", Pop(2), Action{Type: TypePop, Payload: Payload{Count: 2}}},
		{"pop to top", PopToTop(), Action{Type: TypePopToTop}},
		{"replace", Replace("Login", nil), Action{Type: TypeReplace, Payload: Payload{Name: "Login"}}},
		{"jump to", JumpTo("Settings", nil), Action{Type: TypeJumpTo, Payload: Payload{Name: "Settings"}}},
		{"open drawer", OpenDrawer(), Action{Type: TypeOpenDrawer}},
		{"close drawer", CloseDrawer(), Action{Type: TypeCloseDrawer}},
		{"toggle drawer", ToggleDrawer(), Action{Type: TypeToggleDrawer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.act)
		})
	}
}

func TestActionJSONOmitsEmptyPayload(t *testing.T) {
	data, err := json.Marshal(GoBack())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"GO_BACK"}`, string(data))
}

func TestActionJSONRoundTrip(t *testing.T) {
	act := Navigate("Profile", navstate.Params{"user": "ada"})
	act.Source = "Home-1"
	act.Target = "tab-1"

	data, err := json.Marshal(act)
	require.NoError(t, err)

	var back Action
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, TypeNavigate, back.Type)
	assert.Equal(t, "Profile", back.Payload.Name)
	assert.Equal(t, "Home-1", back.Source)
	assert.Equal(t, "tab-1", back.Target)
}

func TestResetPayloadStateRoundTrip(t *testing.T) {
	act := Reset(&navstate.PartialState{
		Routes: []navstate.PartialRoute{{Name: "Home"}, {Name: "Profile"}},
	})

	data, err := json.Marshal(act)
	require.NoError(t, err)

	var back Action
	require.NoError(t, json.Unmarshal(data, &back))

	partial, ok := back.Payload.State.(*navstate.PartialState)
	require.True(t, ok, "reset payload without stale=false must stay partial")
	require.Len(t, partial.Routes, 2)
	assert.Equal(t, "Profile", partial.Routes[1].Name)
}

func TestResetPayloadFullStateRoundTrip(t *testing.T) {
	full := &navstate.NavigationState{
		Key:        "tab-1",
		Index:      0,
		RouteNames: []string{"Home"},
		Routes:     []navstate.Route{{Key: "Home-1", Name: "Home"}},
		Type:       "tab",
	}

	data, err := json.Marshal(Reset(full))
	require.NoError(t, err)

	var back Action
	require.NoError(t, json.Unmarshal(data, &back))

	state, ok := back.Payload.State.(*navstate.NavigationState)
	require.True(t, ok, "stale=false payload decodes as a full state")
	assert.Equal(t, "tab-1", state.Key)
}
