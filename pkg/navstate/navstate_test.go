package navstate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validState() *NavigationState {
	return &NavigationState{
		Key:        "tab-1",
		Index:      1,
		RouteNames: []string{"Home", "Profile", "Settings"},
		Routes: []Route{
			{Key: "Home-1", Name: "Home"},
			{Key: "Profile-1", Name: "Profile", Params: Params{"user": "ada"}},
			{Key: "Settings-1", Name: "Settings"},
		},
		Type:    "tab",
		Stale:   false,
		History: []HistoryEntry{{Type: HistoryRoute, Key: "Home-1"}, {Type: HistoryRoute, Key: "Profile-1"}},
	}
}

// ============================================================================
// Params
// ============================================================================

func TestParamsMerge(t *testing.T) {
	base := Params{"a": 1, "b": 2}
	merged := base.Merge(Params{"b": 3, "c": 4})

	assert.Equal(t, Params{"a": 1, "b": 3, "c": 4}, merged)
	assert.Equal(t, Params{"a": 1, "b": 2}, base, "merge must not mutate the receiver")
}

func TestParamsMergeNil(t *testing.T) {
	assert.Nil(t, Params(nil).Merge(nil))
	assert.Equal(t, Params{"a": 1}, Params(nil).Merge(Params{"a": 1}))
	assert.Equal(t, Params{"a": 1}, Params{"a": 1}.Merge(nil))
}

// ============================================================================
// Lookup helpers
// ============================================================================

func TestStateLookups(t *testing.T) {
	s := validState()

	assert.Equal(t, "Profile-1", s.FocusedRoute().Key)
	assert.Equal(t, 2, s.IndexOfKey("Settings-1"))
	assert.Equal(t, -1, s.IndexOfKey("nope"))
	assert.True(t, s.HasRouteName("Home"))
	assert.False(t, s.HasRouteName("Missing"))
}

func TestLastIndexOfName(t *testing.T) {
	s := &NavigationState{
		Key:        "stack-1",
		Index:      2,
		RouteNames: []string{"Feed", "Article"},
		Routes: []Route{
			{Key: "Feed-1", Name: "Feed"},
			{Key: "Article-1", Name: "Article"},
			{Key: "Article-2", Name: "Article"},
		},
		Type: "stack",
	}

	assert.Equal(t, 2, s.LastIndexOfName("Article"), "names resolve from the top down")
	assert.Equal(t, 0, s.LastIndexOfName("Feed"))
	assert.Equal(t, -1, s.LastIndexOfName("Missing"))
}

// ============================================================================
// Decode / Encode
// ============================================================================

func TestDecodeFullState(t *testing.T) {
	data, err := Encode(validState())
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	full, ok := decoded.(*NavigationState)
	require.True(t, ok, "stale=false must decode as a full state")
	assert.Equal(t, validState(), full)
}

func TestDecodeStaleAsPartial(t *testing.T) {
	decoded, err := Decode([]byte(`{"stale":true,"index":1,"routes":[{"name":"Home"}]}`))
	require.NoError(t, err)

	partial, ok := decoded.(*PartialState)
	require.True(t, ok, "stale=true must decode as a partial state")
	assert.True(t, partial.MarkedStale())
	require.NotNil(t, partial.Index)
	assert.Equal(t, 1, *partial.Index)
}

func TestDecodeAbsentStaleAsPartial(t *testing.T) {
	decoded, err := Decode([]byte(`{"routes":[{"name":"Home","params":{"x":1}}]}`))
	require.NoError(t, err)

	partial, ok := decoded.(*PartialState)
	require.True(t, ok, "absent stale must be treated as untrusted")
	assert.True(t, partial.MarkedStale())
	assert.Nil(t, partial.Index)
	assert.Empty(t, partial.Key)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte(`{`))
	assert.Error(t, err)
}

func TestRouteNestedStateRoundTrip(t *testing.T) {
	inner := validState()
	outer := &NavigationState{
		Key:        "stack-9",
		Index:      0,
		RouteNames: []string{"Tabs"},
		Routes:     []Route{{Key: "Tabs-1", Name: "Tabs", State: inner}},
		Type:       "stack",
	}

	data, err := json.Marshal(outer)
	require.NoError(t, err)

	var back NavigationState
	require.NoError(t, json.Unmarshal(data, &back))

	nested, ok := back.Routes[0].State.(*NavigationState)
	require.True(t, ok, "hydrated nested state must decode as full")
	assert.Equal(t, inner.Key, nested.Key)
	assert.Equal(t, inner.Routes[1].Params, nested.Routes[1].Params)
}

func TestRouteNestedPartialRoundTrip(t *testing.T) {
	outer := &NavigationState{
		Key:        "stack-9",
		Index:      0,
		RouteNames: []string{"Tabs"},
		Routes: []Route{{
			Key:  "Tabs-1",
			Name: "Tabs",
			State: &PartialState{
				Routes: []PartialRoute{{Name: "Home"}},
			},
		}},
		Type: "stack",
	}

	data, err := json.Marshal(outer)
	require.NoError(t, err)

	var back NavigationState
	require.NoError(t, json.Unmarshal(data, &back))

	nested, ok := back.Routes[0].State.(*PartialState)
	require.True(t, ok, "stale nested state must stay partial")
	assert.True(t, nested.MarkedStale())
	assert.Equal(t, "Home", nested.Routes[0].Name)
}

// ============================================================================
// Validate
// ============================================================================

func TestValidateAcceptsValidState(t *testing.T) {
	require.NoError(t, Validate(validState()))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NavigationState)
	}{
		{"nil routes", func(s *NavigationState) { s.Routes = nil }},
		{"index negative", func(s *NavigationState) { s.Index = -1 }},
		{"index past end", func(s *NavigationState) { s.Index = 3 }},
		{"missing state key", func(s *NavigationState) { s.Key = "" }},
		{"missing type", func(s *NavigationState) { s.Type = "" }},
		{"stale", func(s *NavigationState) { s.Stale = true }},
		{"route missing key", func(s *NavigationState) { s.Routes[0].Key = "" }},
		{"duplicate route key", func(s *NavigationState) { s.Routes[2].Key = "Home-1" }},
		{"name outside routeNames", func(s *NavigationState) { s.Routes[0].Name = "Ghost" }},
		{"history dangling key", func(s *NavigationState) {
			s.History = []HistoryEntry{{Type: HistoryRoute, Key: "gone"}}
		}},
		{"history bad drawer status", func(s *NavigationState) {
			s.History = []HistoryEntry{{Type: HistoryDrawer, Status: "ajar"}}
		}},
		{"history unknown entry type", func(s *NavigationState) {
			s.History = []HistoryEntry{{Type: "modal"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			tt.mutate(s)
			assert.Error(t, Validate(s))
		})
	}
}

func TestValidateDeep(t *testing.T) {
	inner := validState()
	inner.Index = 99 // corrupt the nested level only
	outer := &NavigationState{
		Key:        "stack-1",
		Index:      0,
		RouteNames: []string{"Tabs"},
		Routes:     []Route{{Key: "Tabs-1", Name: "Tabs", State: inner}},
		Type:       "stack",
	}

	assert.NoError(t, Validate(outer), "shallow validation ignores nested states")
	assert.Error(t, ValidateDeep(outer))
}

func TestValidateDeepAllowsNestedPartial(t *testing.T) {
	outer := validState()
	outer.Routes[0].State = &PartialState{Routes: []PartialRoute{{Name: "X"}}}
	assert.NoError(t, ValidateDeep(outer), "unhydrated children are legal mid-rehydration")
}

// ============================================================================
// AsPartial
// ============================================================================

func TestAsPartial(t *testing.T) {
	s := validState()
	s.Routes[0].State = &NavigationState{
		Key:        "stack-2",
		Index:      0,
		RouteNames: []string{"Feed"},
		Routes:     []Route{{Key: "Feed-1", Name: "Feed"}},
		Type:       "stack",
	}

	p := AsPartial(s)
	require.NotNil(t, p)
	assert.True(t, p.MarkedStale())
	assert.Equal(t, s.Key, p.Key)
	require.NotNil(t, p.Index)
	assert.Equal(t, s.Index, *p.Index)
	require.Len(t, p.Routes, 3)
	assert.Equal(t, "Home-1", p.Routes[0].Key)

	nested := p.Routes[0].State
	require.NotNil(t, nested)
	assert.True(t, nested.MarkedStale(), "nested full states become partial too")
	assert.Equal(t, "stack-2", nested.Key)
}

func TestAsPartialNil(t *testing.T) {
	assert.Nil(t, AsPartial(nil))
}
