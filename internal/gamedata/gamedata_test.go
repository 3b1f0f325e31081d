package gamedata

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarios(t *testing.T) {
	scenarios, err := LoadScenarios()
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	expectedIDs := map[string]bool{"classic": false, "gallery": false, "sandbox": false}
	for _, s := range scenarios {
		if _, ok := expectedIDs[s.ID]; ok {
			expectedIDs[s.ID] = true
		}
	}
	for id, found := range expectedIDs {
		assert.True(t, found, "expected scenario %q", id)
	}
}

func TestScenarioRegistry(t *testing.T) {
	registry, err := LoadScenarioRegistry()
	require.NoError(t, err)
	assert.Equal(t, 3, registry.Count())
	assert.Equal(t, []string{"classic", "gallery", "sandbox"}, registry.IDs())

	classic := registry.GetByID(DefaultScenario)
	require.NotNil(t, classic)
	assert.Equal(t, 1920, classic.Width)
	assert.Len(t, classic.Tunnels, 6)
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, classic.Edges)
	require.Len(t, classic.Agents, 4)
	assert.Equal(t, ControllerHuman, classic.Agents[0].Controller)
	require.NotNil(t, classic.Agents[2].Waypoint)
	assert.Equal(t, 0, *classic.Agents[2].Waypoint)
	assert.Equal(t, []int{1, 0}, classic.Agents[2].Patrol)

	_, err = registry.Lookup("nope")
	assert.ErrorContains(t, err, "unknown scenario")
}

func TestScenarioValidate(t *testing.T) {
	base := func() Scenario {
		return Scenario{
			ID:      "t",
			Width:   100,
			Height:  100,
			Tunnels: []TunnelDef{{}, {}},
			Edges:   [][2]int{{0, 1}},
			Agents:  []AgentDef{{Controller: ControllerAI, Patrol: []int{0, 1}}},
		}
	}
	s := base()
	require.NoError(t, s.Validate())

	s = base()
	s.Edges = append(s.Edges, [2]int{1, 2})
	assert.Error(t, s.Validate())

	s = base()
	s.Agents[0].Controller = "robot"
	assert.Error(t, s.Validate())

	s = base()
	bad := 5
	s.Agents[0].Waypoint = &bad
	assert.Error(t, s.Validate())

	s = base()
	s.Agents[0].Patrol = []int{-1}
	assert.Error(t, s.Validate())

	s = base()
	s.Width = 0
	assert.Error(t, s.Validate())
}

func TestParseRejectsUnknownFields(t *testing.T) {
	var file ScenariosFile
	err := Parse([]byte("scenarios:\n  - id: x\n    colour: red\n"), &file)
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#c8826e", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid {
			assert.NoError(t, err, tt.input)
		} else {
			assert.Error(t, err, tt.input)
		}
	}

	c, err := ParseHexColor("#FF0000")
	require.NoError(t, err)
	r, g, b := c.RGB()
	assert.Equal(t, []int32{255, 0, 0}, []int32{r, g, b})
}

func TestDefColors(t *testing.T) {
	agent := AgentDef{Color: "#00FF00"}
	assert.Equal(t, tcell.NewRGBColor(0, 255, 0), agent.TCellColor())

	flag := FlagDef{Color: "oops"}
	assert.Equal(t, tcell.ColorWhite, flag.TCellColor())

	assert.Equal(t, tcell.ColorRed, ColorOr("#zz0000", tcell.ColorRed))
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), ColorOr("#0000FF", tcell.ColorRed))
}
