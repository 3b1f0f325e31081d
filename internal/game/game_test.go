package game

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tunnelnet/internal/entity"
	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/ui"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{StateQuit, "quit"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.String())
	}
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		EnvScenario: "gallery",
		EnvFPS:      "60",
		EnvDebug:    "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := ConfigFromEnv(lookup)
	require.NoError(t, err)
	assert.Equal(t, "gallery", cfg.Scenario)
	assert.Equal(t, 60, cfg.FPS)
	assert.True(t, cfg.Debug)
	assert.Equal(t, DefaultTicks, cfg.Ticks)

	env[EnvFPS] = "fast"
	_, err = ConfigFromEnv(lookup)
	assert.ErrorContains(t, err, EnvFPS)

	cfg, err = ConfigFromEnv(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.FPS = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Scenario = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Headless = true
	cfg.Ticks = -1
	assert.Error(t, cfg.Validate())
}

func TestHumanCommand(t *testing.T) {
	tests := []struct {
		key    tcell.Key
		r      rune
		action entity.Action
		want   Command
		ok     bool
	}{
		{tcell.KeyLeft, 0, entity.ActionWalking, CmdWalkLeft, true},
		{tcell.KeyRight, 0, entity.ActionWalking, CmdWalkRight, true},
		{tcell.KeyUp, 0, entity.ActionWalking, CmdJump, true},
		{tcell.KeyDown, 0, entity.ActionWalking, 0, false},
		{tcell.KeyLeft, 0, entity.ActionDigging, CmdDigLeft, true},
		{tcell.KeyRight, 0, entity.ActionDigging, CmdDigRight, true},
		{tcell.KeyUp, 0, entity.ActionDigging, CmdDigUp, true},
		{tcell.KeyDown, 0, entity.ActionDigging, CmdDigDown, true},
		{tcell.KeyRune, 'd', entity.ActionWalking, CmdToggleDigging, true},
		{tcell.KeyRune, ' ', entity.ActionWalking, CmdStop, true},
		{tcell.KeyRune, ' ', entity.ActionDigging, CmdHaltDig, true},
		{tcell.KeyRune, 'r', entity.ActionFalling, CmdReset, true},
		{tcell.KeyRune, 'x', entity.ActionWalking, 0, false},
	}
	for _, tt := range tests {
		got, ok := humanCommand(tt.key, tt.r, tt.action)
		assert.Equal(t, tt.ok, ok, "key %v %q while %s", tt.key, tt.r, tt.action)
		if tt.ok {
			assert.Equal(t, tt.want, got, "key %v %q while %s", tt.key, tt.r, tt.action)
		}
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	scr, err := ui.NewScreenFrom(tcell.NewSimulationScreen(""))
	require.NoError(t, err)
	t.Cleanup(scr.Close)

	registry := gamedata.MustLoadScenarioRegistry()
	g := newGame(DefaultConfig(), registry, scr)
	g.sim, err = newSimulation(context.Background(), g.cfg, registry)
	require.NoError(t, err)
	return g
}

func TestGameKeys(t *testing.T) {
	g := newTestGame(t)
	require.False(t, g.debug)

	g.handleKeyEvent(tcell.KeyRune, 'g')
	assert.True(t, g.debug)

	g.handleKeyEvent(tcell.KeyRune, 'p')
	assert.Equal(t, StatePaused, g.state)
	assert.True(t, strings.Contains(g.status(), "PAUSED"))
	g.handleKeyEvent(tcell.KeyRune, 'p')
	assert.Equal(t, StatePlaying, g.state)

	g.handleKeyEvent(tcell.KeyLeft, 0)
	g.handleKeyEvent(tcell.KeyRune, 'r')
	assert.Equal(t, []Command{CmdWalkLeft, CmdReset}, g.sim.pending[0])

	g.handleKeyEvent(tcell.KeyEscape, 0)
	assert.Equal(t, StateQuit, g.state)
}

func TestGameStatus(t *testing.T) {
	g := newTestGame(t)
	s := g.status()
	assert.Contains(t, s, "Flag patrol")
	assert.Contains(t, s, "digger falling")
	assert.Contains(t, s, "tick 0")
}

func TestRunStopsOnCancel(t *testing.T) {
	scr, err := ui.NewScreenFrom(tcell.NewSimulationScreen(""))
	require.NoError(t, err)
	g := newGame(DefaultConfig(), gamedata.MustLoadScenarioRegistry(), scr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Run(ctx), context.Canceled)
}
