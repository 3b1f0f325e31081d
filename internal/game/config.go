package game

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/samdwyer/tunnelnet/internal/gamedata"
)

// Defaults for Config.
const (
	DefaultFPS   = 36
	DefaultTicks = 36 * 60
)

// Environment variables read by ConfigFromEnv.
const (
	EnvScenario = "TUNNELNET_SCENARIO"
	EnvFPS      = "TUNNELNET_FPS"
	EnvDebug    = "TUNNELNET_DEBUG"
)

// Config holds game configuration options.
type Config struct {
	// Scenario is the id of the scenario that sets up the world.
	Scenario string
	// FPS is the number of simulation ticks per second.
	FPS int
	// Debug starts with the waypoint overlay shown.
	Debug bool
	// Headless runs Ticks ticks without a terminal.
	Headless bool
	Ticks    int
	// Telemetry enables OTLP trace export.
	Telemetry bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Scenario: gamedata.DefaultScenario,
		FPS:      DefaultFPS,
		Ticks:    DefaultTicks,
	}
}

// ConfigFromEnv returns the default configuration overridden by the
// TUNNELNET_* variables found through lookup (usually os.LookupEnv).
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvScenario); ok && v != "" {
		cfg.Scenario = v
	}
	if v, ok := lookup(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvFPS)
		}
		cfg.FPS = fps
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", EnvDebug)
		}
		cfg.Debug = debug
	}
	return cfg, nil
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if c.Scenario == "" {
		return errors.New("no scenario selected")
	}
	if c.FPS <= 0 {
		return errors.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Headless && c.Ticks <= 0 {
		return errors.Errorf("ticks must be positive in headless mode, got %d", c.Ticks)
	}
	return nil
}
