package gamedata

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Controller kinds accepted in AgentDef.Controller.
const (
	ControllerHuman = "human"
	ControllerAI    = "ai"
)

// PointDef is a world position in pixels.
type PointDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RectDef is an axis-aligned rectangle in pixels.
type RectDef struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlagDef places a coloured marker in the world.
type FlagDef struct {
	At    PointDef `yaml:"at"`
	Color string   `yaml:"color"` // Hex color code (e.g., "#FF0000")
}

// TunnelDef is a tunnel carved before play starts.
type TunnelDef struct {
	Start PointDef `yaml:"start"`
	End   PointDef `yaml:"end"`
}

// AgentDef places an agent in the world.
type AgentDef struct {
	Name       string   `yaml:"name"`
	Controller string   `yaml:"controller"` // "human" or "ai"
	At         PointDef `yaml:"at"`
	Color      string   `yaml:"color"`
	// Waypoint is the tunnel the agent starts at, if any.
	Waypoint *int `yaml:"waypoint,omitempty"`
	// Patrol lists the tunnels an AI agent visits in turn.
	Patrol []int `yaml:"patrol,omitempty"`
}

// TCellColor returns the agent color, or white if it cannot be parsed.
func (a *AgentDef) TCellColor() tcell.Color {
	return ColorOr(a.Color, tcell.ColorWhite)
}

// TCellColor returns the flag color, or white if it cannot be parsed.
func (f *FlagDef) TCellColor() tcell.Color {
	return ColorOr(f.Color, tcell.ColorWhite)
}

// Scenario describes the initial state of a world: its size, the earth
// region, flags, pre-dug tunnels with their links, and the agents.
type Scenario struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	Earth       RectDef     `yaml:"earth"`
	Flags       []FlagDef   `yaml:"flags"`
	Tunnels     []TunnelDef `yaml:"tunnels"`
	Edges       [][2]int    `yaml:"edges"`
	Agents      []AgentDef  `yaml:"agents"`
}

// Validate checks that every reference in the scenario resolves.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return errors.New("scenario without id")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("scenario %q: invalid size %dx%d", s.ID, s.Width, s.Height)
	}
	validTunnel := func(id int) bool { return id >= 0 && id < len(s.Tunnels) }
	for _, e := range s.Edges {
		if !validTunnel(e[0]) || !validTunnel(e[1]) {
			return errors.Errorf("scenario %q: edge %v references unknown tunnel", s.ID, e)
		}
	}
	for i, a := range s.Agents {
		switch a.Controller {
		case ControllerHuman, ControllerAI:
		default:
			return errors.Errorf("scenario %q: agent %d has unknown controller %q", s.ID, i, a.Controller)
		}
		if a.Waypoint != nil && !validTunnel(*a.Waypoint) {
			return errors.Errorf("scenario %q: agent %d starts at unknown tunnel %d", s.ID, i, *a.Waypoint)
		}
		for _, p := range a.Patrol {
			if !validTunnel(p) {
				return errors.Errorf("scenario %q: agent %d patrols unknown tunnel %d", s.ID, i, p)
			}
		}
	}
	return nil
}

// ScenariosFile represents the structure of scenarios.yaml.
type ScenariosFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios loads scenario definitions from the embedded scenarios.yaml file.
func LoadScenarios() ([]Scenario, error) {
	file, err := Load[ScenariosFile]("scenarios.yaml")
	if err != nil {
		return nil, err
	}
	for i := range file.Scenarios {
		if err := file.Scenarios[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Scenarios, nil
}
