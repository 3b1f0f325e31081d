// Package entity provides the agents that walk, fall and dig through the world.
package entity

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

// Movement constants in pixels per tick.
const (
	SpeedWalking = 2.0
	SpeedDigging = 1.0 // Lower than SpeedWalking.
	SpeedJumping = 3.5 // Initial upward speed of a jump.
)

// Body size in pixels. Position is the point between the agent's feet.
const (
	Height = 20
	Width  = 10
)

// Facing is the direction an agent looks at.
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// String returns the facing name.
func (f Facing) String() string {
	if f == FacingRight {
		return "right"
	}
	return "left"
}

// Action is the state of an agent's movement state machine.
type Action int

const (
	ActionFalling Action = iota
	ActionWalking
	ActionDigging
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionFalling:
		return "falling"
	case ActionWalking:
		return "walking"
	case ActionDigging:
		return "digging"
	default:
		return "unknown"
	}
}

// Controller tells who issues an agent's commands.
type Controller int

const (
	ControllerHuman Controller = iota
	ControllerAI
)

// String returns the controller name.
func (c Controller) String() string {
	if c == ControllerAI {
		return gamedata.ControllerAI
	}
	return gamedata.ControllerHuman
}

// Agent is a digger or a patrolling guard.
type Agent struct {
	ID         int
	Name       string
	Controller Controller
	Color      tcell.Color

	Pos    waypoint.Point // Feet position in world pixels
	VX, VY float64        // Velocity in pixels per tick
	Facing Facing
	Action Action

	// Active are the tunnels the agent currently stands at: none, one, or
	// two while standing in the gap between two linked tunnel mouths.
	Active []int
	// Patrol lists the tunnels an AI visits in turn. It is rotated, never consumed.
	Patrol []int
	// Route is the last route computed towards Patrol[0]. Steering and display only.
	Route []int

	dig *waypoint.DigSession
}

// New creates an agent at pos. Agents start falling since they may spawn mid-air.
func New(id int, name string, controller Controller, pos waypoint.Point) *Agent {
	return &Agent{
		ID:         id,
		Name:       name,
		Controller: controller,
		Color:      tcell.ColorWhite,
		Pos:        pos,
		Facing:     FacingLeft,
		Action:     ActionFalling,
	}
}

// NewFromDef creates an agent from a scenario definition.
func NewFromDef(id int, def *gamedata.AgentDef) *Agent {
	controller := ControllerHuman
	if def.Controller == gamedata.ControllerAI {
		controller = ControllerAI
	}
	a := New(id, def.Name, controller, waypoint.Point{X: def.At.X, Y: def.At.Y})
	a.Color = def.TCellColor()
	if def.Waypoint != nil {
		a.Active = []int{*def.Waypoint}
	}
	a.Patrol = slices.Clone(def.Patrol)
	return a
}

// IsAI reports whether the agent is steered by the patrol controller.
func (a *Agent) IsAI() bool { return a.Controller == ControllerAI }

// Position returns the floored feet position.
func (a *Agent) Position() (int, int) { return a.Pos.Floor() }

// Waypoint returns the first active waypoint.
func (a *Agent) Waypoint() (int, bool) {
	if len(a.Active) == 0 {
		return -1, false
	}
	return a.Active[0], true
}

// DigTunnel returns the id of the tunnel being dug, if any.
func (a *Agent) DigTunnel() (int, bool) {
	if a.dig == nil {
		return -1, false
	}
	return a.dig.Tunnel, true
}

// PruneWaypoints drops active waypoints that no longer exist in net.
func (a *Agent) PruneWaypoints(net *waypoint.Network) {
	a.Active = slices.DeleteFunc(a.Active, func(id int) bool { return !net.Has(id) })
}

// NextTarget returns the patrol target at the front of the list.
func (a *Agent) NextTarget() (int, bool) {
	if len(a.Patrol) == 0 {
		return -1, false
	}
	return a.Patrol[0], true
}

// RotatePatrol moves the front patrol target to the back.
func (a *Agent) RotatePatrol() {
	if len(a.Patrol) < 2 {
		return
	}
	a.Patrol = append(a.Patrol[1:], a.Patrol[0])
}
