package game

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/ai"
	"github.com/samdwyer/tunnelnet/internal/entity"
	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/telemetry"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
	"github.com/samdwyer/tunnelnet/internal/world"
)

// ErrUnknownAgent is returned by command entry points for an invalid agent id.
var ErrUnknownAgent = errors.New("game: unknown agent")

// Command is an instruction for one agent.
type Command int

const (
	CmdWalkLeft Command = iota
	CmdWalkRight
	CmdJumpLeft
	CmdJumpRight
	CmdJump
	CmdStop
	CmdStartDigging
	CmdStopDigging
	CmdToggleDigging
	CmdDigLeft
	CmdDigRight
	CmdDigUp
	CmdDigDown
	CmdHaltDig
	// CmdReset rebuilds the world from its scenario.
	CmdReset
)

var commandNames = [...]string{
	CmdWalkLeft:      "walk_left",
	CmdWalkRight:     "walk_right",
	CmdJumpLeft:      "jump_left",
	CmdJumpRight:     "jump_right",
	CmdJump:          "jump",
	CmdStop:          "stop",
	CmdStartDigging:  "start_digging",
	CmdStopDigging:   "stop_digging",
	CmdToggleDigging: "toggle_digging",
	CmdDigLeft:       "dig_left",
	CmdDigRight:      "dig_right",
	CmdDigUp:         "dig_up",
	CmdDigDown:       "dig_down",
	CmdHaltDig:       "halt_dig",
	CmdReset:         "reset",
}

// String returns the command name.
func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Simulation owns the world and its agents and advances them tick by tick.
// It is not safe for concurrent use; the game loop drives it from one goroutine.
type Simulation struct {
	World  *world.World
	Agents []*entity.Agent

	scenario *gamedata.Scenario
	pending  map[int][]Command
	tick     int
	resets   int
}

// NewSimulation builds the world and agents described by sc.
func NewSimulation(ctx context.Context, sc *gamedata.Scenario) (*Simulation, error) {
	s := &Simulation{scenario: sc}
	if err := s.build(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) build(ctx context.Context) error {
	w, err := world.Build(ctx, s.scenario)
	if err != nil {
		return err
	}
	agents := make([]*entity.Agent, len(s.scenario.Agents))
	for i := range s.scenario.Agents {
		agents[i] = entity.NewFromDef(i, &s.scenario.Agents[i])
	}
	s.World = w
	s.Agents = agents
	s.pending = make(map[int][]Command)
	return nil
}

// Scenario returns the scenario the simulation was built from.
func (s *Simulation) Scenario() *gamedata.Scenario { return s.scenario }

// Tick returns the number of ticks stepped since the last reset.
func (s *Simulation) Tick() int { return s.tick }

// Resets returns how many times the world was reset.
func (s *Simulation) Resets() int { return s.resets }

// Tunnels returns a copy of the tunnel list.
func (s *Simulation) Tunnels() []waypoint.Tunnel { return s.World.Network.Tunnels() }

// Adjacency returns a copy of the waypoint graph.
func (s *Simulation) Adjacency() waypoint.Adjacency { return s.World.Network.Adjacency() }

// Human returns the first human-controlled agent, or nil.
func (s *Simulation) Human() *entity.Agent {
	for _, a := range s.Agents {
		if !a.IsAI() {
			return a
		}
	}
	return nil
}

// Agent returns the agent with the given id.
func (s *Simulation) Agent(id int) (*entity.Agent, error) {
	if id < 0 || id >= len(s.Agents) {
		return nil, errors.Wrapf(ErrUnknownAgent, "agent %d", id)
	}
	return s.Agents[id], nil
}

// Reset rebuilds the world and all agents from the scenario. State derived
// from the old world, such as routes and queued commands, is dropped.
func (s *Simulation) Reset(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "world.reset")
	defer span.End()

	if err := s.build(ctx); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "resetting world")
	}
	s.resets++
	span.SetAttributes(
		attribute.Int("reset.count", s.resets),
		attribute.Int("reset.after_ticks", s.tick),
	)
	klog.Infof("World reset after %d ticks", s.tick)
	s.tick = 0
	return nil
}

// Queue schedules cmd to run at the start of the agent's next turn.
func (s *Simulation) Queue(agentID int, cmd Command) error {
	if _, err := s.Agent(agentID); err != nil {
		return err
	}
	s.pending[agentID] = append(s.pending[agentID], cmd)
	return nil
}

// Step advances the simulation by one tick. Agents act in order: a human
// agent runs its queued commands, an AI agent is steered, then physics is
// applied. A reset issued by an agent ends the tick immediately.
func (s *Simulation) Step(ctx context.Context) error {
	s.tick++
	for _, a := range s.Agents {
		if a.IsAI() {
			ai.Steer(ctx, a, s.World)
		} else {
			queued := s.pending[a.ID]
			delete(s.pending, a.ID)
			for _, cmd := range queued {
				if cmd == CmdReset {
					return s.Reset(ctx)
				}
				s.apply(ctx, a, cmd)
			}
		}
		a.Step(ctx, s.World)
	}
	for _, a := range s.Agents {
		a.PruneWaypoints(s.World.Network)
	}
	return nil
}

// Do runs cmd for the agent right away.
func (s *Simulation) Do(ctx context.Context, agentID int, cmd Command) error {
	a, err := s.Agent(agentID)
	if err != nil {
		return err
	}
	if cmd == CmdReset {
		return s.Reset(ctx)
	}
	s.apply(ctx, a, cmd)
	return nil
}

// StartDigging makes a walking agent start digging.
func (s *Simulation) StartDigging(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdStartDigging)
}

// StopDigging makes a digging agent stop digging.
func (s *Simulation) StopDigging(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdStopDigging)
}

// WalkLeft makes the agent walk left.
func (s *Simulation) WalkLeft(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdWalkLeft)
}

// WalkRight makes the agent walk right.
func (s *Simulation) WalkRight(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdWalkRight)
}

// JumpLeft makes a walking agent jump left.
func (s *Simulation) JumpLeft(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdJumpLeft)
}

// JumpRight makes a walking agent jump right.
func (s *Simulation) JumpRight(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdJumpRight)
}

// Stop halts the agent.
func (s *Simulation) Stop(ctx context.Context, agentID int) error {
	return s.Do(ctx, agentID, CmdStop)
}

func (s *Simulation) apply(ctx context.Context, a *entity.Agent, cmd Command) {
	net := s.World.Network
	klog.V(2).Infof("%s: %s while %s", a.Name, cmd, a.Action)
	switch cmd {
	case CmdWalkLeft:
		a.WalkLeft()
	case CmdWalkRight:
		a.WalkRight()
	case CmdJumpLeft:
		a.JumpLeft()
	case CmdJumpRight:
		a.JumpRight()
	case CmdJump:
		a.Jump()
	case CmdStop:
		a.Stop(ctx, net)
	case CmdStartDigging:
		s.startDigging(ctx, a)
	case CmdStopDigging:
		a.StopDigging(ctx, net)
	case CmdToggleDigging:
		if a.Action == entity.ActionDigging {
			a.StopDigging(ctx, net)
		} else {
			s.startDigging(ctx, a)
		}
	case CmdDigLeft:
		a.DigLeft(ctx, net)
	case CmdDigRight:
		a.DigRight(ctx, net)
	case CmdDigUp:
		a.DigUp(ctx, net)
	case CmdDigDown:
		a.DigDown(ctx, net)
	case CmdHaltDig:
		a.HaltDig()
	}
}

// Digger returns the agent with an open dig session, or nil.
func (s *Simulation) Digger() *entity.Agent {
	for _, a := range s.Agents {
		if _, ok := a.DigTunnel(); ok {
			return a
		}
	}
	return nil
}

// startDigging opens a dig session for a unless another agent holds one.
// The network has a single writer at a time.
func (s *Simulation) startDigging(ctx context.Context, a *entity.Agent) {
	if d := s.Digger(); d != nil && d != a {
		klog.V(1).Infof("%s cannot dig while %s is digging", a.Name, d.Name)
		return
	}
	a.StartDigging(ctx, s.World.Network)
}
