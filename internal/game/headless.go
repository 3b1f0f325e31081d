package game

import (
	"context"
	"slices"

	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/entity"
	"github.com/samdwyer/tunnelnet/internal/gamedata"
)

// AgentSummary is the state of one agent at the end of a run.
type AgentSummary struct {
	Name     string
	Action   entity.Action
	X, Y     int
	Waypoint int // -1 when the agent stands at no tunnel
	Patrol   []int
}

// Summary describes the simulation state.
type Summary struct {
	Scenario string
	Ticks    int
	Tunnels  int
	Links    int
	Agents   []AgentSummary
}

// Summary returns the current simulation state.
func (s *Simulation) Summary() Summary {
	sum := Summary{
		Scenario: s.scenario.ID,
		Ticks:    s.tick,
		Tunnels:  s.World.Network.Len(),
		Links:    s.World.Network.EdgeCount(),
	}
	for _, a := range s.Agents {
		x, y := a.Position()
		wp, _ := a.Waypoint()
		sum.Agents = append(sum.Agents, AgentSummary{
			Name:     a.Name,
			Action:   a.Action,
			X:        x,
			Y:        y,
			Waypoint: wp,
			Patrol:   slices.Clone(a.Patrol),
		})
	}
	return sum
}

// Log writes the summary to the info log.
func (sum Summary) Log() {
	klog.Infof("Scenario %q after %d ticks: %d tunnels, %d links",
		sum.Scenario, sum.Ticks, sum.Tunnels, sum.Links)
	for _, a := range sum.Agents {
		klog.Infof("  %-8s %-8s at (%d,%d) waypoint=%d patrol=%v",
			a.Name, a.Action, a.X, a.Y, a.Waypoint, a.Patrol)
	}
}

// RunHeadless steps the configured scenario for cfg.Ticks ticks without a
// terminal and returns the final state.
func RunHeadless(ctx context.Context, cfg Config, registry *gamedata.ScenarioRegistry) (Summary, error) {
	sim, err := newSimulation(ctx, cfg, registry)
	if err != nil {
		return Summary{}, err
	}
	for i := 0; i < cfg.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return sim.Summary(), err
		}
		if err := sim.Step(ctx); err != nil {
			return sim.Summary(), err
		}
	}
	sum := sim.Summary()
	sum.Log()
	return sum, nil
}

// newSimulation validates cfg and builds its scenario inside a game.init span.
func newSimulation(ctx context.Context, cfg Config, registry *gamedata.ScenarioRegistry) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc, err := registry.Lookup(cfg.Scenario)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer().Start(ctx, "game.init")
	defer span.End()
	sim, err := NewSimulation(ctx, sc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(initAttributes(sim)...)
	return sim, nil
}
