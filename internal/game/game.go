package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/telemetry"
	"github.com/samdwyer/tunnelnet/internal/ui"
)

// Game runs the simulation in the terminal.
type Game struct {
	cfg      Config
	registry *gamedata.ScenarioRegistry
	screen   *ui.Screen
	renderer *ui.Renderer
	sim      *Simulation
	state    State
	debug    bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, registry *gamedata.ScenarioRegistry) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(cfg, registry, screen), nil
}

func newGame(cfg Config, registry *gamedata.ScenarioRegistry, screen *ui.Screen) *Game {
	return &Game{
		cfg:      cfg,
		registry: registry,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		state:    StatePlaying,
		debug:    cfg.Debug,
	}
}

// Run executes the main game loop: one simulation step and one frame per
// tick, with key presses applied in between. It returns when the player
// quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	sim, err := newSimulation(ctx, g.cfg, g.registry)
	if err != nil {
		return err
	}
	g.sim = sim

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.FPS))
	defer ticker.Stop()

	g.render()
	for g.state != StateQuit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			g.handleEvent(ev)
		case <-ticker.C:
			if g.state == StatePlaying {
				if err := g.sim.Step(ctx); err != nil {
					return err
				}
			}
			g.render()
		}
	}
	klog.Infof("Quit after %d ticks", g.sim.Tick())
	return nil
}

func (g *Game) render() {
	g.renderer.Render(ui.Frame{
		World:  g.sim.World,
		Agents: g.sim.Agents,
		Debug:  g.debug,
		Status: g.status(),
	})
}

// status is the HUD line.
func (g *Game) status() string {
	s := fmt.Sprintf("tunnelnet | %s | tick %d", g.sim.Scenario().Name, g.sim.Tick())
	if h := g.sim.Human(); h != nil {
		x, y := h.Position()
		s += fmt.Sprintf(" | %s %s at %d,%d", h.Name, h.Action, x, y)
	}
	if g.state == StatePaused {
		s += " | PAUSED"
	}
	return s + " | arrows move/dig  d dig  space stop  g debug  p pause  r reset  q quit"
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input. Game keys act at once; agent
// keys are queued for the human agent's next turn.
func (g *Game) handleKeyEvent(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.state = StateQuit
		return
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			g.state = StateQuit
			return
		case 'g', 'G':
			g.debug = !g.debug
			return
		case 'p', 'P':
			if g.state == StatePaused {
				g.state = StatePlaying
			} else {
				g.state = StatePaused
			}
			return
		}
	}

	h := g.sim.Human()
	if h == nil {
		return
	}
	if cmd, ok := humanCommand(key, r, h.Action); ok {
		if err := g.sim.Queue(h.ID, cmd); err != nil {
			klog.Warningf("dropping %s: %v", cmd, err)
		}
	}
}

func tracer() trace.Tracer {
	return telemetry.Tracer("game")
}

func initAttributes(sim *Simulation) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("scenario.id", sim.Scenario().ID),
		attribute.Int("world.tunnels", sim.World.Network.Len()),
		attribute.Int("world.links", sim.World.Network.EdgeCount()),
		attribute.Int("agents", len(sim.Agents)),
		attribute.String("run.id", telemetry.RunID),
	}
}
