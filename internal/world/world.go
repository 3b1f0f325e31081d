package world

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/telemetry"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

const (
	// Default world dimensions in pixels.
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Flag is a coloured marker in the world. Flags carry no rules; they show
// where patrols are meant to go.
type Flag struct {
	At    waypoint.Point
	Color string // Hex color code
}

// World is the single owner of all shared simulation state except agents:
// the world bounds, the earth region, flags and the tunnel network.
type World struct {
	Width   int
	Height  int
	Earth   Rect
	Flags   []Flag
	Network *waypoint.Network
}

// New creates a world of the given size whose earth region is clipped to it.
func New(width, height int, earth Rect) *World {
	return &World{
		Width:   width,
		Height:  height,
		Earth:   earth.Intersect(Rect{Width: width, Height: height}),
		Network: waypoint.NewNetwork(),
	}
}

// Build creates the world described by a scenario, carving its tunnels and
// linking them as listed.
func Build(ctx context.Context, sc *gamedata.Scenario) (*World, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.build")
	defer span.End()

	w := New(sc.Width, sc.Height, Rect{
		X:      sc.Earth.X,
		Y:      sc.Earth.Y,
		Width:  sc.Earth.Width,
		Height: sc.Earth.Height,
	})
	for _, f := range sc.Flags {
		w.Flags = append(w.Flags, Flag{At: point(f.At), Color: f.Color})
	}
	for _, t := range sc.Tunnels {
		w.Network.CreateTunnel(point(t.Start), point(t.End))
	}
	for _, e := range sc.Edges {
		if err := w.Network.Connect(e[0], e[1]); err != nil {
			span.RecordError(err)
			return nil, errors.Wrapf(err, "scenario %q", sc.ID)
		}
	}

	span.SetAttributes(
		attribute.String("scenario.id", sc.ID),
		attribute.Int("world.width", w.Width),
		attribute.Int("world.height", w.Height),
		attribute.Int("world.tunnels", w.Network.Len()),
		attribute.Int("world.edges", w.Network.EdgeCount()),
	)
	klog.Infof("World %q built: %dx%d, %d tunnels, %d links",
		sc.ID, w.Width, w.Height, w.Network.Len(), w.Network.EdgeCount())
	return w, nil
}

// InBounds returns true if x,y lies inside the world.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// Bounds returns the world size in pixels.
func (w *World) Bounds() (int, int) {
	return w.Width, w.Height
}

// Tunnels returns the tunnel network.
func (w *World) Tunnels() *waypoint.Network {
	return w.Network
}

func point(p gamedata.PointDef) waypoint.Point {
	return waypoint.Point{X: p.X, Y: p.Y}
}
