package world

import (
	"math"

	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

// corridorRadius is half the height of a tunnel corridor.
const corridorRadius = waypoint.TunnelHeight / 2

// MaterialAt returns the material at the world pixel x,y.
// Pixels outside the world or the earth region are sky.
func (w *World) MaterialAt(x, y int) Material {
	if !w.InBounds(x, y) || !w.Earth.Contains(x, y) {
		return MaterialSky
	}
	if w.Carved(x, y) {
		return MaterialTunnel
	}
	return MaterialEarth
}

// IsSolid is the terrain occupancy oracle: it returns true if the world
// pixel x,y is undug earth.
func (w *World) IsSolid(x, y int) bool {
	return w.MaterialAt(x, y).IsSolid()
}

// Carved returns true if x,y lies inside any tunnel corridor. A corridor is
// the band of tunnel height whose floor runs from a tunnel's start to its
// end, rounded at both ends. Its boundary counts as carved so an agent can
// stand exactly on a tunnel floor.
func (w *World) Carved(x, y int) bool {
	p := waypoint.Point{X: float64(x), Y: float64(y)}
	carved := false
	w.Network.EachTunnel(func(t waypoint.Tunnel) bool {
		carved = inCorridor(p, t)
		return !carved
	})
	return carved
}

// inCorridor tests p against the capsule around the centre line of t.
func inCorridor(p waypoint.Point, t waypoint.Tunnel) bool {
	ax, ay := t.Start.X, t.Start.Y-corridorRadius
	bx, by := t.End.X, t.End.Y-corridorRadius
	dx, dy := bx-ax, by-ay

	u := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		u = ((p.X-ax)*dx + (p.Y-ay)*dy) / l2
		u = math.Max(0, math.Min(1, u))
	}
	cx, cy := ax+u*dx, ay+u*dy
	return math.Hypot(p.X-cx, p.Y-cy) <= corridorRadius
}
