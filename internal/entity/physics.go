package entity

import (
	"context"
	"math"

	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

// Terrain is what agents move through.
type Terrain interface {
	// IsSolid reports whether the pixel at x,y is earth.
	IsSolid(x, y int) bool
	// Bounds returns the world size in pixels.
	Bounds() (width, height int)
	// Tunnels returns the tunnel network diggers write to.
	Tunnels() *waypoint.Network
}

const (
	edgeMargin  = 10 // Closest an agent gets to the left or right world edge.
	probeAhead  = 7  // Horizontal probe distance for walls.
	probeCeil   = 5  // Horizontal offset of the two head probes.
	maxFallRate = 10.0
	apexSpeed   = -2.0 // Below this vertical speed the jump is still rising fast.
	apexGravity = 0.075
	gravity     = 0.5
	slopeSteps  = 4 // Pixels an agent steps down to follow a slope.
	digProbe    = 4 // Second downward probe while digging.
)

// Step advances the agent by one tick.
//
// Horizontal velocity is applied unless a wall blocks both the feet and the
// head on the side of travel, then vertical velocity. The position is
// clamped to the world and the state machine resolves ground, ceiling,
// slopes and digging.
func (a *Agent) Step(ctx context.Context, t Terrain) {
	net := t.Tunnels()

	if a.VX != 0 {
		dx := probeAhead
		if a.VX < 0 {
			dx = -probeAhead
		}
		if a.solid(t, dx, 0) && a.solid(t, dx, -Height) {
			a.VX = 0
		} else {
			a.Pos.X += a.VX
		}
	}
	a.Pos.Y += a.VY

	if a.clamp(t) {
		if a.Action == ActionDigging {
			a.endDig(ctx, net)
		}
		a.Action = ActionFalling
	}

	if a.Action == ActionFalling {
		a.fall(t)
	}
	if a.Action == ActionWalking {
		a.walk(t)
	}
	if a.Action == ActionDigging {
		a.digStep(ctx, t, net)
	}
}

// clamp keeps the agent inside the world and reports whether a
// horizontal bound was hit.
func (a *Agent) clamp(t Terrain) bool {
	w, h := t.Bounds()
	hit := false
	if a.Pos.X < edgeMargin {
		a.Pos.X = edgeMargin
		hit = true
	} else if a.Pos.X >= float64(w-edgeMargin) {
		a.Pos.X = float64(w - edgeMargin - 1)
		hit = true
	}
	if a.Pos.Y < 0 {
		a.Pos.Y = 0
	} else if a.Pos.Y >= float64(h) {
		a.Pos.Y = float64(h - 1)
	}
	return hit
}

func (a *Agent) fall(t Terrain) {
	if a.VY < maxFallRate {
		if a.VY < apexSpeed {
			a.VY += apexGravity
		} else {
			a.VY += gravity
		}
	}
	if a.VY > 0 && a.solid(t, 0, 1) {
		a.VX, a.VY = 0, 0
		a.Action = ActionWalking
		a.Pos = waypoint.Point{X: math.Floor(a.Pos.X), Y: math.Floor(a.Pos.Y)}
	}
	if a.VY < 0 && (a.solid(t, -probeCeil, -Height) || a.solid(t, probeCeil, -Height)) {
		a.VX, a.VY = 0, 0
	}
}

func (a *Agent) walk(t Terrain) {
	a.Pos.Y = math.Floor(a.Pos.Y)
	if !a.solid(t, 0, 1) {
		if a.VX != 0 {
			for i := 0; i < slopeSteps && !a.solid(t, 0, 1); i++ {
				a.Pos.Y++
			}
		}
		if !a.solid(t, 0, 1) {
			a.Action = ActionFalling
		}
	}
	// Climb out of an ascending slope.
	for a.Pos.Y > 0 && a.solid(t, 0, 0) {
		a.Pos.Y--
	}
}

func (a *Agent) digStep(ctx context.Context, t Terrain, net *waypoint.Network) {
	if a.dig == nil {
		a.Action = ActionWalking
		return
	}
	net.Follow(a.dig, a.Pos)
	if a.solid(t, 0, digProbe) || a.solid(t, 0, 1) {
		return
	}
	// Dug out into open space.
	if a.VY > 0 {
		const open = waypoint.TunnelHeight / 2
		net.Widen(a.dig, waypoint.Point{X: open * a.VX, Y: open * a.VY})
	}
	a.endDig(ctx, net)
	a.Action = ActionFalling
}

// solid probes the terrain at an offset from the agent's feet.
func (a *Agent) solid(t Terrain, dx, dy int) bool {
	x, y := a.Pos.Floor()
	return t.IsSolid(x+dx, y+dy)
}
