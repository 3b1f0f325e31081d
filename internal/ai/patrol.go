// Package ai steers computer-controlled agents along patrol routes through
// the tunnel network.
package ai

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/entity"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

// Probe offsets from the agent's feet used to decide whether to jump.
const (
	probeAhead = 10
	probeRise  = -1 // Just above the feet: is the way up clear?
	probeGap   = 1  // Just below the feet: is there a gap ahead?
)

// Steer runs one tick of the patrol controller for a.
//
// Only a walking agent is steered. It asks for a route from its waypoint to
// the first patrol target and heads for the next tunnel end on that route,
// jumping when standing still in front of a rise or a gap. On reaching that
// tunnel end it stops and adopts it as its waypoint; reaching the target
// rotates the patrol list.
func Steer(ctx context.Context, a *entity.Agent, t entity.Terrain) {
	if a.Action != entity.ActionWalking {
		return
	}
	net := t.Tunnels()
	target, ok := a.NextTarget()
	if !ok {
		return
	}
	from, ok := waypointOf(a, net)
	if !ok {
		return
	}

	route := waypoint.FindRoute(net, from, target)
	a.Route = route
	if len(route) < 2 {
		return
	}
	next := route[1]
	cur, _ := net.Tunnel(from)
	dst, ok := net.Tunnel(next)
	if !ok {
		return
	}

	switch {
	case dst.End.X > a.Pos.X && dst.End.X > cur.End.X:
		if a.VX == 0 && shouldJump(a, t, cur, dst, probeAhead) {
			klog.V(2).Infof("%s: jumping right towards tunnel %d", a.Name, next)
			a.JumpRight()
		}
		a.WalkRight()
	case dst.End.X < a.Pos.X && dst.End.X < cur.End.X:
		if a.VX == 0 && shouldJump(a, t, cur, dst, -probeAhead) {
			klog.V(2).Infof("%s: jumping left towards tunnel %d", a.Name, next)
			a.JumpLeft()
		}
		a.WalkLeft()
	default:
		a.Stop(ctx, net)
		a.Active = []int{next}
		if next == target {
			a.RotatePatrol()
			klog.V(2).Infof("%s: reached tunnel %d, patrol now %v", a.Name, next, a.Patrol)
		}
	}
}

// shouldJump reports whether a standing agent must jump to reach dst: the
// tunnel end is higher and the way up is clear, or it is level, far away and
// there is a gap right ahead.
func shouldJump(a *entity.Agent, t entity.Terrain, cur, dst waypoint.Tunnel, dx int) bool {
	x, y := a.Position()
	switch {
	case cur.End.Y > dst.End.Y:
		return !t.IsSolid(x+dx, y+probeRise)
	case cur.End.Y == dst.End.Y:
		far := dst.End.X-a.Pos.X > waypoint.TunnelHeight
		if dx < 0 {
			far = a.Pos.X-dst.End.X > waypoint.TunnelHeight
		}
		return far && !t.IsSolid(x+dx, y+probeGap)
	}
	return false
}

// waypointOf returns the tunnel the agent routes from. An agent whose
// waypoint is gone adopts the tunnel end it stands at, if any.
func waypointOf(a *entity.Agent, net *waypoint.Network) (int, bool) {
	if id, ok := a.Waypoint(); ok && net.Has(id) {
		return id, true
	}
	id, ok := net.NearestEnd(a.Pos, waypoint.TunnelHeight, nil)
	if !ok {
		return -1, false
	}
	a.Active = []int{id}
	return id, true
}

