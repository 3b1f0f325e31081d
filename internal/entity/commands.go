package entity

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/telemetry"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

// WalkLeft sets the agent moving left. Mid-air it steers the jump.
func (a *Agent) WalkLeft() {
	a.Facing = FacingLeft
	a.VX = -SpeedWalking
}

// WalkRight sets the agent moving right. Mid-air it steers the jump.
func (a *Agent) WalkRight() {
	a.Facing = FacingRight
	a.VX = SpeedWalking
}

// JumpLeft starts a jump to the left. Only a walking agent can jump.
func (a *Agent) JumpLeft() {
	if a.Action != ActionWalking {
		return
	}
	a.Facing = FacingLeft
	a.Action = ActionFalling
	a.VX = -SpeedWalking
	a.VY = -SpeedJumping
}

// JumpRight starts a jump to the right. Only a walking agent can jump.
func (a *Agent) JumpRight() {
	if a.Action != ActionWalking {
		return
	}
	a.Facing = FacingRight
	a.Action = ActionFalling
	a.VX = SpeedWalking
	a.VY = -SpeedJumping
}

// Jump jumps in the facing direction.
func (a *Agent) Jump() {
	if a.Facing == FacingRight {
		a.JumpRight()
	} else {
		a.JumpLeft()
	}
}

// Stop halts a walking agent. A digging agent stops digging.
func (a *Agent) Stop(ctx context.Context, net *waypoint.Network) {
	switch a.Action {
	case ActionWalking:
		a.VX = 0
	case ActionDigging:
		a.StopDigging(ctx, net)
	}
}

// StartDigging opens a flat tunnel segment at the agent's feet and links it
// to the tunnels the agent stands at. Returns false unless the agent was walking.
func (a *Agent) StartDigging(ctx context.Context, net *waypoint.Network) bool {
	if a.Action != ActionWalking {
		return false
	}
	_, span := telemetry.Tracer("entity").Start(ctx, "dig.start")
	defer span.End()

	anchors := net.FindAnchors(a.Pos, waypoint.DefaultAnchorMatch)
	if len(anchors) == 0 {
		anchors = a.Active
	}
	a.dig = net.StartDig(a.Pos, anchors, waypoint.DirectionFlat)
	a.Active = []int{a.dig.Tunnel}
	a.Action = ActionDigging
	a.VX, a.VY = 0, 0

	span.SetAttributes(
		attribute.String("agent", a.Name),
		attribute.Int("tunnel", a.dig.Tunnel),
		attribute.IntSlice("anchors", a.dig.Anchors),
	)
	return true
}

// StopDigging closes the open segment, merging it onto a tunnel end the tip
// reached, and leaves the agent standing still.
func (a *Agent) StopDigging(ctx context.Context, net *waypoint.Network) {
	if a.Action != ActionDigging {
		return
	}
	a.endDig(ctx, net)
	a.Action = ActionWalking
	a.VX, a.VY = 0, 0
}

// DigLeft continues digging with a flat segment heading left.
func (a *Agent) DigLeft(ctx context.Context, net *waypoint.Network) {
	a.steerDig(ctx, net, FacingLeft, waypoint.DirectionFlat, -SpeedDigging, 0)
}

// DigRight continues digging with a flat segment heading right.
func (a *Agent) DigRight(ctx context.Context, net *waypoint.Network) {
	a.steerDig(ctx, net, FacingRight, waypoint.DirectionFlat, SpeedDigging, 0)
}

// DigUp continues digging upwards in the facing direction.
func (a *Agent) DigUp(ctx context.Context, net *waypoint.Network) {
	if a.Facing == FacingRight {
		a.steerDig(ctx, net, FacingRight, waypoint.DirectionRightUp, SpeedDigging, -SpeedDigging/2)
	} else {
		a.steerDig(ctx, net, FacingLeft, waypoint.DirectionLeftUp, -SpeedDigging, -SpeedDigging/2)
	}
}

// DigDown continues digging downwards in the facing direction.
func (a *Agent) DigDown(ctx context.Context, net *waypoint.Network) {
	if a.Facing == FacingRight {
		a.steerDig(ctx, net, FacingRight, waypoint.DirectionRightDown, SpeedDigging, SpeedDigging)
	} else {
		a.steerDig(ctx, net, FacingLeft, waypoint.DirectionLeftDown, -SpeedDigging, SpeedDigging)
	}
}

// HaltDig stops moving without ending the dig session.
func (a *Agent) HaltDig() {
	if a.Action == ActionDigging {
		a.VX, a.VY = 0, 0
	}
}

func (a *Agent) steerDig(ctx context.Context, net *waypoint.Network, f Facing, dir waypoint.Direction, vx, vy float64) {
	if a.Action != ActionDigging || a.dig == nil {
		return
	}
	a.dig = net.ContinueDig(a.dig, a.Pos, dir)
	a.Active = []int{a.dig.Tunnel}
	a.Facing = f
	a.VX, a.VY = vx, vy
	klog.V(2).Infof("%s: digging %s from (%.0f,%.0f)", a.Name, dir, a.Pos.X, a.Pos.Y)
}

// endDig closes the dig session without touching the agent's motion.
func (a *Agent) endDig(ctx context.Context, net *waypoint.Network) {
	if a.dig == nil {
		return
	}
	_, span := telemetry.Tracer("entity").Start(ctx, "dig.stop")
	defer span.End()

	res := net.StopDig(a.dig, a.Pos)
	span.SetAttributes(
		attribute.String("agent", a.Name),
		attribute.Int("tunnel", a.dig.Tunnel),
		attribute.Int("merged_with", res.MergedWith),
		attribute.Bool("discarded", res.Discarded),
	)
	a.Active = slices.Clone(res.Active)
	a.dig = nil
}
