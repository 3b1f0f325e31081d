// Package waypoint provides the tunnel network: carved tunnels, the waypoint
// graph connecting their mouths, the dig-session resolver and route finding.
package waypoint

import "math"

const (
	// TunnelHeight is the height of a carved tunnel corridor in pixels.
	TunnelHeight = 40
)

// Point is a position in world pixels. Y grows downward.
type Point struct {
	X, Y float64
}

// Floor returns the point with both coordinates rounded down.
func (p Point) Floor() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Near returns true if q lies within margin of p on both axes.
func (p Point) Near(q Point, margin float64) bool {
	return q.X-margin <= p.X && p.X <= q.X+margin &&
		q.Y-margin <= p.Y && p.Y <= q.Y+margin
}

// Direction is the slope classification of a tunnel.
type Direction int

const (
	DirectionFlat Direction = iota
	DirectionRightUp
	DirectionRightDown
	DirectionLeftUp
	DirectionLeftDown
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirectionFlat:
		return "flat"
	case DirectionRightUp:
		return "right_up"
	case DirectionRightDown:
		return "right_down"
	case DirectionLeftUp:
		return "left_up"
	case DirectionLeftDown:
		return "left_down"
	default:
		return "unknown"
	}
}

// Classify derives the direction of a segment from start to end.
func Classify(start, end Point) Direction {
	switch {
	case end.Y == start.Y:
		return DirectionFlat
	case end.Y < start.Y && end.X < start.X:
		return DirectionLeftUp
	case end.Y < start.Y:
		return DirectionRightUp
	case end.X < start.X:
		return DirectionLeftDown
	default:
		return DirectionRightDown
	}
}

// Tunnel is an open channel in the terrain. ID is its index in the network
// and doubles as its key in the waypoint graph.
type Tunnel struct {
	ID        int
	Start     Point
	End       Point
	Direction Direction // fixed at creation, never recomputed
}

// Length returns the euclidean length of the tunnel.
func (t Tunnel) Length() float64 {
	return math.Hypot(t.End.X-t.Start.X, t.End.Y-t.Start.Y)
}

// Degenerate returns true for a tunnel that was never extended.
func (t Tunnel) Degenerate() bool {
	return t.Start == t.End
}
