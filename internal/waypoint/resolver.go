package waypoint

import (
	"slices"

	"k8s.io/klog/v2"
)

// AnchorMatch holds the tolerances of the collinearity scan used to detect
// that a digger stands inside a known gap between two tunnel mouths. The
// values are tuned to the drawn corridor geometry rather than derived.
type AnchorMatch struct {
	// RightOffset corrects y for tunnels whose end lies at or right of the start.
	RightOffset int
	// LeftOffset corrects y for tunnels whose end lies left of the start.
	LeftOffset int
	// Slack is the accepted one-sided deviation between the x and y distances.
	Slack int
}

// DefaultAnchorMatch are the tolerances used by the game.
var DefaultAnchorMatch = AnchorMatch{RightOffset: 6, LeftOffset: 8, Slack: 2}

// NearestEnd returns the first tunnel, in creation order, whose end lies
// within margin of pos. Tunnels for which skip returns true are ignored.
func (n *Network) NearestEnd(pos Point, margin float64, skip func(id int) bool) (int, bool) {
	for _, t := range n.tunnels {
		if skip != nil && skip(t.ID) {
			continue
		}
		if pos.Near(t.End, margin) {
			return t.ID, true
		}
	}
	return -1, false
}

// FindAnchors returns the tunnels a digger at pos is leaving from.
//
// A tunnel end within one tunnel height wins outright. Otherwise the
// tunnels whose line passes through pos are collected and reduced to the
// closest one ending on each side of pos; the pair is returned, left
// first, only if the two are already linked. Any other outcome is empty.
func (n *Network) FindAnchors(pos Point, m AnchorMatch) []int {
	if id, ok := n.NearestEnd(pos, TunnelHeight, nil); ok {
		return []int{id}
	}

	x, y := pos.Floor()
	left, right := -1, -1
	for _, t := range n.tunnels {
		if !m.onLine(x, y, t) {
			continue
		}
		switch {
		case t.End.X > pos.X:
			if right < 0 || t.End.X < n.tunnels[right].End.X {
				right = t.ID
			}
		case t.End.X < pos.X:
			if left < 0 || t.End.X > n.tunnels[left].End.X {
				left = t.ID
			}
		}
	}
	if left < 0 || right < 0 || !n.Adjacent(left, right) {
		return nil
	}
	return []int{left, right}
}

// onLine reports whether the floored point x,y lies on tunnel t.
func (m AnchorMatch) onLine(x, y int, t Tunnel) bool {
	x1, y1 := t.Start.Floor()
	x2, y2 := t.End.Floor()
	if y == y1 && y == y2 {
		return true
	}
	offset := m.RightOffset
	if x2 < x1 {
		offset = m.LeftOffset
	}
	return m.matches(abs(x-x1), abs(y-offset-y1)) &&
		m.matches(abs(x-x2), abs(y-offset-y2))
}

func (m AnchorMatch) matches(dx, dy int) bool {
	return dx == dy || dx == dy-m.Slack
}

// DigSession tracks the open tunnel segment of one digger.
type DigSession struct {
	// Tunnel is the open segment whose end follows the digger.
	Tunnel int
	// Anchors are the tunnels the open segment was attached to.
	Anchors []int
	// split is set when the segment replaced a direct link between two anchors.
	split bool
}

// StartDig creates a zero-length segment at pos heading in dir and links
// it to the given anchors. With two anchors the new segment takes the place
// of their direct link, so no route can bypass the carved path.
// Unknown anchors are ignored.
func (n *Network) StartDig(pos Point, anchors []int, dir Direction) *DigSession {
	valid := slices.DeleteFunc(slices.Clone(anchors), func(id int) bool { return !n.Has(id) })
	id := n.createTunnel(pos, pos, dir)
	s := &DigSession{Tunnel: id, Anchors: valid}
	for _, a := range valid {
		n.graph.Connect(id, a)
	}
	if len(valid) == 2 && n.graph.Adjacent(valid[0], valid[1]) {
		n.graph.Disconnect(valid[0], valid[1])
		s.split = true
	}
	klog.V(1).Infof("dig: tunnel %d opened at (%.0f,%.0f) %s anchors=%v split=%t",
		id, pos.X, pos.Y, dir, valid, s.split)
	return s
}

// ContinueDig closes the open segment of s at the digger's position and
// starts a new one heading in dir. A segment that was never extended is
// discarded first and its anchors are reused.
func (n *Network) ContinueDig(s *DigSession, pos Point, dir Direction) *DigSession {
	anchors := []int{s.Tunnel}
	if n.discardDegenerate(s) {
		anchors = s.Anchors
	}
	return n.StartDig(pos, anchors, dir)
}

// Follow moves the tip of the open segment to pos.
func (n *Network) Follow(s *DigSession, pos Point) {
	if err := n.UpdateEnd(s.Tunnel, pos); err != nil {
		klog.Warningf("dig: %v", err)
	}
}

// Widen pushes the tip of the open segment by delta.
func (n *Network) Widen(s *DigSession, delta Point) {
	t, ok := n.Tunnel(s.Tunnel)
	if !ok {
		return
	}
	n.tunnels[t.ID].End = Point{X: t.End.X + delta.X, Y: t.End.Y + delta.Y}
}

// StopResult describes how a dig session ended.
type StopResult struct {
	// Active are the waypoints the digger stands at afterwards.
	Active []int
	// MergedWith is the tunnel the tip was linked to, or -1.
	MergedWith int
	// Discarded is set when the open segment had zero length and was removed.
	Discarded bool
}

// StopDig ends session s with the digger at pos. A zero-length segment is
// removed together with its links, restoring any link it had replaced.
// Otherwise, if the tip reached the end of another tunnel, the two are
// linked, closing a loop onto the network. The open segment and the
// segments it grew from are not candidates.
func (n *Network) StopDig(s *DigSession, pos Point) StopResult {
	if n.discardDegenerate(s) {
		return StopResult{Active: slices.Clone(s.Anchors), MergedWith: -1, Discarded: true}
	}

	res := StopResult{Active: []int{s.Tunnel}, MergedWith: -1}
	skip := func(id int) bool {
		return id == s.Tunnel || n.Adjacent(id, s.Tunnel)
	}
	if id, ok := n.NearestEnd(pos, TunnelHeight, skip); ok {
		n.graph.Connect(id, s.Tunnel)
		res.MergedWith = id
		klog.V(1).Infof("dig: tunnel %d merged with %d", s.Tunnel, id)
	}
	return res
}

// discardDegenerate removes the open segment of s if it has zero length and
// is still the most recent tunnel.
func (n *Network) discardDegenerate(s *DigSession) bool {
	t, ok := n.Tunnel(s.Tunnel)
	if !ok || !t.Degenerate() || t.ID != len(n.tunnels)-1 {
		return false
	}
	if err := n.DiscardLast(t.ID); err != nil {
		klog.Warningf("dig: %v", err)
		return false
	}
	if s.split {
		n.graph.Connect(s.Anchors[0], s.Anchors[1])
	}
	klog.V(1).Infof("dig: discarded zero-length tunnel %d", t.ID)
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
