package waypoint

import (
	"slices"

	"github.com/pkg/errors"
)

// ErrUnknownTunnel is returned when an operation references a tunnel id
// that does not exist in the network.
var ErrUnknownTunnel = errors.New("waypoint: unknown tunnel")

// Network owns the tunnel list and the waypoint graph over it.
// Graph keys are always tunnel indices: tunnels are append-only and only
// the most recent tunnel may be discarded.
type Network struct {
	tunnels []Tunnel
	graph   *Graph
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{graph: NewGraph()}
}

// CreateTunnel appends a tunnel from start to end and registers it in the
// graph with no neighbors. The direction is derived from the two points.
func (n *Network) CreateTunnel(start, end Point) int {
	return n.createTunnel(start, end, Classify(start, end))
}

func (n *Network) createTunnel(start, end Point, dir Direction) int {
	id := len(n.tunnels)
	n.tunnels = append(n.tunnels, Tunnel{
		ID:        id,
		Start:     start,
		End:       end,
		Direction: dir,
	})
	n.graph.AddNode(id)
	return id
}

// Connect links tunnels a and b in both directions.
func (n *Network) Connect(a, b int) error {
	if !n.Has(a) || !n.Has(b) {
		return errors.Wrapf(ErrUnknownTunnel, "connect %d-%d", a, b)
	}
	n.graph.Connect(a, b)
	return nil
}

// Disconnect removes the link between a and b, if any.
func (n *Network) Disconnect(a, b int) error {
	if !n.Has(a) || !n.Has(b) {
		return errors.Wrapf(ErrUnknownTunnel, "disconnect %d-%d", a, b)
	}
	n.graph.Disconnect(a, b)
	return nil
}

// UpdateEnd moves the end point of tunnel id. Start and direction are kept.
func (n *Network) UpdateEnd(id int, p Point) error {
	if !n.Has(id) {
		return errors.Wrapf(ErrUnknownTunnel, "update end of %d", id)
	}
	n.tunnels[id].End = p
	return nil
}

// DiscardLast removes the most recent tunnel and every graph reference to it.
// Any other id is rejected so the graph keys stay equal to tunnel indices.
func (n *Network) DiscardLast(id int) error {
	if id != len(n.tunnels)-1 || id < 0 {
		return errors.Wrapf(ErrUnknownTunnel, "discard %d (last is %d)", id, len(n.tunnels)-1)
	}
	n.graph.RemoveNode(id)
	n.tunnels = n.tunnels[:id]
	return nil
}

// Has returns true if id names an existing tunnel.
func (n *Network) Has(id int) bool {
	return id >= 0 && id < len(n.tunnels)
}

// Tunnel returns the tunnel with the given id.
func (n *Network) Tunnel(id int) (Tunnel, bool) {
	if !n.Has(id) {
		return Tunnel{}, false
	}
	return n.tunnels[id], true
}

// Tunnels returns a copy of all tunnels in creation order.
func (n *Network) Tunnels() []Tunnel {
	return slices.Clone(n.tunnels)
}

// Len returns the number of tunnels.
func (n *Network) Len() int {
	return len(n.tunnels)
}

// Neighbors implements Neighborer.
func (n *Network) Neighbors(id int) []int {
	return n.graph.Neighbors(id)
}

// Adjacent returns true if a and b are linked.
func (n *Network) Adjacent(a, b int) bool {
	return n.graph.Adjacent(a, b)
}

// Adjacency returns a copy of the waypoint graph for rendering and debugging.
func (n *Network) Adjacency() Adjacency {
	return n.graph.Snapshot()
}

// EdgeCount returns the number of links in the graph.
func (n *Network) EdgeCount() int {
	return n.graph.EdgeCount()
}

// EachTunnel calls fn for every tunnel in creation order until fn returns false.
func (n *Network) EachTunnel(fn func(t Tunnel) bool) {
	for _, t := range n.tunnels {
		if !fn(t) {
			return
		}
	}
}
