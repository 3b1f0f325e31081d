package waypoint

import "slices"

// Neighborer is anything route finding can walk over.
type Neighborer interface {
	// Neighbors returns the ids adjacent to id, in insertion order.
	// Unknown ids have no neighbors.
	Neighbors(id int) []int
}

// Adjacency is a literal adjacency map. It is not required to be symmetric,
// which makes it handy for describing one-way links in tests and tools.
type Adjacency map[int][]int

// Neighbors implements Neighborer.
func (a Adjacency) Neighbors(id int) []int {
	return a[id]
}

// Graph is an undirected waypoint graph keyed by tunnel id.
// Adjacency lists keep insertion order so route tie-breaking is deterministic.
type Graph struct {
	adj map[int][]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[int][]int)}
}

// AddNode registers id with no neighbors. Existing nodes are left untouched.
func (g *Graph) AddNode(id int) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = []int{}
	}
}

// HasNode returns true if id is registered.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.adj[id]
	return ok
}

// RemoveNode deletes id and every edge that references it.
func (g *Graph) RemoveNode(id int) {
	for _, n := range g.adj[id] {
		g.adj[n] = remove(g.adj[n], id)
	}
	delete(g.adj, id)
}

// Connect links a and b in both directions. Connecting twice is a no-op,
// as is connecting a node to itself or to an unregistered node.
func (g *Graph) Connect(a, b int) {
	if a == b || !g.HasNode(a) || !g.HasNode(b) {
		return
	}
	if !slices.Contains(g.adj[a], b) {
		g.adj[a] = append(g.adj[a], b)
	}
	if !slices.Contains(g.adj[b], a) {
		g.adj[b] = append(g.adj[b], a)
	}
}

// Disconnect removes the edge between a and b in both directions.
func (g *Graph) Disconnect(a, b int) {
	if g.HasNode(a) {
		g.adj[a] = remove(g.adj[a], b)
	}
	if g.HasNode(b) {
		g.adj[b] = remove(g.adj[b], a)
	}
}

// Adjacent returns true if either endpoint lists the other.
func (g *Graph) Adjacent(a, b int) bool {
	return slices.Contains(g.adj[a], b) || slices.Contains(g.adj[b], a)
}

// Neighbors implements Neighborer. The result is a copy.
func (g *Graph) Neighbors(id int) []int {
	return slices.Clone(g.adj[id])
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, ns := range g.adj {
		n += len(ns)
	}
	return n / 2
}

// Snapshot returns a deep copy of the adjacency lists.
func (g *Graph) Snapshot() Adjacency {
	out := make(Adjacency, len(g.adj))
	for id, ns := range g.adj {
		out[id] = slices.Clone(ns)
	}
	return out
}

func remove(ids []int, id int) []int {
	return slices.DeleteFunc(ids, func(v int) bool { return v == id })
}
