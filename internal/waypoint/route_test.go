package waypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRouteSameNode(t *testing.T) {
	assert.Empty(t, FindRoute(Adjacency{}, 0, 0))
	assert.Empty(t, FindRoute(Adjacency{0: {1}, 1: {0}}, 1, 1))
}

func TestFindRouteOneWayLinks(t *testing.T) {
	g := Adjacency{0: {1}, 1: {2}, 2: {}}
	assert.Equal(t, []int{0, 1, 2}, FindRoute(g, 0, 2))
	assert.Empty(t, FindRoute(g, 2, 0), "traversal only follows listed neighbors")
}

func TestFindRouteUnreachable(t *testing.T) {
	g := Adjacency{0: {1}, 1: {0}, 2: {3}, 3: {2}}
	assert.Empty(t, FindRoute(g, 0, 3))
	assert.Empty(t, FindRoute(g, 0, 42))
}

func TestFindRouteMissingStartEntry(t *testing.T) {
	g := Adjacency{1: {2}, 2: {1}}
	assert.Empty(t, FindRoute(g, 7, 2))
}

func TestFindRouteShortest(t *testing.T) {
	// 0-1-2-3-4 chain with a shortcut 1-4.
	net := NewNetwork()
	for i := 0; i < 5; i++ {
		net.CreateTunnel(Point{X: float64(i * 100), Y: 300}, Point{X: float64(i*100 + 50), Y: 300})
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, net.Connect(i, i+1))
	}
	require.NoError(t, net.Connect(1, 4))

	assert.Equal(t, []int{0, 1, 4}, FindRoute(net, 0, 4))
	assert.Equal(t, []int{4, 1, 0}, FindRoute(net, 4, 0))
}

func TestFindRouteTieBreakByInsertionOrder(t *testing.T) {
	// Two equal routes 0-1-3 and 0-2-3: the neighbor inserted first wins.
	g := Adjacency{0: {2, 1}, 1: {3}, 2: {3}, 3: {}}
	assert.Equal(t, []int{0, 2, 3}, FindRoute(g, 0, 3))

	g[0] = []int{1, 2}
	assert.Equal(t, []int{0, 1, 3}, FindRoute(g, 0, 3))
}

func TestFindRouteCycleTerminates(t *testing.T) {
	g := Adjacency{0: {1}, 1: {2}, 2: {0}}
	assert.Equal(t, []int{0, 1, 2}, FindRoute(g, 0, 2))
	assert.Empty(t, FindRoute(g, 0, 9))
}
