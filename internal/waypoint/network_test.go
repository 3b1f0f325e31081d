package waypoint

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTunnelDirection(t *testing.T) {
	tests := []struct {
		start, end Point
		want       Direction
	}{
		{Point{100, 300}, Point{100, 300}, DirectionFlat},
		{Point{100, 300}, Point{600, 300}, DirectionFlat},
		{Point{100, 600}, Point{200, 700}, DirectionRightDown},
		{Point{200, 700}, Point{100, 800}, DirectionLeftDown},
		{Point{100, 600}, Point{200, 500}, DirectionRightUp},
		{Point{200, 600}, Point{100, 500}, DirectionLeftUp},
	}

	net := NewNetwork()
	for i, tt := range tests {
		id := net.CreateTunnel(tt.start, tt.end)
		assert.Equal(t, i, id, "ids follow append order")
		got, ok := net.Tunnel(id)
		require.True(t, ok)
		assert.Equal(t, tt.want, got.Direction, "%v -> %v", tt.start, tt.end)
		assert.True(t, net.graph.HasNode(id))
		assert.Empty(t, net.Neighbors(id))
	}
}

func TestUpdateEndKeepsDirection(t *testing.T) {
	net := NewNetwork()
	id := net.CreateTunnel(Point{100, 300}, Point{200, 300})
	require.NoError(t, net.UpdateEnd(id, Point{300, 500}))

	tun, _ := net.Tunnel(id)
	assert.Equal(t, Point{300, 500}, tun.End)
	assert.Equal(t, Point{100, 300}, tun.Start)
	assert.Equal(t, DirectionFlat, tun.Direction)
}

func TestConnectIsSymmetricAndIdempotent(t *testing.T) {
	net := NewNetwork()
	a := net.CreateTunnel(Point{0, 300}, Point{50, 300})
	b := net.CreateTunnel(Point{50, 300}, Point{100, 300})

	require.NoError(t, net.Connect(a, b))
	require.NoError(t, net.Connect(b, a))
	assert.Equal(t, []int{b}, net.Neighbors(a))
	assert.Equal(t, []int{a}, net.Neighbors(b))
	assert.Equal(t, 1, net.EdgeCount())

	require.NoError(t, net.Disconnect(a, b))
	assert.Empty(t, net.Neighbors(a))
	assert.Empty(t, net.Neighbors(b))
	assert.False(t, net.Adjacent(a, b))
}

func TestConnectUnknownTunnel(t *testing.T) {
	net := NewNetwork()
	a := net.CreateTunnel(Point{0, 300}, Point{50, 300})

	err := net.Connect(a, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTunnel))
	assert.Empty(t, net.Neighbors(a))
	assert.False(t, net.graph.HasNode(5))

	assert.True(t, errors.Is(net.UpdateEnd(3, Point{}), ErrUnknownTunnel))
	assert.True(t, errors.Is(net.Disconnect(-1, a), ErrUnknownTunnel))
}

func TestDiscardLastRemovesReferences(t *testing.T) {
	net := NewNetwork()
	a := net.CreateTunnel(Point{0, 300}, Point{50, 300})
	b := net.CreateTunnel(Point{50, 300}, Point{100, 300})
	c := net.CreateTunnel(Point{100, 300}, Point{100, 300})
	require.NoError(t, net.Connect(a, c))
	require.NoError(t, net.Connect(b, c))

	assert.Error(t, net.DiscardLast(a), "only the newest tunnel can be discarded")

	require.NoError(t, net.DiscardLast(c))
	assert.Equal(t, 2, net.Len())
	assert.NotContains(t, net.Neighbors(a), c)
	assert.NotContains(t, net.Neighbors(b), c)
	for id, ns := range net.Adjacency() {
		assert.True(t, net.Has(id))
		for _, n := range ns {
			assert.True(t, net.Has(n), "dangling edge %d-%d", id, n)
		}
	}
}

func TestAdjacencyIsACopy(t *testing.T) {
	net := NewNetwork()
	a := net.CreateTunnel(Point{0, 300}, Point{50, 300})
	b := net.CreateTunnel(Point{50, 300}, Point{100, 300})
	require.NoError(t, net.Connect(a, b))

	snap := net.Adjacency()
	snap[a] = append(snap[a], 99)
	assert.Equal(t, []int{b}, net.Neighbors(a))

	nbrs := net.Neighbors(a)
	nbrs[0] = 99
	_ = append(nbrs[:0], 42, 43)
	assert.Equal(t, []int{b}, net.Neighbors(a))
	assert.True(t, net.Adjacent(a, b))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "flat", DirectionFlat.String())
	assert.Equal(t, "left_down", DirectionLeftDown.String())
	assert.Equal(t, "unknown", Direction(42).String())
}
