package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
)

func newTestWorld() *World {
	return New(1000, 800, Rect{X: 0, Y: 200, Width: 1000, Height: 600})
}

func TestMaterialWithoutTunnels(t *testing.T) {
	w := newTestWorld()
	assert.Equal(t, MaterialSky, w.MaterialAt(500, 199))
	assert.Equal(t, MaterialEarth, w.MaterialAt(500, 200))
	assert.Equal(t, MaterialEarth, w.MaterialAt(999, 799))
	assert.Equal(t, MaterialSky, w.MaterialAt(-1, 500), "outside the world")
	assert.Equal(t, MaterialSky, w.MaterialAt(500, 800))
	assert.False(t, w.IsSolid(500, 100))
	assert.True(t, w.IsSolid(500, 300))
}

func TestFlatTunnelCorridor(t *testing.T) {
	w := newTestWorld()
	w.Network.CreateTunnel(waypoint.Point{X: 100, Y: 400}, waypoint.Point{X: 300, Y: 400})

	// Standing on the floor: feet are open, one pixel below is solid.
	assert.False(t, w.IsSolid(200, 400))
	assert.True(t, w.IsSolid(200, 401))
	// Ceiling at y=360.
	assert.False(t, w.IsSolid(200, 360))
	assert.True(t, w.IsSolid(200, 359))
	// Rounded ends.
	assert.False(t, w.IsSolid(310, 380))
	assert.True(t, w.IsSolid(321, 380))
	assert.True(t, w.IsSolid(315, 399))
	// The boundary itself is carved.
	assert.False(t, w.IsSolid(320, 380))
	assert.Equal(t, MaterialTunnel, w.MaterialAt(200, 380))
}

func TestZeroLengthTunnelIsRound(t *testing.T) {
	w := newTestWorld()
	w.Network.CreateTunnel(waypoint.Point{X: 500, Y: 500}, waypoint.Point{X: 500, Y: 500})

	assert.False(t, w.IsSolid(500, 480))
	assert.False(t, w.IsSolid(500, 500))
	assert.True(t, w.IsSolid(500, 501))
	assert.True(t, w.IsSolid(518, 495))
}

func TestDiagonalTunnelCorridor(t *testing.T) {
	w := newTestWorld()
	w.Network.CreateTunnel(waypoint.Point{X: 100, Y: 400}, waypoint.Point{X: 300, Y: 600})

	// The centre line runs from (100,380) to (300,580).
	assert.False(t, w.IsSolid(200, 480))
	assert.False(t, w.IsSolid(200, 505))
	assert.True(t, w.IsSolid(200, 510))
	assert.True(t, w.IsSolid(200, 450))
}

func TestTunnelInSkyDoesNotCarveEarthBelow(t *testing.T) {
	w := newTestWorld()
	w.Network.CreateTunnel(waypoint.Point{X: 80, Y: 200}, waypoint.Point{X: 100, Y: 200})
	assert.False(t, w.IsSolid(90, 200))
	assert.True(t, w.IsSolid(90, 201))
}

func TestRectIntersect(t *testing.T) {
	r := Rect{X: 0, Y: 200, Width: 2000, Height: 2000}
	got := r.Intersect(Rect{Width: 1000, Height: 800})
	assert.Equal(t, Rect{X: 0, Y: 200, Width: 1000, Height: 600}, got)

	assert.True(t, Rect{X: 0, Y: 0, Width: 10, Height: 10}.Intersect(Rect{X: 20, Y: 20, Width: 5, Height: 5}).Empty())
	assert.True(t, r.Contains(0, 200))
	assert.False(t, r.Contains(0, 199))
}

func TestBuildClassicScenario(t *testing.T) {
	registry := gamedata.MustLoadScenarioRegistry()
	sc := registry.GetByID("classic")
	require.NotNil(t, sc)

	w, err := Build(context.Background(), sc)
	require.NoError(t, err)

	assert.Equal(t, DefaultWidth, w.Width)
	assert.Equal(t, DefaultHeight, w.Height)
	assert.Len(t, w.Flags, 6)
	assert.Equal(t, 6, w.Network.Len())
	assert.True(t, w.Network.Adjacent(0, 1))
	assert.True(t, w.Network.Adjacent(2, 3))
	assert.False(t, w.Network.Adjacent(4, 5))

	// Floor of the yellow guard's entry tunnel.
	assert.False(t, w.IsSolid(70, 400))
	assert.True(t, w.IsSolid(70, 401))
	// The diagonal below it is open just under the mouth.
	assert.False(t, w.IsSolid(100, 401))
}

func TestBuildRejectsBadEdges(t *testing.T) {
	sc := &gamedata.Scenario{
		ID:      "broken",
		Width:   100,
		Height:  100,
		Tunnels: []gamedata.TunnelDef{{}},
		Edges:   [][2]int{{0, 3}},
	}
	_, err := Build(context.Background(), sc)
	assert.ErrorIs(t, err, waypoint.ErrUnknownTunnel)
}
