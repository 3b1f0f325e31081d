// Package world provides the simulated world: its bounds, the earth region,
// flags, the tunnel network and the terrain occupancy oracle built on them.
package world

// Material is what occupies a single world pixel.
type Material rune

const (
	// MaterialSky is open air outside the earth region.
	MaterialSky Material = ' '
	// MaterialEarth is solid, undug ground.
	MaterialEarth Material = '#'
	// MaterialTunnel is ground that has been carved out.
	MaterialTunnel Material = '.'
)

// IsSolid returns true if agents cannot pass through the material.
func (m Material) IsSolid() bool {
	return m == MaterialEarth
}

// Rune returns the material's display character.
func (m Material) Rune() rune {
	return rune(m)
}
