package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tunnelnet/internal/entity"
	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/waypoint"
	"github.com/samdwyer/tunnelnet/internal/world"
)

// hudRows is the number of status lines above the map.
const hudRows = 1

// Display runes.
const (
	runeHuman     = '@'
	runeGuard     = 'G'
	runeFlag      = 'F'
	runeTunnelEnd = 'o'
	runeRoute     = '*'
)

// Frame is everything drawn in one frame.
type Frame struct {
	World  *world.World
	Agents []*entity.Agent
	Debug  bool
	Status string
}

// Renderer handles drawing the game to the screen. It only reads world
// state; the terrain it shows is sampled from the occupancy model.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the frame to the screen.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	vp := viewport{cols: cols, rows: rows - hudRows, width: f.World.Width, height: f.World.Height}
	if vp.rows <= 0 || vp.cols <= 0 {
		r.screen.Show()
		return
	}

	// Terrain, sampled at the centre of every cell.
	for cy := 0; cy < vp.rows; cy++ {
		for cx := 0; cx < vp.cols; cx++ {
			m := f.World.MaterialAt(vp.toWorld(cx, cy))
			r.screen.SetContent(cx, cy+hudRows, m.Rune(), materialStyle(m))
		}
	}

	for _, flag := range f.World.Flags {
		style := tcell.StyleDefault.Foreground(gamedata.ColorOr(flag.Color, tcell.ColorWhite)).Bold(true)
		r.put(vp, flag.At, runeFlag, style)
	}

	if f.Debug {
		r.renderDebug(vp, f)
	}

	for _, a := range f.Agents {
		style := tcell.StyleDefault.Foreground(a.Color).Bold(a.Action == entity.ActionDigging)
		sym := runeHuman
		if a.IsAI() {
			sym = runeGuard
		}
		r.put(vp, waypoint.Point{X: a.Pos.X, Y: a.Pos.Y - entity.Height/2}, sym, style)
	}

	r.RenderMessage(f.Status, 0)
	r.screen.Show()
}

// renderDebug marks every tunnel end and the route of each AI agent.
func (r *Renderer) renderDebug(vp viewport, f Frame) {
	net := f.World.Network
	endStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(gamedata.TunnelColor)
	net.EachTunnel(func(t waypoint.Tunnel) bool {
		r.put(vp, mouth(t), runeTunnelEnd, endStyle)
		return true
	})
	for _, a := range f.Agents {
		style := tcell.StyleDefault.Foreground(a.Color).Background(gamedata.TunnelColor)
		for _, id := range a.Route {
			if t, ok := net.Tunnel(id); ok {
				r.put(vp, mouth(t), runeRoute, style)
			}
		}
	}
	msg := fmt.Sprintf("tunnels %d  links %d", net.Len(), net.EdgeCount())
	cols, rows := r.screen.Size()
	if len(msg) < cols {
		r.RenderMessage(msg, rows-1)
	}
}

// put draws ch at the cell containing world point p.
func (r *Renderer) put(vp viewport, p waypoint.Point, ch rune, style tcell.Style) {
	cx, cy, ok := vp.toCell(p)
	if !ok {
		return
	}
	r.screen.SetContent(cx, cy+hudRows, ch, style)
}

// RenderMessage displays a message on the given screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(0, y, msg, style)
}

// mouth is the centre of a tunnel's end cap.
func mouth(t waypoint.Tunnel) waypoint.Point {
	return waypoint.Point{X: t.End.X, Y: t.End.Y - waypoint.TunnelHeight/2}
}

func materialStyle(m world.Material) tcell.Style {
	switch m {
	case world.MaterialEarth:
		return tcell.StyleDefault.Background(gamedata.EarthColor).Foreground(tcell.ColorSaddleBrown)
	case world.MaterialTunnel:
		return tcell.StyleDefault.Background(gamedata.TunnelColor).Foreground(gamedata.TunnelColor)
	default:
		return tcell.StyleDefault.Background(gamedata.SkyColor)
	}
}

// viewport maps a world of width x height pixels onto cols x rows cells.
type viewport struct {
	cols, rows    int
	width, height int
}

// toWorld returns the world pixel at the centre of cell cx,cy.
func (v viewport) toWorld(cx, cy int) (int, int) {
	return (2*cx + 1) * v.width / (2 * v.cols), (2*cy + 1) * v.height / (2 * v.rows)
}

// toCell returns the cell containing world point p.
func (v viewport) toCell(p waypoint.Point) (int, int, bool) {
	x, y := p.Floor()
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return 0, 0, false
	}
	return x * v.cols / v.width, y * v.rows / v.height, true
}
