// internal/render/terminal.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/hud"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
)

const (
	hudRows     = 2
	cellAspect  = 2.0 // a terminal cell is about twice as tall as wide
	trailLength = 4
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var (
	groundStyle = tcell.StyleDefault.Foreground(rgb(config.GroundColor))
	riverStyle  = tcell.StyleDefault.Foreground(rgb(config.RiverColor))
	knifeStyle  = tcell.StyleDefault.Foreground(rgb(config.KnifeColor)).Bold(true)
	trailStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bloodStyle  = tcell.StyleDefault.Foreground(rgb(config.BloodColor))
	textStyle   = tcell.StyleDefault.Foreground(rgb(config.TextLightColor))
)

// Terminal draws a frame as a top-down character map with a two-line HUD.
type Terminal struct {
	screen tcell.Screen
	arena  component.Arena
	view   Viewport
	trails *Bindings[*Trail]
}

// NewTerminal wraps an initialized screen.
func NewTerminal(screen tcell.Screen, arena component.Arena) *Terminal {
	t := &Terminal{
		screen: screen,
		arena:  arena,
		trails: NewBindings(func(sim.ProjectilePose) *Trail { return NewTrail(trailLength) }, nil),
	}
	t.Resize()
	return t
}

// Resize refits the arena to the current screen size.
func (t *Terminal) Resize() {
	w, h := t.screen.Size()
	t.view = FitViewport(w, h-hudRows, t.arena.Bounds, cellAspect)
}

// CellOf returns the screen cell of a world position.
func (t *Terminal) CellOf(x, z float64) (int, int) {
	cx, cy := t.view.Cell(x, z)
	return cx, cy + hudRows
}

// ScreenToWorld maps a clicked cell to the centre of its ground patch. Clicks
// on the HUD are rejected.
func (t *Terminal) ScreenToWorld(col, row int) (float64, float64, bool) {
	cy := row - hudRows
	if !t.view.Inside(col, cy) {
		return 0, 0, false
	}
	x, z := t.view.ToWorld(float64(col)+0.5, float64(cy)+0.5)
	return x, z, true
}

// Draw renders one frame and shows it.
func (t *Terminal) Draw(f sim.Frame, effects []*component.Effect, m hud.Model) {
	t.screen.Clear()
	t.drawGround()

	for _, e := range effects {
		if !e.Alive() {
			continue
		}
		for _, p := range e.Particles {
			t.plot(p.X, p.Z, '\'', bloodStyle)
		}
	}

	t.trails.Sync(f.Projectiles)
	for _, p := range f.Projectiles {
		if p.Removed {
			continue
		}
		if tr, ok := t.trails.Get(p.ID); ok {
			for _, pt := range tr.Points() {
				t.plot(pt.X, pt.Z, '.', trailStyle)
			}
			tr.Push(p.X, p.Z)
		}
	}
	for _, p := range f.Projectiles {
		if !p.Removed {
			t.plot(p.X, p.Z, KnifeGlyph(p.Yaw), knifeStyle)
		}
	}

	for _, c := range f.Combatants {
		if !c.Player.Valid() {
			continue
		}
		style := tcell.StyleDefault.Foreground(rgb(playerColor(c.Player))).Bold(true)
		if m.Bars[c.Player.Index()].Local {
			style = style.Reverse(true)
		}
		t.plot(c.X, c.Z, rune('0'+int(c.Player)), style)
	}

	t.drawHUD(m)
	t.screen.Show()
}

func (t *Terminal) drawGround() {
	for cy := 0; cy < t.view.Height; cy++ {
		for cx := 0; cx < t.view.Width; cx++ {
			x, z := t.view.ToWorld(float64(cx)+0.5, float64(cy)+0.5)
			if !t.arena.Bounds.Contains(x, z) {
				continue
			}
			if x >= t.arena.RiverMin && x <= t.arena.RiverMax {
				t.screen.SetContent(cx, cy+hudRows, '~', nil, riverStyle)
			} else {
				t.screen.SetContent(cx, cy+hudRows, '.', nil, groundStyle)
			}
		}
	}
}

func (t *Terminal) plot(x, z float64, r rune, style tcell.Style) {
	cx, cy := t.view.Cell(x, z)
	if t.view.Inside(cx, cy) {
		t.screen.SetContent(cx, cy+hudRows, r, nil, style)
	}
}

func (t *Terminal) drawHUD(m hud.Model) {
	w, _ := t.screen.Size()

	left := m.Bars[0]
	t.put(0, 0, left.Label+" ", textStyle)
	t.put(len(left.Label)+1, 0, healthBar(left), tcell.StyleDefault.Foreground(rgb(left.Fill)))

	right := m.Bars[1]
	bar := healthBar(right)
	t.put(w-len(bar), 0, bar, tcell.StyleDefault.Foreground(rgb(right.Fill)))
	t.put(w-len(bar)-len(right.Label)-1, 0, right.Label, textStyle)

	t.put((w-len(m.Tally))/2, 0, m.Tally, textStyle)

	knife := fmt.Sprintf("knife %s", meter(m.Cooldown, 10))
	t.put(0, 1, knife, tcell.StyleDefault.Foreground(rgb(m.CooldownColor)))
	if m.Status != "" {
		t.put(w-len(m.Status), 1, m.Status, textStyle)
	}

	if m.Banner != "" {
		row := hudRows + t.view.Height/2
		t.put((w-len(m.Banner))/2, row, m.Banner, textStyle.Bold(true).Reverse(true))
		if m.Hint != "" {
			t.put((w-len(m.Hint))/2, row+1, m.Hint, textStyle)
		}
	}
}

func (t *Terminal) put(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func healthBar(b hud.Bar) string {
	if b.Max <= 0 {
		return "[]"
	}
	hp := b.Health
	if hp < 0 {
		hp = 0
	}
	if hp > b.Max {
		hp = b.Max
	}
	return "[" + strings.Repeat("#", hp) + strings.Repeat(" ", b.Max-hp) + "]"
}

func meter(f float64, width int) string {
	n := int(math.Round(f * float64(width)))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return "[" + strings.Repeat("=", n) + strings.Repeat("-", width-n) + "]"
}

func playerColor(id types.PlayerID) color.RGBA {
	if id == types.Player2 {
		return config.Player2Color
	}
	return config.Player1Color
}

// KnifeGlyph picks the line character closest to a blade heading as seen
// from above with +z pointing down the screen.
func KnifeGlyph(yaw float64) rune {
	a := math.Atan2(math.Cos(yaw), math.Sin(yaw))
	if a < 0 {
		a += math.Pi
	}
	switch int(math.Round(a/(math.Pi/4))) % 4 {
	case 1:
		return '\\'
	case 2:
		return '|'
	case 3:
		return '/'
	}
	return '-'
}
