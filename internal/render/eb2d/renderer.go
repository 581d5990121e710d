// internal/render/eb2d/renderer.go
package eb2d

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/hud"
	"knife-arena/internal/render"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
)

const (
	trailLength = 8
	knifeLength = 5.0 // world units
	borderWidth = 2
)

// Renderer draws the arena from above with ebiten's vector package.
type Renderer struct {
	arena  component.Arena
	view   render.Viewport
	trails *render.Bindings[*render.Trail]
	face   font.Face
}

// NewRenderer fits the arena into a width × height logical screen.
func NewRenderer(arena component.Arena, width, height int) *Renderer {
	return &Renderer{
		arena:  arena,
		view:   render.FitViewport(width, height, arena.Bounds, 1),
		trails: render.NewBindings(func(sim.ProjectilePose) *render.Trail { return render.NewTrail(trailLength) }, nil),
		face:   basicfont.Face7x13,
	}
}

// ScreenToWorld maps a cursor position to the ground.
func (r *Renderer) ScreenToWorld(x, y int) (float64, float64) {
	return r.view.ToWorld(float64(x), float64(y))
}

func (r *Renderer) point(x, z float64) (float32, float32) {
	sx, sy := r.view.ToScreen(x, z)
	return float32(sx), float32(sy)
}

// Draw renders one frame and the HUD on top of it.
func (r *Renderer) Draw(screen *ebiten.Image, f sim.Frame, effects []*component.Effect, m hud.Model) {
	screen.Fill(config.BackgroundColor)
	r.drawArena(screen)

	for _, e := range effects {
		if !e.Alive() {
			continue
		}
		c := fade(config.BloodColor, e.Life)
		for _, p := range e.Particles {
			x, y := r.point(p.X, p.Z)
			vector.DrawFilledCircle(screen, x, y, 1.5, c, true)
		}
	}

	r.trails.Sync(f.Projectiles)
	for _, p := range f.Projectiles {
		if p.Removed {
			continue
		}
		if tr, ok := r.trails.Get(p.ID); ok {
			tr.Push(p.X, p.Z)
			r.drawTrail(screen, tr)
		}
		r.drawKnife(screen, p)
	}

	for _, c := range f.Combatants {
		if c.Player.Valid() {
			r.drawCombatant(screen, c, m.Bars[c.Player.Index()].Local)
		}
	}

	r.drawHUD(screen, m)
}

func (r *Renderer) drawArena(screen *ebiten.Image) {
	b := r.arena.Bounds
	x0, y0 := r.point(b.MinX, b.MinZ)
	x1, y1 := r.point(b.MaxX, b.MaxZ)
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, config.GroundColor, false)

	rx0, _ := r.point(r.arena.RiverMin, b.MinZ)
	rx1, _ := r.point(r.arena.RiverMax, b.MinZ)
	vector.DrawFilledRect(screen, rx0, y0, rx1-rx0, y1-y0, config.RiverColor, false)

	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, borderWidth, config.UIBorderColor, true)
}

func (r *Renderer) drawCombatant(screen *ebiten.Image, c sim.CombatantPose, local bool) {
	x, y := r.point(c.X, c.Z)
	radius := float32(config.CharacterSize / 2 * r.view.ScaleX)
	col := config.Player1Color
	if c.Player == types.Player2 {
		col = config.Player2Color
	}
	vector.DrawFilledCircle(screen, x, y, radius, col, true)
	if local {
		vector.StrokeCircle(screen, x, y, radius+2, borderWidth, config.UIBorderColor, true)
	}
	// heading tick
	hx := x + radius*float32(math.Sin(c.Rotation))
	hy := y + radius*float32(math.Cos(c.Rotation))
	vector.StrokeLine(screen, x, y, hx, hy, borderWidth, config.BackgroundColor, true)
}

func (r *Renderer) drawKnife(screen *ebiten.Image, p sim.ProjectilePose) {
	dx, dz := math.Sin(p.Yaw)*knifeLength/2, math.Cos(p.Yaw)*knifeLength/2
	x0, y0 := r.point(p.X-dx, p.Z-dz)
	x1, y1 := r.point(p.X+dx, p.Z+dz)
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, config.KnifeColor, true)
}

func (r *Renderer) drawTrail(screen *ebiten.Image, tr *render.Trail) {
	pts := tr.Points()
	for i := 1; i < len(pts); i++ {
		x0, y0 := r.point(pts[i-1].X, pts[i-1].Z)
		x1, y1 := r.point(pts[i].X, pts[i].Z)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, fade(config.KnifeColor, tr.Fade(i)*0.5), true)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, m hud.Model) {
	w := float32(screen.Bounds().Dx())
	h := float32(screen.Bounds().Dy())

	r.drawBar(screen, config.HUDMargin, config.HUDMargin, m.Bars[0])
	r.drawBar(screen, w-config.HUDMargin-config.HUDBarWidth, config.HUDMargin, m.Bars[1])
	r.drawCentered(screen, m.Tally, int(w)/2, config.HUDMargin+12, config.TextLightColor)

	// cooldown bar
	cy := h - config.HUDMargin - config.HUDBarHeight
	vector.StrokeRect(screen, config.HUDMargin, cy, config.HUDBarWidth, config.HUDBarHeight, borderWidth, config.UIBorderColor, true)
	fill := float32(math.Min(math.Max(m.Cooldown, 0), 1)) * (config.HUDBarWidth - borderWidth*2)
	if fill > 0 {
		vector.DrawFilledRect(screen, config.HUDMargin+borderWidth, cy+borderWidth, fill, config.HUDBarHeight-borderWidth*2, m.CooldownColor, true)
	}
	text.Draw(screen, "knife", r.face, config.HUDMargin, int(cy)-4, config.TextLightColor)

	if m.Status != "" {
		bw := text.BoundString(r.face, m.Status).Dx()
		text.Draw(screen, m.Status, r.face, int(w)-config.HUDMargin-bw, int(h)-config.HUDMargin, config.TextLightColor)
	}

	if m.Banner == "" {
		return
	}
	if m.Hint != "" {
		vector.DrawFilledRect(screen, 0, 0, w, h, config.OverlayColor, false)
	}
	r.drawCentered(screen, m.Banner, int(w)/2, int(h)/2, config.TextLightColor)
	if m.Hint != "" {
		r.drawCentered(screen, m.Hint, int(w)/2, int(h)/2+24, config.TextLightColor)
	}
}

// drawBar draws a health bar as pips inside a frame with the label below.
func (r *Renderer) drawBar(screen *ebiten.Image, x, y float32, b hud.Bar) {
	vector.StrokeRect(screen, x, y, config.HUDBarWidth, config.HUDBarHeight, borderWidth, config.UIBorderColor, true)
	if b.Max > 0 {
		pip := (config.HUDBarWidth - borderWidth*2 - config.HUDBarSpacing*float32(b.Max-1)) / float32(b.Max)
		for i := 0; i < b.Health && i < b.Max; i++ {
			px := x + borderWidth + float32(i)*(pip+config.HUDBarSpacing)
			vector.DrawFilledRect(screen, px, y+borderWidth, pip, config.HUDBarHeight-borderWidth*2, b.Fill, true)
		}
	}
	text.Draw(screen, b.Label, r.face, int(x), int(y)+config.HUDBarHeight+14, config.TextLightColor)
}

func (r *Renderer) drawCentered(screen *ebiten.Image, s string, cx, baseline int, c color.Color) {
	bw := text.BoundString(r.face, s).Dx()
	text.Draw(screen, s, r.face, cx-bw/2, baseline, c)
}

// Cleanup drops the knife trails.
func (r *Renderer) Cleanup() {
	r.trails.Clear()
}

func fade(c color.RGBA, alpha float64) color.RGBA {
	a := math.Min(math.Max(alpha, 0), 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
