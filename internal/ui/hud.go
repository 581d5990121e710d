// internal/ui/hud.go
package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"knife-arena/internal/config"
	"knife-arena/internal/hud"
)

const (
	bannerSize = 80
	hintSize   = 24
	statusSize = 18
)

// HUD draws the hud.Model over the 3D scene.
type HUD struct {
	health   [2]*HealthIndicator
	cooldown *CooldownIndicator
}

func NewHUD() *HUD {
	return &HUD{
		health: [2]*HealthIndicator{
			NewHealthIndicator(config.HUDMargin, config.HUDMargin, false),
			NewHealthIndicator(config.ScreenWidth-config.HUDMargin, config.HUDMargin, true),
		},
		cooldown: NewCooldownIndicator(config.HUDMargin+30, config.ScreenHeight-config.HUDMargin-30, 24),
	}
}

func (h *HUD) Draw(m hud.Model) {
	w := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())
	h.health[1].Position.X = float32(w - config.HUDMargin)

	for i, bar := range m.Bars {
		h.health[i].Draw(bar)
	}

	tw := rl.MeasureText(m.Tally, 30)
	rl.DrawText(m.Tally, (w-tw)/2, config.HUDMargin, 30, rl.White)

	h.cooldown.Y = float32(sh - config.HUDMargin - 30)
	h.cooldown.Draw(m.Cooldown, m.CooldownReady, m.CooldownColor)

	if m.Status != "" {
		sw := rl.MeasureText(m.Status, statusSize)
		rl.DrawText(m.Status, w-sw-config.HUDMargin, sh-config.HUDMargin-statusSize, statusSize, rl.LightGray)
	}

	if m.Banner == "" {
		return
	}
	if m.Hint != "" {
		rl.DrawRectangle(0, 0, w, sh, colorToRL(config.OverlayColor))
	}
	bw := rl.MeasureText(m.Banner, bannerSize)
	rl.DrawText(m.Banner, (w-bw)/2, sh/2-bannerSize, bannerSize, rl.White)
	if m.Hint != "" {
		hw := rl.MeasureText(m.Hint, hintSize)
		rl.DrawText(m.Hint, (w-hw)/2, sh/2+20, hintSize, rl.LightGray)
	}
}

func colorToRL(c color.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}
