// internal/ui/cooldown_indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CooldownIndicator is a disc that fills clockwise while the knife recharges
// and pulses once when it becomes ready.
type CooldownIndicator struct {
	X, Y      float32
	Radius    float32
	readyAt   time.Time
	wasReady  bool
}

func NewCooldownIndicator(x, y, radius float32) *CooldownIndicator {
	return &CooldownIndicator{X: x, Y: y, Radius: radius}
}

func (i *CooldownIndicator) Draw(fraction float64, ready bool, fill color.RGBA) {
	if ready && !i.wasReady {
		i.readyAt = time.Now()
	}
	i.wasReady = ready

	radius := i.Radius
	if ready {
		elapsed := time.Since(i.readyAt).Seconds()
		radius *= float32(1.0 + 0.3*math.Exp(-elapsed*8))
	}

	center := rl.NewVector2(i.X, i.Y)
	rl.DrawCircleV(center, radius, rl.Fade(rl.Black, 0.6))
	end := float32(360 * math.Min(math.Max(fraction, 0), 1))
	rl.DrawCircleSector(center, radius, -90, -90+end, 36, colorToRL(fill))
	rl.DrawRing(center, radius, radius+2, 0, 360, 36, rl.White)
}
