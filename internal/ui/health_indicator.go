// internal/ui/health_indicator.go
package ui

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"knife-arena/internal/hud"
)

const (
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
	healthLabelSize     = 20
)

// HealthIndicator draws one health bar as a row of circles under a label.
// Right-aligned indicators grow towards the left edge.
type HealthIndicator struct {
	Position   rl.Vector2
	RightAlign bool
}

func NewHealthIndicator(x, y float32, rightAlign bool) *HealthIndicator {
	return &HealthIndicator{Position: rl.NewVector2(x, y), RightAlign: rightAlign}
}

// Width is the width of the circle row for max pips.
func (i *HealthIndicator) Width(max int) float32 {
	return float32(max) * (HealthCircleRadius*2 + HealthCircleSpacing)
}

func (i *HealthIndicator) Draw(bar hud.Bar) {
	startX := i.Position.X
	if i.RightAlign {
		startX -= i.Width(bar.Max)
	}
	y := i.Position.Y + healthLabelSize + 5

	fill := colorToRL(bar.Fill)
	for j := 0; j < bar.Max; j++ {
		x := startX + float32(j)*(HealthCircleRadius*2+HealthCircleSpacing)
		col := rl.Black
		if j < bar.Health {
			col = fill
		}
		rl.DrawCircle(int32(x+HealthCircleRadius), int32(y+HealthCircleRadius), HealthCircleRadius, col)
		rl.DrawCircleLines(int32(x+HealthCircleRadius), int32(y+HealthCircleRadius), HealthCircleRadius, rl.White)
	}

	text := bar.Label + "  " + strconv.Itoa(bar.Health) + "/" + strconv.Itoa(bar.Max)
	tx := startX
	if i.RightAlign {
		tx = i.Position.X - float32(rl.MeasureText(text, healthLabelSize))
	}
	textColor := rl.White
	if bar.Local {
		textColor = rl.Gold
	}
	rl.DrawText(text, int32(tx), int32(i.Position.Y), healthLabelSize, textColor)
}

// Height is the total height of label and circles.
func (i *HealthIndicator) Height() float32 {
	return healthLabelSize + 5 + HealthCircleRadius*2
}
