// internal/ui/button.go
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Button is a clickable rectangle with a centred label.
type Button struct {
	Rect       rl.Rectangle
	Text       string
	TextColor  rl.Color
	BgColor    rl.Color
	HoverColor rl.Color
	FontSize   int32
	Disabled   bool
}

// NewButton creates a button drawn with the default font.
func NewButton(rect rl.Rectangle, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  rl.Black,
		BgColor:    rl.LightGray,
		HoverColor: rl.Gray,
		FontSize:   20,
	}
}

// IsClicked reports a left click inside the button this frame.
func (b *Button) IsClicked(mousePos rl.Vector2) bool {
	if b.Disabled {
		return false
	}
	return rl.CheckCollisionPointRec(mousePos, b.Rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (b *Button) Draw(mousePos rl.Vector2) {
	bg := b.BgColor
	switch {
	case b.Disabled:
		bg = rl.Fade(b.BgColor, 0.4)
	case rl.CheckCollisionPointRec(mousePos, b.Rect):
		bg = b.HoverColor
	}

	rl.DrawRectangleRec(b.Rect, bg)
	rl.DrawRectangleLinesEx(b.Rect, 2, rl.DarkGray)

	w := rl.MeasureText(b.Text, b.FontSize)
	x := b.Rect.X + (b.Rect.Width-float32(w))/2
	y := b.Rect.Y + (b.Rect.Height-float32(b.FontSize))/2
	rl.DrawText(b.Text, int32(x), int32(y), b.FontSize, b.TextColor)
}
