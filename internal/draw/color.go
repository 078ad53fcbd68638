package draw

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with an opacity used when blending onto the canvas.
type Color struct {
	colorful.Color
	A float64 // 0 = transparent, 1 = opaque
}

// RGB builds an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: 1}
}

// Hex parses "#rrggbb" into an opaque color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{Color: c, A: 1}, nil
}

// Alpha returns the color with the given opacity (clamped to [0,1]).
func (c Color) Alpha(a float64) Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = a
	return c
}

// Alpha255 is Alpha with a 0-255 opacity, the range entity code works in.
func (c Color) Alpha255(a float64) Color {
	return c.Alpha(a / 255)
}

// Lighten blends the color toward white by t.
func (c Color) Lighten(t float64) Color {
	c.Color = c.Color.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped()
	return c
}

// Darken blends the color toward black by t.
func (c Color) Darken(t float64) Color {
	c.Color = c.Color.BlendRgb(colorful.Color{}, t).Clamped()
	return c
}

// Mix blends toward other by t, keeping this color's opacity.
func (c Color) Mix(other Color, t float64) Color {
	c.Color = c.Color.BlendRgb(other.Color, t).Clamped()
	return c
}

// Palette maps color names to colors. Lookups of unknown names fall back to
// white so a level missing a color group still renders.
type Palette map[string]Color

// Palette color names used by the game.
const (
	ColorBackground = "background"
	ColorForeground = "foreground"
	ColorPaddle     = "paddle"
	ColorBall       = "ball"
	ColorObstacle   = "obstacle"
	ColorGoal       = "goal"
	ColorPortal     = "portal"
	ColorManhole    = "manhole"
	ColorWater      = "water"
	ColorBumper     = "bumper"
	ColorRed        = "red"
	ColorBlack      = "black"
	ColorGold       = "gold"
	ColorMetal      = "metal"
	ColorSteam      = "steam"
	ColorSpark      = "spark"
	ColorPowerUp    = "powerup"
	ColorGhost      = "ghost"
	ColorPossessed  = "possessed"
	ColorPickles    = "pickles"
	ColorCandle     = "candle"
	ColorFlame      = "flame"
	ColorScore      = "score"
	ColorCenterLine = "center_line"
	ColorSludge     = "sludge"
)

// DefaultPalette returns the built-in colors.
func DefaultPalette() Palette {
	return Palette{
		ColorBackground: RGB(0, 0, 0),
		ColorForeground: RGB(255, 255, 255),
		ColorPaddle:     RGB(255, 255, 255),
		ColorBall:       RGB(255, 255, 255),
		ColorObstacle:   RGB(160, 160, 170),
		ColorGoal:       RGB(90, 200, 90),
		ColorPortal:     RGB(120, 80, 255),
		ColorManhole:    RGB(70, 70, 80),
		ColorWater:      RGB(90, 160, 255),
		ColorBumper:     RGB(255, 80, 160),
		ColorRed:        RGB(200, 30, 30),
		ColorBlack:      RGB(30, 30, 30),
		ColorGold:       RGB(220, 180, 60),
		ColorMetal:      RGB(140, 140, 150),
		ColorSteam:      RGB(220, 220, 230),
		ColorSpark:      RGB(150, 200, 255),
		ColorPowerUp:    RGB(255, 220, 0),
		ColorGhost:      RGB(230, 230, 255),
		ColorPossessed:  RGB(160, 255, 160),
		ColorPickles:    RGB(255, 160, 60),
		ColorCandle:     RGB(240, 230, 200),
		ColorFlame:      RGB(255, 170, 40),
		ColorScore:      RGB(255, 255, 255),
		ColorCenterLine: RGB(100, 100, 100),
		ColorSludge:     RGB(60, 90, 40),
	}
}

// Get returns the named color, or white when the name is unknown.
func (p Palette) Get(name string) Color {
	if c, ok := p[name]; ok {
		return c
	}
	return RGB(255, 255, 255)
}

// Merge returns a copy of p with every entry of over applied on top.
func (p Palette) Merge(over Palette) Palette {
	out := make(Palette, len(p)+len(over))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
