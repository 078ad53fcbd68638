// Package object holds every simulated entity of a level: balls, paddles and
// the interactive pieces a level file places in the arena.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Sounds plays named sound effects. Fire-and-forget.
type Sounds interface {
	PlayEffect(name string)
}

// Sound effect names.
const (
	SoundBounce  = "bounce"
	SoundPaddle  = "paddle"
	SoundBumper  = "bumper"
	SoundPortal  = "portal"
	SoundSpout   = "spout"
	SoundPowerUp = "powerup"
	SoundScore   = "score"
	SoundGhost   = "ghost"
	SoundSpin    = "spin"
	SoundMeow    = "meow"
)

// playEffect is nil-safe so entities can be used without audio.
func playEffect(s Sounds, name string) {
	if s != nil {
		s.PlayEffect(name)
	}
}

// Arena describes the playfield. World y starts at the top of the scoreboard
// band; the playable band spans [ScoreboardHeight, ScoreboardHeight+Height].
type Arena struct {
	Width            float64 // Playable width
	Height           float64 // Playable height (scoreboard excluded)
	ScoreboardHeight float64
}

// Top returns the y of the top edge of the playable band.
func (a Arena) Top() float64 {
	return a.ScoreboardHeight
}

// Bottom returns the y of the bottom edge of the playable band.
func (a Arena) Bottom() float64 {
	return a.ScoreboardHeight + a.Height
}

// TotalHeight includes the scoreboard band.
func (a Arena) TotalHeight() float64 {
	return a.ScoreboardHeight + a.Height
}

// Bounds returns the playable rectangle.
func (a Arena) Bounds() physics.Rect {
	return physics.Rect{X: 0, Y: a.ScoreboardHeight, W: a.Width, H: a.Height}
}

// Center returns the center of the playable band.
func (a Arena) Center() (float64, float64) {
	return a.Width / 2, a.ScoreboardHeight + a.Height/2
}

// Outcome is the result of a ball interaction that the arena must resolve.
type Outcome int

const (
	OutcomeNone       Outcome = iota
	OutcomeBounce             // Ball was deflected, nothing to score
	OutcomeScoreLeft          // Left player scores
	OutcomeScoreRight         // Right player scores
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBounce:
		return "bounce"
	case OutcomeScoreLeft:
		return "left"
	case OutcomeScoreRight:
		return "right"
	default:
		return "none"
	}
}

// IsScore reports whether the outcome awards a point.
func (o Outcome) IsScore() bool {
	return o == OutcomeScoreLeft || o == OutcomeScoreRight
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta     time.Duration
	Arena     Arena
	Balls     []*Ball
	Candles   []*Candle
	Pickles   []*Pickles
	Ghosts    *GhostManager
	Obstacles []physics.Rect // Solid footprints, used by spawn searches
	Rand      *rand.Rand
	Sounds    Sounds
	Spawner   Spawner
}

// DT returns the frame delta in seconds.
func (c UpdateContext) DT() float64 {
	return c.Delta.Seconds()
}

// DrawContext provides drawing resources for objects. Every entity draws
// through the same three collaborators: the canvas surface, the level palette
// and the viewport that scales logical coordinates.
type DrawContext struct {
	Canvas  *draw.Canvas
	Palette draw.Palette
	View    draw.Viewport
	Time    float64 // Seconds since the level started, for animation
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// fillRect draws a logical rectangle.
func fillRect(ctx DrawContext, r physics.Rect, c draw.Color) {
	ctx.Canvas.FillRect(ctx.View.ScaleRect(r), c)
}

// fillCircle draws a logical circle.
func fillCircle(ctx DrawContext, cx, cy, radius float64, c draw.Color) {
	p := ctx.View.ScalePoint(cx, cy)
	ctx.Canvas.FillCircle(p.X, p.Y, ctx.View.ScaleLen(radius), c)
}

// strokeCircle draws a logical circle outline.
func strokeCircle(ctx DrawContext, cx, cy, radius float64, c draw.Color) {
	p := ctx.View.ScalePoint(cx, cy)
	ctx.Canvas.StrokeCircle(p.X, p.Y, ctx.View.ScaleLen(radius), c)
}

// line draws a logical line segment.
func line(ctx DrawContext, x1, y1, x2, y2 float64, c draw.Color) {
	ctx.Canvas.DrawLine(ctx.View.ScalePoint(x1, y1), ctx.View.ScalePoint(x2, y2), c)
}
