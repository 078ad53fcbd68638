// Package level reads PMF level files into validated, immutable level
// descriptions that a session can compile into live entities.
package level

import (
	"errors"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/object"
	"github.com/tomz197/ping/internal/physics"
)

// Fatal load errors. Callers match them with errors.Is.
var (
	ErrNoProperties  = errors.New("level has no properties")
	ErrInvalidArena  = errors.New("invalid arena size")
	ErrNoScoringMode = errors.New("level enables neither bounce_walls nor use_goals")
)

// DefaultScoreboardHeight is the band above the playable area reserved for the score.
const DefaultScoreboardHeight = 60.0

// Background names a decorative backdrop. Unknown names are kept as-is and
// render as a plain background.
type Background string

const (
	BackgroundPlain   Background = "plain"
	BackgroundSewer   Background = "sewer"
	BackgroundCasino  Background = "casino"
	BackgroundHaunted Background = "haunted"
	BackgroundFactory Background = "factory"
)

// CenterLine configures the dashed net drawn down the middle.
type CenterLine struct {
	Enabled bool
	Dash    float64 // Dash length in logical pixels
	Width   float64
}

// DefaultCenterLine is used when a level does not configure one.
func DefaultCenterLine() CenterLine {
	return CenterLine{Enabled: true, Dash: 20, Width: 4}
}

// Level is a parsed level. All rectangles are in world coordinates, with the
// scoreboard band already accounted for. A Level is never modified after Parse.
type Level struct {
	Name  string
	Arena object.Arena

	BounceWalls       bool
	UseGoals          bool
	CanSpawnObstacles bool
	CanSpawnPowerups  bool
	CanSpawnGhosts    bool

	Palette       draw.Palette
	Background    Background
	Music         string
	HasLighting   bool
	LightingLevel int // 0-100
	CenterLine    CenterLine

	Paddles   []PaddleSpawn
	Goals     []Goal
	Manholes  []Manhole
	Bumpers   []Bumper
	Obstacles []Obstacle
	Spinners  []Spinner
	PowerUps  []PowerUp
	Portals   []Portal
	Pistons   []Piston
	Coils     []TeslaCoil
	Candles   []Candle
	Ghosts    []Ghost
	Pickles   []Pickles
	Sprites   []Sprite

	// Warnings lists every non-fatal problem found while parsing.
	Warnings []string
}

// PaddleSpawn places a paddle; X and Y are the paddle center.
type PaddleSpawn struct {
	Side object.PaddleSide
	X, Y float64
	W, H float64
}

// Goal overrides the automatic goal for one side.
type Goal struct {
	Side   object.PaddleSide
	Height float64
}

type Manhole struct {
	Rect   physics.Rect
	Config object.ManholeConfig
}

type Bumper struct {
	Rect physics.Rect
}

type Obstacle struct {
	Rect physics.Rect
}

// Spinner is a roulette wheel.
type Spinner struct {
	CX, CY    float64
	Radius    float64
	Segments  int
	SpinSpeed float64 // Degrees per second
}

type PowerUp struct {
	CX, CY float64
}

// Portal is one end of a teleporter; TargetID names the other end.
type Portal struct {
	ID       int
	TargetID int
	Rect     physics.Rect
	Exit     physics.Side // SideNone picks the side facing the interior
}

type Piston struct {
	Rect   physics.Rect
	Config object.PistonConfig
}

type TeslaCoil struct {
	Rect       physics.Rect
	BaseRadius float64
	TopRadius  float64
}

type Candle struct {
	Rect        physics.Rect
	LightRadius float64
}

// Ghost is a ghost present when the level starts.
type Ghost struct {
	CX, CY float64
	Size   float64
}

type Pickles struct {
	Rect   physics.Rect
	Config object.PicklesConfig
}

// Sprite is a decoration. Its rectangle is in window coordinates, so it may
// cover the scoreboard band.
type Sprite struct {
	Rect      physics.Rect
	ImagePath string
}

// Summary counts the entities of a level, for logs and tooling.
func (l *Level) Summary() map[string]int {
	return map[string]int{
		"paddles":   len(l.Paddles),
		"goals":     len(l.Goals),
		"manholes":  len(l.Manholes),
		"bumpers":   len(l.Bumpers),
		"obstacles": len(l.Obstacles),
		"spinners":  len(l.Spinners),
		"powerups":  len(l.PowerUps),
		"portals":   len(l.Portals),
		"pistons":   len(l.Pistons),
		"coils":     len(l.Coils),
		"candles":   len(l.Candles),
		"ghosts":    len(l.Ghosts),
		"pickles":   len(l.Pickles),
		"sprites":   len(l.Sprites),
	}
}

// Classic returns the built-in level used when no file is given: an empty
// arena with traditional scoring at the side walls. A non-positive
// scoreboardHeight uses the default.
func Classic(scoreboardHeight float64) *Level {
	if scoreboardHeight <= 0 {
		scoreboardHeight = DefaultScoreboardHeight
	}
	return &Level{
		Name: "Classic",
		Arena: object.Arena{
			Width:            800,
			Height:           540,
			ScoreboardHeight: scoreboardHeight,
		},
		Palette:       draw.DefaultPalette(),
		Background:    BackgroundPlain,
		LightingLevel: 100,
		CenterLine:    DefaultCenterLine(),
	}
}
