package level

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/object"
	"github.com/tomz197/ping/internal/physics"
)

// Options configures parsing.
type Options struct {
	// Logger receives per-object warnings. Defaults to log.Default().
	Logger *log.Logger
	// ScoreboardHeight overrides the default band height when the file does
	// not set one. Zero means DefaultScoreboardHeight.
	ScoreboardHeight float64
}

type fileFormat struct {
	Properties *properties `json:"properties"`
	Objects    []rawObject `json:"objects"`
	Sprites    []rawObject `json:"sprites"`
}

type properties struct {
	Width             float64                    `json:"width"`
	Height            float64                    `json:"height"`
	ScoreboardHeight  *float64                   `json:"scoreboard_height"`
	Name              string                     `json:"name"`
	BounceWalls       bool                       `json:"bounce_walls"`
	UseGoals          bool                       `json:"use_goals"`
	CanSpawnObstacles bool                       `json:"can_spawn_obstacles"`
	CanSpawnPowerups  bool                       `json:"can_spawn_powerups"`
	CanSpawnGhosts    bool                       `json:"can_spawn_ghosts"`
	LevelMusic        string                     `json:"level_music"`
	LevelBackground   string                     `json:"level_background"`
	HasLighting       bool                       `json:"has_lighting"`
	LightingLevel     *int                       `json:"lighting_level"`
	Colors            map[string]json.RawMessage `json:"colors"`
	CenterLine        *centerLine                `json:"center_line"`
}

type centerLine struct {
	Enabled *bool    `json:"enabled"`
	Dash    *float64 `json:"dash"`
	Width   *float64 `json:"width"`
}

type rawObject struct {
	Type       string          `json:"type"`
	ID         *int            `json:"id"`
	TargetID   *int            `json:"target_id"`
	X          *float64        `json:"x"`
	Y          *float64        `json:"y"`
	Width      *float64        `json:"width"`
	Height     *float64        `json:"height"`
	Radius     *float64        `json:"radius"`
	BaseRadius *float64        `json:"base_radius"`
	TopRadius  *float64        `json:"top_radius"`
	ImagePath  string          `json:"image_path"`
	Properties json.RawMessage `json:"properties"`
}

// Load reads and parses the PMF file at path.
func Load(path string, opts Options) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()

	lvl, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes a PMF document. Problems with single objects are logged,
// recorded in Level.Warnings and skipped; only document-level problems fail.
func Parse(r io.Reader, opts Options) (*Level, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var doc fileFormat
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if doc.Properties == nil {
		return nil, ErrNoProperties
	}

	p := &parser{logger: logger}
	lvl, err := p.properties(doc.Properties, opts)
	if err != nil {
		return nil, err
	}
	p.lvl = lvl

	for i, obj := range doc.Objects {
		p.object(i, obj)
	}
	for i, obj := range doc.Sprites {
		if obj.Type == "" {
			obj.Type = "sprite"
		}
		p.object(len(doc.Objects)+i, obj)
	}
	p.checkPortals()
	return lvl, nil
}

type parser struct {
	logger *log.Logger
	lvl    *Level
}

func (p *parser) warn(msg string, keyvals ...any) {
	p.logger.Warn(msg, keyvals...)
	p.lvl.Warnings = append(p.lvl.Warnings, formatWarning(msg, keyvals...))
}

func formatWarning(msg string, keyvals ...any) string {
	for i := 0; i+1 < len(keyvals); i += 2 {
		msg += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}
	return msg
}

func (p *parser) properties(props *properties, opts Options) (*Level, error) {
	board := DefaultScoreboardHeight
	if opts.ScoreboardHeight > 0 {
		board = opts.ScoreboardHeight
	}
	if props.ScoreboardHeight != nil {
		board = *props.ScoreboardHeight
	}
	if board < 0 {
		return nil, fmt.Errorf("scoreboard height %v: %w", board, ErrInvalidArena)
	}

	arena := object.Arena{Width: props.Width, Height: props.Height - board, ScoreboardHeight: board}
	if arena.Width <= 0 || arena.Height <= 0 {
		return nil, fmt.Errorf("%vx%v with scoreboard %v: %w", props.Width, props.Height, board, ErrInvalidArena)
	}
	if !props.BounceWalls && !props.UseGoals {
		return nil, ErrNoScoringMode
	}

	lvl := &Level{
		Name:              props.Name,
		Arena:             arena,
		BounceWalls:       props.BounceWalls,
		UseGoals:          props.UseGoals,
		CanSpawnObstacles: props.CanSpawnObstacles,
		CanSpawnPowerups:  props.CanSpawnPowerups,
		CanSpawnGhosts:    props.CanSpawnGhosts,
		Background:        Background(props.LevelBackground),
		Music:             props.LevelMusic,
		HasLighting:       props.HasLighting,
		LightingLevel:     100,
		CenterLine:        DefaultCenterLine(),
	}
	p.lvl = lvl

	if lvl.Name == "" {
		lvl.Name = "Untitled"
	}
	if lvl.Background == "" {
		lvl.Background = BackgroundPlain
	}
	if props.LightingLevel != nil {
		lvl.LightingLevel = *props.LightingLevel
		if lvl.LightingLevel < 0 || lvl.LightingLevel > 100 {
			p.warn("lighting level out of range, clamping", "value", lvl.LightingLevel)
			lvl.LightingLevel = min(max(lvl.LightingLevel, 0), 100)
		}
	}
	if cl := props.CenterLine; cl != nil {
		if cl.Enabled != nil {
			lvl.CenterLine.Enabled = *cl.Enabled
		}
		if cl.Dash != nil && *cl.Dash > 0 {
			lvl.CenterLine.Dash = *cl.Dash
		}
		if cl.Width != nil && *cl.Width > 0 {
			lvl.CenterLine.Width = *cl.Width
		}
	}
	lvl.Palette = draw.DefaultPalette().Merge(p.colors(props.Colors))
	return lvl, nil
}

// colors parses the optional palette overrides. Bad entries are skipped.
func (p *parser) colors(raw map[string]json.RawMessage) draw.Palette {
	out := make(draw.Palette, len(raw))
	for name, msg := range raw {
		c, err := parseColor(msg)
		if err != nil {
			p.warn("ignoring color", "name", name, "err", err)
			continue
		}
		out[name] = c
	}
	return out
}

// parseColor accepts "#rrggbb" or [r, g, b].
func parseColor(msg json.RawMessage) (draw.Color, error) {
	var hex string
	if err := json.Unmarshal(msg, &hex); err == nil {
		return draw.Hex(hex)
	}
	var rgb []int
	if err := json.Unmarshal(msg, &rgb); err != nil {
		return draw.Color{}, fmt.Errorf("want \"#rrggbb\" or [r,g,b]: %w", err)
	}
	if len(rgb) != 3 {
		return draw.Color{}, fmt.Errorf("want 3 channels, got %d", len(rgb))
	}
	for _, v := range rgb {
		if v < 0 || v > 255 {
			return draw.Color{}, fmt.Errorf("channel %d out of range", v)
		}
	}
	return draw.RGB(uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2])), nil
}

// world converts a top-left position relative to the playable origin.
func (p *parser) world(x, y, w, h float64) physics.Rect {
	return physics.Rect{X: x, Y: y + p.lvl.Arena.ScoreboardHeight, W: w, H: h}
}

func (p *parser) checkPortals() {
	ids := make(map[int]int, len(p.lvl.Portals))
	for _, pt := range p.lvl.Portals {
		ids[pt.ID]++
	}
	for _, pt := range p.lvl.Portals {
		if ids[pt.ID] > 1 {
			p.warn("duplicate portal id", "id", pt.ID)
		}
		if _, ok := ids[pt.TargetID]; !ok {
			p.warn("portal target not found, portal is inert", "id", pt.ID, "target_id", pt.TargetID)
		}
	}
}
