package level

import (
	"encoding/json"
	"strings"

	"github.com/tomz197/ping/internal/object"
	"github.com/tomz197/ping/internal/physics"
)

// Default geometry for objects that may omit their size.
const (
	defaultCandleW      = 12.0
	defaultCandleH      = 30.0
	defaultPicklesW     = 40.0
	defaultPicklesH     = 30.0
	defaultSpinnerSpeed = 90.0
	defaultSegments     = 36
	defaultBaseRadius   = 14.0
	defaultTopRadius    = 8.0
)

type paddleProps struct {
	IsLeft bool `json:"is_left"`
}

type goalProps struct {
	IsLeft bool     `json:"is_left"`
	Height *float64 `json:"height"`
}

type manholeProps struct {
	MinInterval   *float64 `json:"min_interval"`
	MaxInterval   *float64 `json:"max_interval"`
	SpoutDuration *float64 `json:"spout_duration"`
}

type spinnerProps struct {
	NumSegments   *int     `json:"num_segments"`
	SpinSpeedDegS *float64 `json:"spin_speed_deg_s"`
}

type portalProps struct {
	Exit string `json:"exit"`
}

type pistonProps struct {
	Interval      *float64 `json:"interval"`
	UpDuration    *float64 `json:"up_duration"`
	SteamDuration *float64 `json:"steam_duration"`
}

type candleProps struct {
	LightRadius *float64 `json:"light_radius"`
}

type picklesProps struct {
	ActivationRadius *float64 `json:"activation_radius"`
	Speed            *float64 `json:"speed"`
	GrabDistance     *float64 `json:"grab_distance"`
	DeliveryDistance *float64 `json:"delivery_distance"`
	Cooldown         *float64 `json:"cooldown"`
}

// object validates one PMF record and appends it to the level.
func (p *parser) object(i int, obj rawObject) {
	kind := strings.ToLower(strings.TrimSpace(obj.Type))
	skip := func(reason string) {
		p.warn("skipping object", "index", i, "type", obj.Type, "reason", reason)
	}
	props := func(dst any) bool {
		if len(obj.Properties) == 0 || string(obj.Properties) == "null" {
			return true
		}
		if err := json.Unmarshal(obj.Properties, dst); err != nil {
			skip("bad properties: " + err.Error())
			return false
		}
		return true
	}
	hasPos := obj.X != nil && obj.Y != nil
	hasSize := obj.Width != nil && obj.Height != nil && *obj.Width > 0 && *obj.Height > 0
	rect := func() physics.Rect {
		return p.world(*obj.X, *obj.Y, *obj.Width, *obj.Height)
	}

	switch kind {
	case "paddle_spawn":
		if !hasPos {
			skip("missing x/y")
			return
		}
		var pp paddleProps
		if !props(&pp) {
			return
		}
		spawn := PaddleSpawn{
			Side: object.PaddleRight,
			X:    *obj.X,
			Y:    *obj.Y + p.lvl.Arena.ScoreboardHeight,
			W:    object.DefaultPaddleWidth,
			H:    object.DefaultPaddleHeight,
		}
		if pp.IsLeft {
			spawn.Side = object.PaddleLeft
		}
		if hasSize {
			spawn.W, spawn.H = *obj.Width, *obj.Height
		}
		p.lvl.Paddles = append(p.lvl.Paddles, spawn)

	case "goal":
		var gp goalProps
		if !props(&gp) {
			return
		}
		g := Goal{Side: object.PaddleRight, Height: object.DefaultGoalHeight}
		if gp.IsLeft {
			g.Side = object.PaddleLeft
		}
		if gp.Height != nil && *gp.Height > 0 {
			g.Height = *gp.Height
		}
		p.lvl.Goals = append(p.lvl.Goals, g)

	case "manhole":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		var mp manholeProps
		if !props(&mp) {
			return
		}
		cfg := object.DefaultManholeConfig()
		setPositive(&cfg.MinInterval, mp.MinInterval)
		setPositive(&cfg.MaxInterval, mp.MaxInterval)
		setPositive(&cfg.SpoutDuration, mp.SpoutDuration)
		if cfg.MaxInterval < cfg.MinInterval {
			p.warn("manhole interval bounds swapped", "index", i)
			cfg.MinInterval, cfg.MaxInterval = cfg.MaxInterval, cfg.MinInterval
		}
		p.lvl.Manholes = append(p.lvl.Manholes, Manhole{Rect: rect(), Config: cfg})

	case "bumper":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		p.lvl.Bumpers = append(p.lvl.Bumpers, Bumper{Rect: rect()})

	case "obstacle":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		p.lvl.Obstacles = append(p.lvl.Obstacles, Obstacle{Rect: rect()})

	case "roulette_spinner":
		if !hasPos || obj.Radius == nil || *obj.Radius <= 0 {
			skip("missing x/y/radius")
			return
		}
		var sp spinnerProps
		if !props(&sp) {
			return
		}
		s := Spinner{
			CX:        *obj.X + *obj.Radius,
			CY:        *obj.Y + *obj.Radius + p.lvl.Arena.ScoreboardHeight,
			Radius:    *obj.Radius,
			Segments:  defaultSegments,
			SpinSpeed: defaultSpinnerSpeed,
		}
		if sp.NumSegments != nil {
			s.Segments = *sp.NumSegments
			if s.Segments < 2 {
				p.warn("roulette needs at least 2 segments", "index", i, "num_segments", s.Segments)
				s.Segments = 2
			}
		}
		if sp.SpinSpeedDegS != nil {
			s.SpinSpeed = *sp.SpinSpeedDegS
		}
		p.lvl.Spinners = append(p.lvl.Spinners, s)

	case "powerup_ball_duplicator":
		if !hasPos {
			skip("missing x/y")
			return
		}
		r := object.PowerUpRadius
		if obj.Radius != nil && *obj.Radius > 0 {
			r = *obj.Radius
		}
		p.lvl.PowerUps = append(p.lvl.PowerUps, PowerUp{
			CX: *obj.X + r,
			CY: *obj.Y + r + p.lvl.Arena.ScoreboardHeight,
		})

	case "portal":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		if obj.ID == nil || obj.TargetID == nil {
			skip("portal needs id and target_id")
			return
		}
		var pp portalProps
		if !props(&pp) {
			return
		}
		// Portal x/y name the center.
		r := physics.RectFromCenter(*obj.X, *obj.Y+p.lvl.Arena.ScoreboardHeight, *obj.Width, *obj.Height)
		exit := physics.SideNone
		switch strings.ToLower(pp.Exit) {
		case "left":
			exit = physics.SideLeft
		case "right":
			exit = physics.SideRight
		case "":
		default:
			p.warn("unknown portal exit, using default", "index", i, "exit", pp.Exit)
		}
		p.lvl.Portals = append(p.lvl.Portals, Portal{ID: *obj.ID, TargetID: *obj.TargetID, Rect: r, Exit: exit})

	case "piston":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		var pp pistonProps
		if !props(&pp) {
			return
		}
		cfg := object.DefaultPistonConfig()
		setPositive(&cfg.Interval, pp.Interval)
		setPositive(&cfg.UpDuration, pp.UpDuration)
		setPositive(&cfg.SteamDuration, pp.SteamDuration)
		p.lvl.Pistons = append(p.lvl.Pistons, Piston{Rect: rect(), Config: cfg})

	case "tesla_coil":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		c := TeslaCoil{Rect: rect(), BaseRadius: defaultBaseRadius, TopRadius: defaultTopRadius}
		setPositive(&c.BaseRadius, obj.BaseRadius)
		setPositive(&c.TopRadius, obj.TopRadius)
		p.lvl.Coils = append(p.lvl.Coils, c)

	case "sprite":
		if !hasPos || !hasSize {
			skip("missing geometry")
			return
		}
		if obj.ImagePath == "" {
			skip("missing image_path")
			return
		}
		// Sprites are placed in window coordinates.
		r := physics.Rect{X: *obj.X, Y: *obj.Y, W: *obj.Width, H: *obj.Height}
		p.lvl.Sprites = append(p.lvl.Sprites, Sprite{Rect: r, ImagePath: obj.ImagePath})

	case "candle":
		if !hasPos {
			skip("missing x/y")
			return
		}
		var cp candleProps
		if !props(&cp) {
			return
		}
		w, h := defaultCandleW, defaultCandleH
		if hasSize {
			w, h = *obj.Width, *obj.Height
		}
		c := Candle{Rect: p.world(*obj.X, *obj.Y, w, h), LightRadius: object.DefaultLightRadius}
		setPositive(&c.LightRadius, cp.LightRadius)
		p.lvl.Candles = append(p.lvl.Candles, c)

	case "ghost":
		if !hasPos {
			skip("missing x/y")
			return
		}
		size := object.DefaultGhostSize
		if obj.Width != nil && *obj.Width > 0 {
			size = *obj.Width
		}
		p.lvl.Ghosts = append(p.lvl.Ghosts, Ghost{
			CX:   *obj.X + size/2,
			CY:   *obj.Y + size/2 + p.lvl.Arena.ScoreboardHeight,
			Size: size,
		})

	case "pickles":
		if !hasPos {
			skip("missing x/y")
			return
		}
		var pp picklesProps
		if !props(&pp) {
			return
		}
		w, h := defaultPicklesW, defaultPicklesH
		if hasSize {
			w, h = *obj.Width, *obj.Height
		}
		cfg := object.DefaultPicklesConfig()
		setPositive(&cfg.ActivationRadius, pp.ActivationRadius)
		setPositive(&cfg.Speed, pp.Speed)
		setPositive(&cfg.GrabDistance, pp.GrabDistance)
		setPositive(&cfg.DeliveryDistance, pp.DeliveryDistance)
		setPositive(&cfg.Cooldown, pp.Cooldown)
		p.lvl.Pickles = append(p.lvl.Pickles, Pickles{Rect: p.world(*obj.X, *obj.Y, w, h), Config: cfg})

	default:
		skip("unknown type")
	}
}

// setPositive overwrites dst with a present, positive value.
func setPositive(dst *float64, v *float64) {
	if v != nil && *v > 0 {
		*dst = *v
	}
}
