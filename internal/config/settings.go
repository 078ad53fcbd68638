package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable knobs, read from a YAML file.
type Settings struct {
	Physics PhysicsSettings `yaml:"physics"`
	Arena   ArenaSettings   `yaml:"arena"`
	AI      AISettings      `yaml:"ai"`
	Spawns  SpawnSettings   `yaml:"spawns"`
	Match   MatchSettings   `yaml:"match"`
	Audio   AudioSettings   `yaml:"audio"`
}

type PhysicsSettings struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	BallMaxSpeed float64 `yaml:"ball_max_speed"`
	BallSize     float64 `yaml:"ball_size"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
}

type ArenaSettings struct {
	ScoreboardHeight float64 `yaml:"scoreboard_height"`
}

// AISettings choose which paddles the computer plays and how well.
type AISettings struct {
	Left     bool    `yaml:"left"`
	Right    bool    `yaml:"right"`
	MaxError float64 `yaml:"max_error"` // Logical pixels of deliberate aim error
}

type SpawnSettings struct {
	GhostInterval  float64 `yaml:"ghost_interval"` // Seconds between ghost spawn attempts
	ObstacleWidth  float64 `yaml:"obstacle_width"`
	ObstacleHeight float64 `yaml:"obstacle_height"`
	MaxBalls       int     `yaml:"max_balls"` // Power-ups stop duplicating at this many balls
}

type MatchSettings struct {
	WinningScore int `yaml:"winning_score"`
}

type AudioSettings struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Physics: PhysicsSettings{
			BallSpeed:    420,
			BallMaxSpeed: 1100,
			BallSize:     20,
			PaddleSpeed:  480,
		},
		Arena: ArenaSettings{ScoreboardHeight: 60},
		AI:    AISettings{Right: true, MaxError: 25},
		Spawns: SpawnSettings{
			GhostInterval:  8,
			ObstacleWidth:  20,
			ObstacleHeight: 60,
			MaxBalls:       8,
		},
		Match: MatchSettings{WinningScore: 7},
		Audio: AudioSettings{Enabled: true},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects values the simulation cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.Physics.BallSpeed <= 0:
		return errors.New("physics.ball_speed must be positive")
	case s.Physics.BallMaxSpeed < s.Physics.BallSpeed:
		return errors.New("physics.ball_max_speed must be at least ball_speed")
	case s.Physics.BallSize <= 0:
		return errors.New("physics.ball_size must be positive")
	case s.Physics.PaddleSpeed <= 0:
		return errors.New("physics.paddle_speed must be positive")
	case s.Arena.ScoreboardHeight < 0:
		return errors.New("arena.scoreboard_height must not be negative")
	case s.Spawns.GhostInterval <= 0:
		return errors.New("spawns.ghost_interval must be positive")
	case s.Spawns.ObstacleWidth <= 0 || s.Spawns.ObstacleHeight <= 0:
		return errors.New("spawns obstacle size must be positive")
	case s.Spawns.MaxBalls < 1:
		return errors.New("spawns.max_balls must be at least 1")
	case s.Match.WinningScore <= 0:
		return errors.New("match.winning_score must be positive")
	}
	return nil
}
