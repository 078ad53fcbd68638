package loop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	settings "github.com/tomz197/ping/internal/config"
	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/level"
	"github.com/tomz197/ping/internal/loop/config"
	"github.com/tomz197/ping/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateTitle     GameState = iota // Title screen
	GameStatePlaying                    // Active match
	GameStatePaused                     // Match frozen by the player
	GameStateMatchOver                  // Someone reached the winning score
)

func (s GameState) String() string {
	switch s {
	case GameStateTitle:
		return "title"
	case GameStatePlaying:
		return "playing"
	case GameStatePaused:
		return "paused"
	case GameStateMatchOver:
		return "match over"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Options configures a game.
type Options struct {
	Settings     settings.Settings
	LevelPath    string // Empty plays the built-in classic level
	Logger       *log.Logger
	Sounds       object.Sounds
	Images       draw.ImageLoader
	TermSizeFunc draw.TermSizeFunc
	Seed         int64 // Zero seeds from the clock
	Remote       bool  // Enables the inactivity timeout
}

// Muter is implemented by sound players that can be silenced.
type Muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// Game owns the current level session, the match around it and the screen
// the player is looking at.
type Game struct {
	opts   Options
	logger *log.Logger
	rng    *rand.Rand

	State   GameState
	Running bool

	Session *Session
	Arena   *Arena

	message      string  // Transient message shown over the playfield
	messageTimer float64 // Seconds left for message
}

// NewGame loads the configured level and shows the title screen. A level
// that fails to load falls back to the classic level and reports why.
func NewGame(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	g := &Game{
		opts:    opts,
		logger:  opts.Logger,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		State:   GameStateTitle,
		Running: true,
	}

	if opts.LevelPath != "" {
		if err := g.LoadLevel(opts.LevelPath); err == nil {
			return g, nil
		}
	}
	if err := g.startSession(level.Classic(opts.Settings.Arena.ScoreboardHeight)); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadLevel compiles the PMF file at path and switches to it. On failure the
// current session is kept and the error is shown on screen.
func (g *Game) LoadLevel(path string) error {
	lvl, err := level.Load(path, level.Options{
		Logger:           g.logger,
		ScoreboardHeight: g.opts.Settings.Arena.ScoreboardHeight,
	})
	if err == nil {
		err = g.startSession(lvl)
	}
	if err != nil {
		g.logger.Error("level not loaded", "path", path, "err", err)
		g.showMessage(err.Error())
		return err
	}
	g.logger.Info("level loaded", "path", path, "name", lvl.Name, "warnings", len(lvl.Warnings))
	if n := len(lvl.Warnings); n > 0 {
		g.showMessage(fmt.Sprintf("%s: %d warning(s)", lvl.Name, n))
	}
	return nil
}

func (g *Game) startSession(lvl *level.Level) error {
	s, err := NewSession(lvl, SessionOptions{
		Settings: g.opts.Settings,
		Logger:   g.logger,
		Sounds:   g.opts.Sounds,
		Images:   g.opts.Images,
		Rand:     g.rng,
	})
	if err != nil {
		return fmt.Errorf("compile %s: %w", lvl.Name, err)
	}
	if g.Session != nil {
		g.Session.Close()
	}
	g.Session = s
	g.Arena = NewArena(s, g.opts.Settings.Match.WinningScore)
	return nil
}

func (g *Game) showMessage(msg string) {
	g.message = msg
	g.messageTimer = config.MessageSeconds
}

// Message returns the transient message, if one is showing.
func (g *Game) Message() (string, bool) {
	return g.message, g.messageTimer > 0
}

// Close releases the session's background work.
func (g *Game) Close() {
	if g.Session != nil {
		g.Session.Close()
	}
}
