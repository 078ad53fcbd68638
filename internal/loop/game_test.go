package loop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomz197/ping/internal/audio"
	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/input"
	"github.com/tomz197/ping/internal/level"
	"github.com/tomz197/ping/internal/loop/config"
	"github.com/tomz197/ping/internal/object"
)

type fakeMuter struct {
	audio.Recorder
	muted bool
}

func (m *fakeMuter) SetMuted(muted bool) { m.muted = muted }
func (m *fakeMuter) Muted() bool         { return m.muted }

func newTestGame(t *testing.T, levelPath string) (*Game, *fakeMuter) {
	t.Helper()
	sounds := &fakeMuter{}
	g, err := NewGame(Options{
		Settings:  humanSettings(),
		LevelPath: levelPath,
		Logger:    quiet,
		Sounds:    sounds,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Close)
	return g, sounds
}

func step(t *testing.T, g *Game, in input.Input) {
	t.Helper()
	if err := g.Update(in, config.FixedDelta); err != nil {
		t.Fatal(err)
	}
}

func TestGameStateTransitions(t *testing.T) {
	g, _ := newTestGame(t, "")
	if g.State != GameStateTitle || g.Session.Level().Name != "Classic" {
		t.Fatalf("start state %v level %q", g.State, g.Session.Level().Name)
	}

	tests := []struct {
		name string
		in   input.Input
		want GameState
	}{
		{"start", input.Input{Space: true}, GameStatePlaying},
		{"pause", input.Input{Pause: true}, GameStatePaused},
		{"resume", input.Input{Pause: true}, GameStatePlaying},
		{"pause again", input.Input{Pause: true}, GameStatePaused},
		{"back to title", input.Input{Escape: true}, GameStateTitle},
		{"start with enter", input.Input{Enter: true}, GameStatePlaying},
	}
	for _, tt := range tests {
		step(t, g, tt.in)
		if g.State != tt.want {
			t.Fatalf("%s: state = %v, want %v", tt.name, g.State, tt.want)
		}
	}

	step(t, g, input.Input{Quit: true})
	if g.Running {
		t.Error("quit did not stop the game")
	}
}

func TestGameMatchOver(t *testing.T) {
	g, _ := newTestGame(t, "")
	step(t, g, input.Input{Space: true})

	g.Arena.Scores[object.PaddleRight] = g.Arena.WinningScore - 1
	g.Arena.Resolve(object.OutcomeScoreRight)
	step(t, g, input.Input{})
	if g.State != GameStateMatchOver {
		t.Fatalf("state = %v", g.State)
	}
	if w, _ := g.Arena.Winner(); w != object.PaddleRight {
		t.Errorf("winner = %v", w)
	}

	step(t, g, input.Input{Restart: true})
	if g.State != GameStatePlaying || g.Arena.Scores != [2]int{} {
		t.Errorf("restart: state %v scores %v", g.State, g.Arena.Scores)
	}
}

func TestGameMuteToggle(t *testing.T) {
	g, sounds := newTestGame(t, "")
	step(t, g, input.Input{Mute: true})
	if !sounds.muted {
		t.Fatal("mute not applied")
	}
	step(t, g, input.Input{Mute: true})
	if sounds.muted {
		t.Error("mute not toggled back")
	}
}

func TestGameLevelLoading(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "drain.pmf")
	if err := os.WriteFile(good, []byte(sewerLevel), 0o644); err != nil {
		t.Fatal(err)
	}

	g, _ := newTestGame(t, good)
	if g.Session.Level().Name != "Drain" {
		t.Fatalf("level = %q", g.Session.Level().Name)
	}

	before := g.Session
	if err := g.LoadLevel(filepath.Join(dir, "missing.pmf")); err == nil {
		t.Fatal("missing file loaded")
	}
	if g.Session != before {
		t.Error("failed load replaced the session")
	}
	if msg, ok := g.Message(); !ok || msg == "" {
		t.Error("load error not shown")
	}

	// Messages expire.
	for i := 0; i < int(config.MessageSeconds*config.TargetFPS)+2; i++ {
		step(t, g, input.Input{})
	}
	if _, ok := g.Message(); ok {
		t.Error("message never expired")
	}
}

func TestGameFallsBackToClassic(t *testing.T) {
	g, _ := newTestGame(t, filepath.Join(t.TempDir(), "nope.pmf"))
	if g.Session.Level().Name != "Classic" {
		t.Errorf("level = %q", g.Session.Level().Name)
	}
	if _, ok := g.Message(); !ok {
		t.Error("fallback reason not shown")
	}
}

func TestApplyPaddleInput(t *testing.T) {
	s, _ := newTestSession(t, level.Classic(0), humanSettings())
	left, right := s.Paddle(object.PaddleLeft), s.Paddle(object.PaddleRight)

	applyPaddleInput(s, input.Input{LeftUp: true, RightDown: true})
	if !left.MovingUp || left.MovingDown || !right.MovingDown || right.MovingUp {
		t.Error("two-player mapping wrong")
	}

	right.AI = object.NewPaddleAI(0, s.rng)
	applyPaddleInput(s, input.Input{RightUp: true})
	if !left.MovingUp {
		t.Error("arrows should drive the only human paddle")
	}
}

func TestSludgeRegenerates(t *testing.T) {
	sl := NewSludge(draw.RGB(60, 80, 40), 7)
	if sl.Texture() != nil {
		t.Fatal("texture before first resize")
	}

	sl.Resize(32, 16)
	sl.Wait()
	if sl.Version() != 1 {
		t.Fatalf("version = %d", sl.Version())
	}
	img := sl.Texture()
	if img == nil || img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Fatalf("texture = %v", img)
	}

	sl.Resize(32, 16)
	sl.Wait()
	if sl.Version() != 1 {
		t.Error("same size regenerated")
	}

	sl.Resize(48, 20)
	sl.Resize(64, 24)
	sl.Wait()
	if sl.Version() != 3 || sl.Texture().Bounds().Dx() != 64 {
		t.Errorf("version %d width %d after two resizes", sl.Version(), sl.Texture().Bounds().Dx())
	}
}
