package loop

import (
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ping/internal/audio"
	settings "github.com/tomz197/ping/internal/config"
	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/level"
	"github.com/tomz197/ping/internal/loop/config"
	"github.com/tomz197/ping/internal/object"
	"github.com/tomz197/ping/internal/physics"
)

var quiet = log.New(io.Discard)

// humanSettings turns the computer off on both sides.
func humanSettings() settings.Settings {
	s := settings.Default()
	s.AI.Left, s.AI.Right = false, false
	return s
}

func newTestSession(t *testing.T, lvl *level.Level, st settings.Settings) (*Session, *audio.Recorder) {
	t.Helper()
	rec := &audio.Recorder{}
	s, err := NewSession(lvl, SessionOptions{
		Settings: st,
		Logger:   quiet,
		Sounds:   rec,
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s, rec
}

func parseLevel(t *testing.T, doc string) *level.Level {
	t.Helper()
	lvl, err := level.Parse(strings.NewReader(doc), level.Options{Logger: quiet})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return lvl
}

// aimAtRightWall puts the only ball one frame away from the right wall.
func aimAtRightWall(s *Session) *object.Ball {
	b := s.Balls()[0]
	b.X, b.Y = 785, 100
	b.SetDirection(1, 0)
	return b
}

func TestClassicSession(t *testing.T) {
	s, rec := newTestSession(t, level.Classic(0), humanSettings())
	if len(s.Balls()) != 1 {
		t.Fatalf("balls = %d", len(s.Balls()))
	}
	if s.Paddle(object.PaddleLeft) == nil || s.Paddle(object.PaddleRight) == nil {
		t.Fatal("default paddles missing")
	}

	aimAtRightWall(s)
	outcome, err := s.Step(config.FixedDelta)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != object.OutcomeScoreLeft {
		t.Errorf("outcome = %v, want left scores", outcome)
	}
	if rec.Count(object.SoundScore) != 1 {
		t.Error("score sound not played")
	}
}

const sewerLevel = `{
  "properties": {
    "width": 800, "height": 600, "name": "Drain",
    "use_goals": true, "can_spawn_powerups": true,
    "level_background": "sewer", "has_lighting": true, "lighting_level": 30
  },
  "objects": [
    {"type": "portal", "id": 1, "target_id": 2, "x": 200, "y": 100, "width": 20, "height": 80},
    {"type": "portal", "id": 2, "target_id": 1, "x": 580, "y": 300, "width": 20, "height": 80},
    {"type": "portal", "id": 3, "target_id": 9, "x": 400, "y": 40, "width": 20, "height": 40},
    {"type": "manhole", "x": 380, "y": 520, "width": 40, "height": 20},
    {"type": "bumper", "x": 300, "y": 300, "width": 40, "height": 40},
    {"type": "candle", "x": 390, "y": 200},
    {"type": "pickles", "x": 600, "y": 500},
    {"type": "goal", "properties": {"is_left": false, "height": 120}}
  ]
}`

func TestSessionCompilesParsedLevel(t *testing.T) {
	s, _ := newTestSession(t, parseLevel(t, sewerLevel), humanSettings())

	if len(s.goals) != 2 || s.goals[object.PaddleRight].Rect.H != 120 || s.goals[object.PaddleLeft].Rect.H != object.DefaultGoalHeight {
		t.Errorf("goals = %+v", s.goals)
	}
	portals := s.Portals()
	if len(portals) != 3 || portals[0].Pair() != portals[1] || portals[1].Pair() != portals[0] {
		t.Error("portals not paired by target id")
	}
	if portals[2].Pair() != nil {
		t.Error("portal with a missing target was paired")
	}
	if len(s.powerUps) != 1 || s.powerUps[0].Active {
		t.Errorf("expected one dormant power-up, got %+v", s.powerUps)
	}
	if s.sludge == nil {
		t.Error("sewer level has no sludge backdrop")
	}

	for i := 0; i < 300; i++ {
		if _, err := s.Step(config.FixedDelta); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := s.Elapsed(); got < 4.9 || got > 5.1 {
		t.Errorf("elapsed = %v", got)
	}

	c := draw.NewCanvas(80, 24)
	view := draw.NewViewport(float64(c.Width()), float64(c.Height()), s.Arena().Width, s.Arena().TotalHeight())
	if err := s.Draw(c, view); err != nil {
		t.Fatalf("Draw: %v", err)
	}
}

const obstacleLevel = `{
  "properties": {"width": 800, "height": 600, "bounce_walls": true, "can_spawn_obstacles": true},
  "objects": [
    {"type": "obstacle", "x": 390, "y": 200, "width": 20, "height": 60}
  ]
}`

func TestObstacleRespawnsAfterHit(t *testing.T) {
	s, _ := newTestSession(t, parseLevel(t, obstacleLevel), humanSettings())
	before := s.Obstacles()[0]
	r := before.Rect

	b := s.Balls()[0]
	b.SetCenter(r.X-5, r.CenterY())
	b.SetDirection(1, 0)
	if _, err := s.Step(config.FixedDelta); err != nil {
		t.Fatal(err)
	}
	if b.DX >= 0 {
		t.Error("ball did not bounce off the obstacle")
	}
	after := s.Obstacles()[0]
	if after == before {
		t.Fatal("obstacle was not replaced")
	}
	w := s.Arena().Width
	if after.Rect.X < w/3 || after.Rect.Right() > 2*w/3 || after.Rect.W != r.W || after.Rect.H != r.H {
		t.Errorf("respawned obstacle = %+v", after.Rect)
	}
}

func TestGhostsSpawnOnSchedule(t *testing.T) {
	st := humanSettings()
	st.Spawns.GhostInterval = 0.05
	lvl := parseLevel(t, `{"properties": {"width": 800, "height": 600, "bounce_walls": true, "can_spawn_ghosts": true}}`)
	s, _ := newTestSession(t, lvl, st)

	for i := 0; i < 60; i++ {
		if _, err := s.Step(config.FixedDelta); err != nil {
			t.Fatal(err)
		}
	}
	m := s.Ghosts()
	if m.Active() != object.MaxActiveGhosts {
		t.Fatalf("active ghosts = %d", m.Active())
	}
	w := s.Arena().Width
	for _, g := range m.Ghosts() {
		if x, _ := g.Center(); x < w/4-1 || x > 3*w/4+1 {
			t.Errorf("ghost spawned outside the middle half: %v", x)
		}
	}
}

func TestArenaScoresAndServes(t *testing.T) {
	s, _ := newTestSession(t, level.Classic(0), humanSettings())
	a := NewArena(s, 2)

	aimAtRightWall(s)
	if err := a.Step(config.FixedDelta); err != nil {
		t.Fatal(err)
	}
	if a.Scores != [2]int{1, 0} || a.LastOutcome() != object.OutcomeScoreLeft {
		t.Fatalf("scores = %v last %v", a.Scores, a.LastOutcome())
	}
	if !a.Paused() || len(s.Balls()) != 1 {
		t.Fatal("no serve pause after a point")
	}
	served := s.Balls()[0]
	cx, cy := served.Center()
	if wx, wy := s.Arena().Center(); cx != wx || cy != wy || served.DX <= 0 {
		t.Errorf("serve from (%v, %v) dx %v", cx, cy, served.DX)
	}

	// Frozen during the pause.
	a.Step(config.FixedDelta)
	if nx, ny := served.Center(); nx != cx || ny != cy {
		t.Error("ball moved during the serve pause")
	}

	a.Resolve(object.OutcomeScoreLeft)
	winner, over := a.Winner()
	if !over || winner != object.PaddleLeft {
		t.Fatalf("winner = %v over %v", winner, over)
	}
	a.Resolve(object.OutcomeBounce)
	if a.Scores != [2]int{2, 0} {
		t.Errorf("non-score outcome changed scores: %v", a.Scores)
	}

	a.Reset()
	if _, over := a.Winner(); over || a.Scores != [2]int{} || a.Paused() {
		t.Error("reset did not clear the match")
	}
}

func TestArenaPauseLasts(t *testing.T) {
	s, _ := newTestSession(t, level.Classic(0), humanSettings())
	a := NewArena(s, 5)
	a.Resolve(object.OutcomeScoreRight)

	frames := 0
	for a.Paused() {
		a.Step(config.FixedDelta)
		frames++
		if frames > 1000 {
			t.Fatal("pause never ends")
		}
	}
	want := int(config.ServePauseSeconds / config.FixedDelta.Seconds())
	if frames < want-1 || frames > want+1 {
		t.Errorf("pause lasted %d frames, want about %d", frames, want)
	}
}

func TestSessionStepUsesFixedDelta(t *testing.T) {
	s, _ := newTestSession(t, level.Classic(0), humanSettings())
	b := s.Balls()[0]
	b.SetCenter(400, 330)
	b.SetDirection(1, 0)
	speed := b.Speed

	s.Step(config.FixedDelta)
	want := speed * config.FixedDelta.Seconds()
	cx, _ := b.Center()
	if d := cx - 400; d < want-1e-9 || d > want+1e-9 {
		t.Errorf("ball moved %v, want %v", d, want)
	}
}

func TestSessionSpawnsObstacleWhenAllowed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"allowed", `{"properties": {"width": 800, "height": 600, "can_spawn_obstacles": true}}`, 1},
		{"not allowed", `{"properties": {"width": 800, "height": 600}}`, 0},
		{"placed", obstacleLevel, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := humanSettings()
			s, _ := newTestSession(t, parseLevel(t, tt.doc), st)
			obstacles := s.Obstacles()
			if len(obstacles) != tt.want {
				t.Fatalf("obstacles = %d, want %d", len(obstacles), tt.want)
			}
			if tt.want == 0 || tt.doc == obstacleLevel {
				return
			}
			r := obstacles[0].Rect
			w := s.Arena().Width
			if r.W != st.Spawns.ObstacleWidth || r.H != st.Spawns.ObstacleHeight {
				t.Errorf("spawned size %vx%v", r.W, r.H)
			}
			if r.X < w/3 || r.Right() > 2*w/3 || r.Y < s.Arena().Top() || r.Bottom() > s.Arena().Bottom() {
				t.Errorf("spawned obstacle = %+v", r)
			}
		})
	}
}

const overlapLevel = `{
  "properties": {"width": 800, "height": 600, "use_goals": true},
  "objects": [
    {"type": "portal", "id": 1, "target_id": 2, "x": 200, "y": 100, "width": 20, "height": 80},
    {"type": "portal", "id": 2, "target_id": 1, "x": 580, "y": 300, "width": 20, "height": 80},
    {"type": "bumper", "x": 300, "y": 300, "width": 40, "height": 40}
  ]
}`

func TestCollisionDispatchOrder(t *testing.T) {
	t.Run("goal before portal", func(t *testing.T) {
		s, _ := newTestSession(t, parseLevel(t, overlapLevel), humanSettings())
		goal := s.goals[object.PaddleRight].Rect
		src := s.Portals()[0]
		src.Rect = physics.Rect{X: goal.X - 20, Y: goal.Y, W: goal.W + 20, H: goal.H}

		b := s.Balls()[0]
		b.X, b.Y = goal.X-15, goal.Y+10
		b.SetDirection(1, 0)
		x, y := b.X, b.Y

		if got := s.checkCollisions(s.updateContext(config.FixedDelta)); got != object.OutcomeScoreLeft {
			t.Fatalf("outcome = %v, want left scores", got)
		}
		if b.X != x || b.Y != y || src.CoolingDown() {
			t.Error("portal acted on a ball that had already scored")
		}
	})

	t.Run("portal before bumper", func(t *testing.T) {
		s, _ := newTestSession(t, parseLevel(t, overlapLevel), humanSettings())
		src, dst := s.Portals()[0], s.Portals()[1]
		bp := s.bumpers[0]
		src.Rect = physics.RectFromCenter(bp.CX, bp.CY, 40, 40)

		b := s.Balls()[0]
		b.SetCenter(bp.CX, bp.CY)
		b.SetDirection(0, 1)

		if got := s.checkCollisions(s.updateContext(config.FixedDelta)); got.IsScore() {
			t.Fatalf("outcome = %v", got)
		}
		if !b.Rect().Intersects(physics.Rect{X: dst.Rect.X - 40, Y: dst.Rect.Y - 20, W: dst.Rect.W + 80, H: dst.Rect.H + 40}) {
			t.Fatalf("ball at (%v, %v) was not teleported", b.X, b.Y)
		}
		if b.DX != 0 || b.DY != 1 {
			t.Errorf("bumper kicked the teleported ball: (%v, %v)", b.DX, b.DY)
		}
	})
}

func TestPowerUpRespectsBallCap(t *testing.T) {
	doc := `{"properties": {"width": 800, "height": 600, "bounce_walls": true, "can_spawn_powerups": true}}`
	for _, tt := range []struct {
		name     string
		maxBalls int
		want     int
	}{
		{"room left", 2, 2},
		{"at cap", 1, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			st := humanSettings()
			st.Spawns.MaxBalls = tt.maxBalls
			s, _ := newTestSession(t, parseLevel(t, doc), st)
			pu := s.powerUps[0]
			pu.Active = true
			pu.CX, pu.CY = s.Balls()[0].Center()

			s.checkCollisions(s.updateContext(config.FixedDelta))
			if got := len(s.Balls()); got != tt.want {
				t.Errorf("balls = %d, want %d", got, tt.want)
			}
			if consumed := !pu.Active; consumed != (tt.want > 1) {
				t.Errorf("power-up active = %v", pu.Active)
			}
		})
	}
}
