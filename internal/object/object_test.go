package object

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// testArena is an 800x540 playfield under a 60px scoreboard.
var testArena = Arena{Width: 800, Height: 540, ScoreboardHeight: 60}

type collector struct {
	spawned []Object
}

func (c *collector) Spawn(obj Object) {
	c.spawned = append(c.spawned, obj)
}

type soundLog struct {
	played []string
}

func (s *soundLog) PlayEffect(name string) {
	s.played = append(s.played, name)
}

func (s *soundLog) count(name string) int {
	n := 0
	for _, p := range s.played {
		if p == name {
			n++
		}
	}
	return n
}

// testContext returns a one-frame update context with a seeded source.
func testContext(seed int64) UpdateContext {
	return UpdateContext{
		Delta:   time.Second / 60,
		Arena:   testArena,
		Ghosts:  NewGhostManager(),
		Rand:    rand.New(rand.NewSource(seed)),
		Sounds:  &soundLog{},
		Spawner: &collector{},
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestArenaGeometry(t *testing.T) {
	if testArena.Top() != 60 || testArena.Bottom() != 600 || testArena.TotalHeight() != 600 {
		t.Errorf("top/bottom = %v/%v", testArena.Top(), testArena.Bottom())
	}
	cx, cy := testArena.Center()
	if cx != 400 || cy != 330 {
		t.Errorf("center = (%v, %v)", cx, cy)
	}
}

func TestOutcome(t *testing.T) {
	if !OutcomeScoreLeft.IsScore() || !OutcomeScoreRight.IsScore() {
		t.Error("score outcomes must report IsScore")
	}
	if OutcomeBounce.IsScore() || OutcomeNone.IsScore() {
		t.Error("non-score outcome reports IsScore")
	}
}

func TestParticleLifetime(t *testing.T) {
	ctx := testContext(1)
	c := ctx.Spawner.(*collector)
	SpawnBurst(100, 100, 5, 50, 0.5, "spark", ctx.Rand, c)
	if len(c.spawned) != 5 {
		t.Fatalf("spawned %d particles", len(c.spawned))
	}

	p := c.spawned[0]
	removed := false
	for i := 0; i < 60 && !removed; i++ {
		var err error
		if removed, err = p.Update(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if !removed {
		t.Error("particle outlived its lifetime")
	}
	ReleaseObject(p)

	// A nil spawner is ignored.
	SpawnSteam(0, 0, 3, ctx.Rand, nil)
}
