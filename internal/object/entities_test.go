package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/ping/internal/physics"
)

func TestObstacleBounce(t *testing.T) {
	sounds := &soundLog{}
	b := NewBall(100, 100, 20, 300, 1000, 0)
	o := NewObstacle(physics.NewRect(110, 90, 20, 60))

	if !o.HandleCollision(b, sounds) {
		t.Fatal("no collision")
	}
	vx, vy := b.Velocity()
	if vx != -300 || vy != 0 {
		t.Errorf("velocity = (%v, %v), want (-300, 0)", vx, vy)
	}
	if b.Rect().Right() != o.Rect.Left() {
		t.Errorf("ball right = %v, want flush with obstacle left %v", b.Rect().Right(), o.Rect.Left())
	}
	if sounds.count(SoundBounce) != 1 {
		t.Errorf("sounds = %v", sounds.played)
	}
	if o.HandleCollision(b, sounds) {
		t.Error("resolved ball collided again")
	}
}

func TestRandomObstacleInMiddleThird(t *testing.T) {
	ctx := testContext(7)
	for i := 0; i < 50; i++ {
		o := NewRandomObstacle(testArena, DefaultObstacleWidth, DefaultObstacleHeight, ctx.Rand)
		if o.Rect.X < testArena.Width/3 || o.Rect.Right() > 2*testArena.Width/3 {
			t.Fatalf("obstacle x range [%v, %v]", o.Rect.X, o.Rect.Right())
		}
		if o.Rect.Y < testArena.Top() || o.Rect.Bottom() > testArena.Bottom() {
			t.Fatalf("obstacle y range [%v, %v]", o.Rect.Y, o.Rect.Bottom())
		}
	}
}

func TestGoal(t *testing.T) {
	g := NewGoal(PaddleLeft, 200, testArena)
	if g.Rect.X != GoalInset || g.Rect.Y != 230 || g.Rect.H != 200 {
		t.Fatalf("goal rect = %+v", g.Rect)
	}

	// Entering through the open (interior) side scores for the opponent.
	b := NewBall(25, 320, 20, 400, 1000, math.Pi)
	if got := g.HandleCollision(b, nil); got != OutcomeScoreRight {
		t.Errorf("open side outcome = %v", got)
	}

	// Hitting the frame from above deflects.
	b = NewBall(15, 215, 20, 400, 1000, math.Pi/2)
	if got := g.HandleCollision(b, nil); got != OutcomeBounce {
		t.Fatalf("frame outcome = %v", got)
	}
	if b.DY >= 0 || b.Rect().Bottom() != g.Rect.Y {
		t.Errorf("deflected ball = %+v", b)
	}

	right := NewGoal(PaddleRight, 0, testArena)
	if right.Rect.H != DefaultGoalHeight || right.OpenSide() != physics.SideLeft {
		t.Errorf("right goal = %+v open %v", right.Rect, right.OpenSide())
	}
}

func TestPortalRoundTrip(t *testing.T) {
	a := NewPortal(1, 2, physics.NewRect(100, 200, 20, 80), physics.SideNone, testArena)
	b := NewPortal(2, 1, physics.NewRect(600, 300, 20, 80), physics.SideNone, testArena)
	if a.Exit != physics.SideRight || b.Exit != physics.SideLeft {
		t.Fatalf("derived exits = %v %v", a.Exit, b.Exit)
	}
	a.SetPair(b)
	b.SetPair(a)

	ball := NewBall(0, 0, 20, 400, 1000, 0)
	ball.SetCenter(110, 220) // A quarter of the way down portal A
	dx, dy := ball.DX, ball.DY
	if !a.HandleCollision(ball, nil) {
		t.Fatal("no teleport")
	}
	cx, cy := ball.Center()
	if !approx(cx, 589, 1e-9) || !approx(cy, 320, 1e-9) {
		t.Errorf("exit center = (%v, %v), want (589, 320)", cx, cy)
	}
	if ball.DX != dx || ball.DY != dy || ball.Speed != 400 {
		t.Error("teleport changed velocity")
	}

	// Both ends cool down.
	ball.SetCenter(610, 340)
	if b.HandleCollision(ball, nil) {
		t.Error("destination fired during cooldown")
	}
	ctx := testContext(1)
	for i := 0; i < PortalCooldownTicks; i++ {
		a.Update(ctx)
		b.Update(ctx)
	}
	if a.CoolingDown() || b.CoolingDown() {
		t.Fatal("cooldown did not expire")
	}
	if !b.HandleCollision(ball, nil) {
		t.Error("portal inert after cooldown")
	}
}

func TestUnpairedPortalIsInert(t *testing.T) {
	p := NewPortal(1, 9, physics.NewRect(100, 200, 20, 80), physics.SideRight, testArena)
	ball := NewBall(0, 0, 20, 400, 1000, 0)
	ball.SetCenter(110, 240)
	if p.HandleCollision(ball, nil) {
		t.Error("unpaired portal teleported")
	}
}

func TestManholeSpoutLimit(t *testing.T) {
	ctx := testContext(2)
	cfg := ManholeConfig{MinInterval: 1, MaxInterval: 1, SpoutDuration: 5}
	var holes []*Manhole
	for i := 0; i < 3; i++ {
		holes = append(holes, NewManhole(physics.NewRect(200+float64(i)*100, 580, 40, 20), cfg, testArena))
	}
	field := NewManholeField(holes, ctx)

	ctx.Delta = 1100 * time.Millisecond
	if err := field.Update(ctx); err != nil {
		t.Fatal(err)
	}
	if got := field.Spouting(); got != MaxConcurrentSpouts {
		t.Fatalf("spouting = %d, want %d", got, MaxConcurrentSpouts)
	}
	// The blocked manhole rolled a fresh dormant interval.
	if holes[2].State() != ManholeDormant || holes[2].Timer() <= 0 {
		t.Errorf("blocked manhole state %v timer %v", holes[2].State(), holes[2].Timer())
	}
}

func TestManholeLaunchesOncePerSpout(t *testing.T) {
	ctx := testContext(3)
	cfg := ManholeConfig{MinInterval: 0.01, MaxInterval: 0.01, SpoutDuration: 2}
	m := NewManhole(physics.NewRect(390, 580, 40, 20), cfg, testArena)
	if !m.IsBottom {
		t.Fatal("bottom manhole not detected")
	}
	field := NewManholeField([]*Manhole{m}, ctx)
	field.Update(ctx)
	if m.State() != ManholeSpouting {
		t.Fatalf("state = %v", m.State())
	}

	sounds := &soundLog{}
	b := NewBall(400, 570, 20, 400, 1000, 0.3)
	if !m.HandleCollision(b, sounds) {
		t.Fatal("spout missed the ball")
	}
	if b.DY >= 0 || !approx(b.Speed, 600, 1e-9) {
		t.Errorf("launched ball dy %v speed %v", b.DY, b.Speed)
	}
	if m.HandleCollision(b, sounds) {
		t.Error("ball launched twice in one spout")
	}
	if sounds.count(SoundSpout) != 1 {
		t.Errorf("sounds = %v", sounds.played)
	}
}

func TestBumperKick(t *testing.T) {
	run := func() *Ball {
		bp := NewBumper(physics.NewRect(380, 310, 40, 40))
		b := NewBall(0, 0, 20, 400, 1000, 0)
		b.SetCenter(375, 335)
		b.SetDirection(1, 0.2)
		if !bp.HandleCollision(b, nil) {
			t.Fatal("bumper missed")
		}
		return b
	}
	first, second := run(), run()
	if first.DX != second.DX || first.DY != second.DY || first.X != second.X {
		t.Error("bumper response is not deterministic")
	}
	if !approx(first.Speed, 600, 1e-9) {
		t.Errorf("speed = %v, want 600", first.Speed)
	}

	// The exit direction is the outward normal rotated by one degree.
	bx, by := first.Center()
	nx, ny := physics.Normalize(bx-400, by-330)
	angle := physics.Degrees(math.Acos(physics.Clamp(physics.Dot(first.DX, first.DY, nx, ny), -1, 1)))
	if !approx(angle, 0, 1e-4) {
		t.Errorf("ball not placed along exit direction: %v degrees", angle)
	}
	if d := physics.Distance(bx, by, 400, 330); d < 20*BumperPulseScale+10 {
		t.Errorf("ball left inside bumper reach: %v", d)
	}
}

func TestNudgeDirection(t *testing.T) {
	nx, ny := -1.0, 0.0
	for _, dir := range [][2]float64{{1, 0.3}, {1, -0.3}} {
		x, y := NudgeDirection(dir[0], dir[1], nx, ny)
		angle := physics.Degrees(math.Acos(physics.Dot(x, y, nx, ny)))
		if !approx(angle, BumperNudgeDegrees, 1e-9) {
			t.Errorf("nudge angle = %v", angle)
		}
	}
	ax, ay := NudgeDirection(1, 0.3, nx, ny)
	bx, by := NudgeDirection(1, -0.3, nx, ny)
	if math.Signbit(ay) == math.Signbit(by) || ax != bx {
		t.Error("nudge does not follow the incoming side")
	}
}

func TestRouletteHoldMapping(t *testing.T) {
	rs := NewRouletteSpinner(400, 330, 36, DefaultRouletteSegments, DefaultRouletteSpinSpeed)
	if rs.HoldDuration(0) != 0 || rs.HoldDuration(len(rs.Segments)-1) != RouletteMaxHold {
		t.Errorf("hold range = [%v, %v]", rs.HoldDuration(0), rs.HoldDuration(len(rs.Segments)-1))
	}
	for i := 1; i < len(rs.Segments); i++ {
		if rs.HoldDuration(i) <= rs.HoldDuration(i-1) {
			t.Fatalf("hold not increasing at %d", i)
		}
	}
	rs.SetRotation(90)
	if got := rs.SegmentAt(90); got != 0 {
		t.Errorf("segment under rotation = %d", got)
	}
	if got := rs.SegmentAt(89.9); got != len(rs.Segments)-1 {
		t.Errorf("segment just before rotation = %d", got)
	}
}

func TestRouletteCaptureAndRelease(t *testing.T) {
	ctx := testContext(4)
	rs := NewRouletteSpinner(400, 330, 36, DefaultRouletteSegments, DefaultRouletteSpinSpeed)
	rs.SetRotation(0)

	b := NewBall(0, 0, 20, 400, 1000, math.Pi)
	b.SetCenter(440, 330) // Impact at 0 degrees: pocket 0, no hold
	if !rs.HandleCollision(b, nil) {
		t.Fatal("no capture")
	}
	if !b.Held || rs.State() != RouletteCapturing || rs.Segment() != 0 {
		t.Fatalf("held %v state %v segment %d", b.Held, rs.State(), rs.Segment())
	}
	b.Move(1)
	if cx, cy := b.Center(); cx != 400 || cy != 330 {
		t.Errorf("held ball moved to (%v, %v)", cx, cy)
	}

	rs.Update(ctx)
	if b.Held || rs.State() != RouletteIdle {
		t.Fatal("ball not released")
	}
	if b.Speed != RouletteReleaseSpeed {
		t.Errorf("release speed = %v", b.Speed)
	}
	cx, cy := b.Center()
	if d := physics.Distance(cx, cy, 400, 330); d < 36+b.Radius() {
		t.Errorf("released ball still on the wheel: %v", d)
	}
	// Immediate recapture is blocked.
	b.SetCenter(420, 330)
	if rs.HandleCollision(b, nil) {
		t.Error("released ball recaptured at once")
	}
}

func TestPowerUpSpawnRules(t *testing.T) {
	obstacles := []physics.Rect{physics.NewRect(380, 300, 40, 60)}
	tests := []struct {
		name string
		r    physics.Rect
		want bool
	}{
		{"left paddle band", physics.NewRect(50, 200, 30, 30), false},
		{"right paddle band", physics.NewRect(690, 200, 30, 30), false},
		{"near obstacle", physics.NewRect(425, 310, 30, 30), false},
		{"in scoreboard", physics.NewRect(300, 40, 30, 30), false},
		{"clear", physics.NewRect(250, 200, 30, 30), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidSpawn(tt.r, testArena, obstacles); got != tt.want {
				t.Errorf("ValidSpawn = %v, want %v", got, tt.want)
			}
		})
	}

	ctx := testContext(5)
	ctx.Obstacles = obstacles
	for i := 0; i < 20; i++ {
		cx, cy, found := FindSpawnPosition(PowerUpRadius, ctx)
		if !found {
			continue
		}
		r := physics.RectFromCenter(cx, cy, 2*PowerUpRadius, 2*PowerUpRadius)
		if !ValidSpawn(r, testArena, obstacles) {
			t.Fatalf("found invalid spawn %+v", r)
		}
	}
}

func TestPowerUpDuplicates(t *testing.T) {
	ctx := testContext(6)
	p := NewPowerUpBall(400, 330, true, ctx)
	b := NewBall(0, 0, 20, 400, 1000, 0.5)
	b.SetCenter(395, 330)

	dup := p.HandleCollision(b, nil)
	if dup == nil {
		t.Fatal("no duplicate")
	}
	if dup.X != b.X+DuplicateOffset || dup.Y != b.Y+DuplicateOffset || dup.DX != b.DX || dup.Speed != b.Speed {
		t.Errorf("duplicate = %+v", dup)
	}
	if p.Active || p.HandleCollision(b, nil) != nil {
		t.Error("power-up still active after use")
	}

	// Reappears after its dormant delay.
	for i := 0; i <= PowerUpMaxDelayFrames && !p.Active; i++ {
		p.Update(ctx)
	}
	if !p.Active {
		t.Error("power-up never reappeared")
	}
}

func TestPistonCycle(t *testing.T) {
	ctx := testContext(8)
	p := NewPiston(physics.NewRect(390, 500, 20, 100), PistonConfig{Interval: 0.1, UpDuration: 0.1, SteamDuration: 0.1})
	b := NewBall(380, 540, 20, 400, 1000, 0)
	if p.HandleCollision(b, nil) {
		t.Error("retracted piston blocked the ball")
	}
	ctx.Delta = 150 * time.Millisecond
	p.Update(ctx)
	if p.State() != PistonUp || !p.Extended() {
		t.Fatalf("state = %v", p.State())
	}
	if !p.HandleCollision(b, nil) || b.DX >= 0 {
		t.Error("extended piston did not bounce the ball")
	}
	p.Update(ctx)
	p.Update(ctx)
	if p.State() != PistonDown {
		t.Errorf("state after full cycle = %v", p.State())
	}
}

func TestTeslaCoilBaseSphere(t *testing.T) {
	c := NewTeslaCoil(physics.NewRect(390, 480, 20, 120), 14, 8)
	base := c.BaseSphere()
	if base.Bottom() != 600 || base.W != 28 {
		t.Errorf("base = %+v", base)
	}
	b := NewBall(375, 580, 20, 400, 1000, 0)
	if !c.HandleCollision(b, nil) {
		t.Error("ball passed through the base")
	}
	b = NewBall(392, 470, 20, 400, 1000, 0)
	if c.HandleCollision(b, nil) {
		t.Error("tower top should not collide")
	}
}
