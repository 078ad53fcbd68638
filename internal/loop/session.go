package loop

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ping/internal/config"
	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/level"
	"github.com/tomz197/ping/internal/object"
	"github.com/tomz197/ping/internal/physics"
)

// SessionOptions are the collaborators a session needs.
type SessionOptions struct {
	Settings config.Settings
	Logger   *log.Logger
	Sounds   object.Sounds
	Images   draw.ImageLoader
	Rand     *rand.Rand
}

// Session is one compiled level: the live entity graph plus the per-frame
// dispatch that advances it. It is not safe for concurrent use.
type Session struct {
	level    *level.Level
	arena    object.Arena
	settings config.Settings
	logger   *log.Logger
	sounds   object.Sounds
	rng      *rand.Rand

	paddles   [2]*object.Paddle
	balls     []*object.Ball
	goals     []*object.Goal
	portals   []*object.Portal
	manholes  *object.ManholeField
	bumpers   []*object.Bumper
	obstacles []*object.Obstacle
	spinners  []*object.RouletteSpinner
	pistons   []*object.Piston
	coils     []*object.TeslaCoil
	powerUps  []*object.PowerUpBall
	candles   []*object.Candle
	ghosts    *object.GhostManager
	pickles   []*object.Pickles
	sprites   []*object.Sprite

	effects []object.Object // Particles
	toSpawn []object.Object

	sludge *Sludge // Sewer backdrop, nil for other backgrounds

	delta      time.Duration
	elapsed    float64
	ghostTimer float64
}

// NewSession compiles lvl into live entities.
func NewSession(lvl *level.Level, opts SessionOptions) (*Session, error) {
	if lvl == nil {
		return nil, errors.New("nil level")
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Images == nil {
		opts.Images = draw.NewFileImageLoader()
	}

	s := &Session{
		level:      lvl,
		arena:      lvl.Arena,
		settings:   opts.Settings,
		logger:     opts.Logger,
		sounds:     opts.Sounds,
		rng:        opts.Rand,
		ghosts:     object.NewGhostManager(),
		ghostTimer: opts.Settings.Spawns.GhostInterval,
	}
	if lvl.Background == level.BackgroundSewer {
		s.sludge = NewSludge(lvl.Palette.Get(draw.ColorSludge), s.rng.Int63())
	}
	s.compilePaddles()
	s.compileEntities(opts.Images)
	s.pairPortals()
	if lvl.CanSpawnObstacles && len(s.obstacles) == 0 {
		sp := s.settings.Spawns
		s.obstacles = append(s.obstacles, object.NewRandomObstacle(s.arena, sp.ObstacleWidth, sp.ObstacleHeight, s.rng))
	}

	ctx := s.updateContext(0)
	manholes := make([]*object.Manhole, 0, len(lvl.Manholes))
	for _, m := range lvl.Manholes {
		manholes = append(manholes, object.NewManhole(m.Rect, m.Config, s.arena))
	}
	s.manholes = object.NewManholeField(manholes, ctx)

	for _, p := range lvl.PowerUps {
		s.powerUps = append(s.powerUps, object.NewPowerUpBall(p.CX, p.CY, true, ctx))
	}
	if lvl.CanSpawnPowerups && len(s.powerUps) == 0 {
		cx, cy := s.arena.Center()
		s.powerUps = append(s.powerUps, object.NewPowerUpBall(cx, cy, false, ctx))
	}

	for _, g := range lvl.Ghosts {
		if _, ok := object.NewGhost(g.CX, g.CY, g.Size, s.ghosts, s.rng); !ok {
			s.logger.Warn("too many ghosts, skipping", "x", g.CX, "y", g.CY)
		}
	}

	s.Serve(s.randomSide())
	s.logger.Debug("level compiled", "name", lvl.Name, "entities", lvl.Summary())
	return s, nil
}

func (s *Session) compilePaddles() {
	ps := s.settings.Physics
	for _, spawn := range s.level.Paddles {
		if s.paddles[spawn.Side] != nil {
			s.logger.Warn("duplicate paddle spawn, keeping the first", "side", spawn.Side)
			continue
		}
		s.paddles[spawn.Side] = object.NewPaddle(spawn.Side,
			spawn.X-spawn.W/2, spawn.Y-spawn.H/2, spawn.W, spawn.H, ps.PaddleSpeed, s.arena)
	}
	for _, side := range []object.PaddleSide{object.PaddleLeft, object.PaddleRight} {
		if s.paddles[side] == nil {
			s.paddles[side] = object.NewDefaultPaddle(side, s.arena, ps.PaddleSpeed)
		}
	}
	if s.settings.AI.Left {
		s.paddles[object.PaddleLeft].AI = object.NewPaddleAI(s.settings.AI.MaxError, s.rng)
	}
	if s.settings.AI.Right {
		s.paddles[object.PaddleRight].AI = object.NewPaddleAI(s.settings.AI.MaxError, s.rng)
	}
}

func (s *Session) compileEntities(images draw.ImageLoader) {
	lvl := s.level
	if lvl.UseGoals {
		heights := [2]float64{object.DefaultGoalHeight, object.DefaultGoalHeight}
		for _, g := range lvl.Goals {
			heights[g.Side] = g.Height
		}
		s.goals = []*object.Goal{
			object.NewGoal(object.PaddleLeft, heights[object.PaddleLeft], s.arena),
			object.NewGoal(object.PaddleRight, heights[object.PaddleRight], s.arena),
		}
	}
	for _, p := range lvl.Portals {
		s.portals = append(s.portals, object.NewPortal(p.ID, p.TargetID, p.Rect, p.Exit, s.arena))
	}
	for _, b := range lvl.Bumpers {
		s.bumpers = append(s.bumpers, object.NewBumper(b.Rect))
	}
	for _, o := range lvl.Obstacles {
		s.obstacles = append(s.obstacles, object.NewObstacle(o.Rect))
	}
	for _, sp := range lvl.Spinners {
		s.spinners = append(s.spinners, object.NewRouletteSpinner(sp.CX, sp.CY, sp.Radius, sp.Segments, sp.SpinSpeed))
	}
	for _, p := range lvl.Pistons {
		s.pistons = append(s.pistons, object.NewPiston(p.Rect, p.Config))
	}
	for _, c := range lvl.Coils {
		s.coils = append(s.coils, object.NewTeslaCoil(c.Rect, c.BaseRadius, c.TopRadius))
	}
	for _, c := range lvl.Candles {
		s.candles = append(s.candles, object.NewCandle(c.Rect, c.LightRadius))
	}
	for _, p := range lvl.Pickles {
		s.pickles = append(s.pickles, object.NewPickles(p.Rect, p.Config))
	}
	for _, sp := range lvl.Sprites {
		s.sprites = append(s.sprites, object.NewSprite(sp.Rect, sp.ImagePath, images, s.logger))
	}
}

// pairPortals links every portal to the portal named by its target id.
// Portals without a match stay inert.
func (s *Session) pairPortals() {
	byID := make(map[int]*object.Portal, len(s.portals))
	for _, p := range s.portals {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	for _, p := range s.portals {
		target, ok := byID[p.TargetID]
		if !ok || target == p {
			s.logger.Warn("portal has no pair", "id", p.ID, "target_id", p.TargetID)
			continue
		}
		p.SetPair(target)
	}
}

func (s *Session) randomSide() float64 {
	if s.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Level returns the level the session was compiled from.
func (s *Session) Level() *level.Level { return s.level }

// Arena returns the playfield geometry.
func (s *Session) Arena() object.Arena { return s.arena }

// Paddle returns the paddle defending side.
func (s *Session) Paddle(side object.PaddleSide) *object.Paddle { return s.paddles[side] }

// Balls returns the balls in play.
func (s *Session) Balls() []*object.Ball { return s.balls }

// Ghosts returns the session's ghost manager.
func (s *Session) Ghosts() *object.GhostManager { return s.ghosts }

// Portals returns the compiled portals.
func (s *Session) Portals() []*object.Portal { return s.portals }

// Obstacles returns the current obstacles.
func (s *Session) Obstacles() []*object.Obstacle { return s.obstacles }

// Candles returns the light sources.
func (s *Session) Candles() []*object.Candle { return s.candles }

// Pickles returns the cats.
func (s *Session) Pickles() []*object.Pickles { return s.pickles }

// Elapsed returns the simulated seconds since the level started.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Close waits for background work owned by the session.
func (s *Session) Close() {
	if s.sludge != nil {
		s.sludge.Wait()
	}
}

// AddBall puts an extra ball in play.
func (s *Session) AddBall(b *object.Ball) {
	s.balls = append(s.balls, b)
}

// Serve removes every ball and serves a fresh one from the center toward
// the given side (-1 left, +1 right).
func (s *Session) Serve(toward float64) {
	for _, b := range s.balls {
		for _, sp := range s.spinners {
			sp.Drop(b)
		}
		b.Possessed = false
	}
	ps := s.settings.Physics
	s.balls = s.balls[:0]
	s.balls = append(s.balls, object.NewServeBall(s.arena, ps.BallSize, ps.BallSpeed, ps.BallMaxSpeed, toward, s.rng))
}

// Spawn queues an object created during update. Implements object.Spawner.
func (s *Session) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// solids returns the footprints spawn searches must avoid.
func (s *Session) solids() []physics.Rect {
	out := make([]physics.Rect, 0, len(s.obstacles)+len(s.pistons)+len(s.coils)+len(s.bumpers)+len(s.spinners))
	for _, o := range s.obstacles {
		out = append(out, o.Rect)
	}
	for _, p := range s.pistons {
		out = append(out, p.Rect)
	}
	for _, c := range s.coils {
		out = append(out, c.Rect)
	}
	for _, b := range s.bumpers {
		out = append(out, b.Rect())
	}
	for _, sp := range s.spinners {
		out = append(out, sp.Rect())
	}
	return out
}

func (s *Session) updateContext(delta time.Duration) object.UpdateContext {
	return object.UpdateContext{
		Delta:     delta,
		Arena:     s.arena,
		Balls:     s.balls,
		Candles:   s.candles,
		Pickles:   s.pickles,
		Ghosts:    s.ghosts,
		Obstacles: s.solids(),
		Rand:      s.rng,
		Sounds:    s.sounds,
		Spawner:   s,
	}
}

// Step advances the level by delta. It returns the first scoring outcome
// of the frame, or OutcomeNone.
func (s *Session) Step(delta time.Duration) (object.Outcome, error) {
	s.delta = delta
	s.elapsed += delta.Seconds()
	dt := delta.Seconds()

	for _, p := range s.paddles {
		p.Steer(s.balls, dt, s.arena)
	}
	for _, b := range s.balls {
		b.Move(dt)
	}

	ctx := s.updateContext(delta)
	if err := s.updateEntities(ctx); err != nil {
		return object.OutcomeNone, err
	}

	outcome := s.checkCollisions(ctx)
	if outcome.IsScore() {
		return outcome, nil
	}

	ctx.Balls = s.balls
	if err := s.updateCreatures(ctx); err != nil {
		return object.OutcomeNone, err
	}
	s.spawnGhosts(ctx)
	if err := s.updateEffects(ctx); err != nil {
		return object.OutcomeNone, err
	}
	return object.OutcomeNone, nil
}

// updateEntities runs the timers of the stationary entities in dispatch order.
func (s *Session) updateEntities(ctx object.UpdateContext) error {
	for _, p := range s.portals {
		if _, err := p.Update(ctx); err != nil {
			return err
		}
	}
	if err := s.manholes.Update(ctx); err != nil {
		return err
	}
	objs := make([]object.Object, 0, len(s.bumpers)+len(s.spinners)+len(s.pistons)+len(s.coils)+len(s.powerUps)+len(s.candles))
	for _, b := range s.bumpers {
		objs = append(objs, b)
	}
	for _, sp := range s.spinners {
		objs = append(objs, sp)
	}
	for _, p := range s.pistons {
		objs = append(objs, p)
	}
	for _, c := range s.coils {
		objs = append(objs, c)
	}
	for _, p := range s.powerUps {
		objs = append(objs, p)
	}
	for _, c := range s.candles {
		objs = append(objs, c)
	}
	for _, obj := range objs {
		if _, err := obj.Update(ctx); err != nil {
			return err
		}
	}
	return nil
}

// updateCreatures runs ghosts then Pickles, dropping finished ghosts.
func (s *Session) updateCreatures(ctx object.UpdateContext) error {
	// Copy: finished ghosts remove themselves from the manager.
	ghosts := append([]*object.Ghost(nil), s.ghosts.Ghosts()...)
	for _, g := range ghosts {
		if _, err := g.Update(ctx); err != nil {
			return err
		}
	}
	for _, p := range s.pickles {
		if _, err := p.Update(ctx); err != nil {
			return err
		}
	}
	return nil
}

// spawnGhosts adds a ghost every GhostInterval seconds when the level allows it.
func (s *Session) spawnGhosts(ctx object.UpdateContext) {
	if !s.level.CanSpawnGhosts {
		return
	}
	s.ghostTimer -= ctx.DT()
	if s.ghostTimer > 0 {
		return
	}
	s.ghostTimer = s.settings.Spawns.GhostInterval
	if !s.ghosts.CanSpawn() {
		return
	}
	size := object.DefaultGhostSize
	for i := 0; i < 10; i++ {
		cx := s.arena.Width/4 + s.rng.Float64()*s.arena.Width/2
		cy := s.arena.Top() + size + s.rng.Float64()*math.Max(0, s.arena.Height-2*size)
		if s.inCriticalLight(cx, cy) {
			continue
		}
		if _, ok := object.NewGhost(cx, cy, size, s.ghosts, s.rng); ok {
			s.logger.Debug("ghost spawned", "x", cx, "y", cy, "active", s.ghosts.Active())
		}
		return
	}
}

func (s *Session) inCriticalLight(x, y float64) bool {
	for _, c := range s.candles {
		if c.InCritical(x, y) {
			return true
		}
	}
	return false
}

// updateEffects advances particles and adds the ones spawned this frame.
func (s *Session) updateEffects(ctx object.UpdateContext) error {
	kept := s.effects[:0]
	for _, obj := range s.effects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	s.effects = append(kept, s.toSpawn...)
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
	return nil
}
