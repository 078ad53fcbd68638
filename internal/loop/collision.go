package loop

import (
	"github.com/tomz197/ping/internal/object"
)

// checkCollisions resolves every ball against the walls, the paddles and the
// level entities in fixed priority order: goals, portals, manholes, bumpers,
// obstacles, spinners/pistons/coils, power-ups. The first scoring outcome
// ends the pass.
func (s *Session) checkCollisions(ctx object.UpdateContext) object.Outcome {
	var spawned []*object.Ball
	for _, b := range s.balls {
		if b.Held {
			continue
		}
		if outcome := s.collideBall(b, &spawned); outcome.IsScore() {
			return outcome
		}
	}
	s.balls = append(s.balls, spawned...)
	return object.OutcomeNone
}

// collideBall runs one ball through the dispatch order.
func (s *Session) collideBall(b *object.Ball, spawned *[]*object.Ball) object.Outcome {
	lvl := s.level

	// Goal levels keep the ball inside the side walls too.
	if b.HandleWallCollision(s.arena, lvl.BounceWalls || lvl.UseGoals) {
		playEffect(s.sounds, object.SoundBounce)
	}
	for _, p := range s.paddles {
		if b.HandlePaddleCollision(p) {
			playEffect(s.sounds, object.SoundPaddle)
		}
	}

	for _, g := range s.goals {
		if outcome := g.HandleCollision(b, s.sounds); outcome.IsScore() {
			return outcome
		}
	}
	for _, p := range s.portals {
		if p.HandleCollision(b, s.sounds) {
			break
		}
	}
	for _, m := range s.manholes.Manholes {
		m.HandleCollision(b, s.sounds)
	}
	for _, bp := range s.bumpers {
		if bp.HandleCollision(b, s.sounds) {
			break
		}
	}
	for i, o := range s.obstacles {
		if !o.HandleCollision(b, s.sounds) {
			continue
		}
		if lvl.CanSpawnObstacles {
			s.obstacles[i] = object.NewRandomObstacle(s.arena, o.Rect.W, o.Rect.H, s.rng)
		}
		break
	}
	for _, sp := range s.spinners {
		if sp.HandleCollision(b, s.sounds) {
			// Captured balls skip the rest of the pass.
			return object.OutcomeNone
		}
	}
	for _, p := range s.pistons {
		p.HandleCollision(b, s.sounds)
	}
	for _, c := range s.coils {
		c.HandleCollision(b, s.sounds)
	}
	// At the ball cap power-ups stay put until a ball leaves play.
	for _, pu := range s.powerUps {
		if len(s.balls)+len(*spawned) >= s.settings.Spawns.MaxBalls {
			break
		}
		if dup := pu.HandleCollision(b, s.sounds); dup != nil {
			*spawned = append(*spawned, dup)
		}
	}

	outcome := b.HandleScoring(s.arena, lvl.BounceWalls, lvl.UseGoals)
	if outcome.IsScore() {
		playEffect(s.sounds, object.SoundScore)
	}
	return outcome
}

// playEffect is nil-safe so sessions can run without audio.
func playEffect(sounds object.Sounds, name string) {
	if sounds != nil {
		sounds.PlayEffect(name)
	}
}
