package loop

import (
	"time"

	"github.com/tomz197/ping/internal/input"
	"github.com/tomz197/ping/internal/object"
)

// Update advances the game by one frame of delta with the frame's input.
func (g *Game) Update(in input.Input, delta time.Duration) error {
	if in.Quit {
		g.Running = false
		return nil
	}
	if in.Mute {
		if m, ok := g.opts.Sounds.(Muter); ok {
			m.SetMuted(!m.Muted())
			g.logger.Debug("audio toggled", "muted", m.Muted())
		}
	}
	if g.messageTimer > 0 {
		g.messageTimer -= delta.Seconds()
	}

	switch g.State {
	case GameStateTitle:
		if in.Space || in.Enter {
			g.startMatch()
		}
	case GameStatePlaying:
		return g.updatePlaying(in, delta)
	case GameStatePaused:
		switch {
		case in.Pause || in.Space:
			g.State = GameStatePlaying
		case in.Escape:
			g.State = GameStateTitle
		}
	case GameStateMatchOver:
		switch {
		case in.Space || in.Enter || in.Restart:
			g.startMatch()
		case in.Escape:
			g.State = GameStateTitle
		}
	}
	return nil
}

func (g *Game) startMatch() {
	g.Arena.Reset()
	g.State = GameStatePlaying
}

// updatePlaying handles the playing state.
func (g *Game) updatePlaying(in input.Input, delta time.Duration) error {
	switch {
	case in.Pause:
		g.State = GameStatePaused
		return nil
	case in.Restart:
		g.startMatch()
		return nil
	}

	applyPaddleInput(g.Session, in)
	if err := g.Arena.Step(delta); err != nil {
		return err
	}
	if winner, over := g.Arena.Winner(); over {
		g.logger.Info("match over", "winner", winner, "score", g.Arena.Scores)
		g.State = GameStateMatchOver
	}
	return nil
}

// applyPaddleInput maps keys onto the human paddles. W/S drive the left
// paddle and the arrows (or I/K) the right one; with a single human player
// either set of keys moves that player's paddle.
func applyPaddleInput(s *Session, in input.Input) {
	left := s.Paddle(object.PaddleLeft)
	right := s.Paddle(object.PaddleRight)

	switch {
	case left.AI == nil && right.AI == nil:
		left.MovingUp, left.MovingDown = in.LeftUp, in.LeftDown
		right.MovingUp, right.MovingDown = in.RightUp, in.RightDown
	case left.AI == nil:
		left.MovingUp, left.MovingDown = in.LeftUp || in.RightUp, in.LeftDown || in.RightDown
	case right.AI == nil:
		right.MovingUp, right.MovingDown = in.LeftUp || in.RightUp, in.LeftDown || in.RightDown
	}
}
