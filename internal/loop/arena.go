package loop

import (
	"time"

	"github.com/tomz197/ping/internal/loop/config"
	"github.com/tomz197/ping/internal/object"
)

// Arena wraps a session with match rules: it keeps the score, serves after
// every point and decides when the match is over.
type Arena struct {
	Session      *Session
	Scores       [2]int // Indexed by object.PaddleSide
	WinningScore int

	pause  float64 // Seconds left before play resumes after a point
	over   bool
	winner object.PaddleSide
	last   object.Outcome
}

// NewArena starts a match on s.
func NewArena(s *Session, winningScore int) *Arena {
	return &Arena{Session: s, WinningScore: winningScore}
}

// Step advances the match by delta. Play is frozen briefly after each point
// and stops entirely once the match is over.
func (a *Arena) Step(delta time.Duration) error {
	if a.over {
		return nil
	}
	if a.pause > 0 {
		a.pause -= delta.Seconds()
		return nil
	}
	outcome, err := a.Session.Step(delta)
	if err != nil {
		return err
	}
	if outcome.IsScore() {
		a.Resolve(outcome)
	}
	return nil
}

// Resolve awards a point, removes every ball and serves a new one toward the
// player who conceded.
func (a *Arena) Resolve(outcome object.Outcome) {
	var scorer object.PaddleSide
	var toward float64
	switch outcome {
	case object.OutcomeScoreLeft:
		scorer, toward = object.PaddleLeft, 1
	case object.OutcomeScoreRight:
		scorer, toward = object.PaddleRight, -1
	default:
		return
	}
	a.last = outcome
	a.Scores[scorer]++
	if a.WinningScore > 0 && a.Scores[scorer] >= a.WinningScore {
		a.over = true
		a.winner = scorer
	}
	a.Session.Serve(toward)
	a.pause = config.ServePauseSeconds
}

// Paused reports whether play is frozen after a point.
func (a *Arena) Paused() bool {
	return a.pause > 0
}

// LastOutcome returns the most recent scoring outcome.
func (a *Arena) LastOutcome() object.Outcome {
	return a.last
}

// Winner returns the side that won, once the match is over.
func (a *Arena) Winner() (object.PaddleSide, bool) {
	return a.winner, a.over
}

// Reset clears the score and serves a fresh ball.
func (a *Arena) Reset() {
	a.Scores = [2]int{}
	a.over = false
	a.pause = 0
	a.last = object.OutcomeNone
	a.Session.Serve(a.Session.randomSide())
}
