// Package loop runs a Ping level: it compiles the level into a live session,
// advances it on a fixed timestep and renders it to a terminal.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/input"
	"github.com/tomz197/ping/internal/loop/config"
)

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It blocks until the player quits, the input closes or a remote player
// stays idle for too long.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	stream := input.StartStream(r)

	draw.EnterAltScreen(w)
	draw.HideCursor(w)
	defer func() {
		draw.ShowCursor(w)
		draw.ExitAltScreen(w)
	}()
	draw.ClearScreen(w)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	st := newStyles(w)

	lastInput := time.Now()
	prevState := g.State
	next := time.Now()

	for g.Running {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		inactive := false
		idle := time.Duration(0)
		if len(in.Pressed) > 0 {
			lastInput = frameStart
		} else if opts.Remote {
			idle = frameStart.Sub(lastInput)
			if idle.Seconds() > config.InactivityDisconnectUser {
				g.logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
				break
			}
			inactive = idle.Seconds() > config.InactivityWarnUser
		}

		// ===== UPDATE PHASE =====
		// The simulation always advances by the fixed step, whatever the
		// wall-clock time between frames.
		if err := g.Update(in, config.FixedDelta); err != nil {
			return err
		}
		if g.State != prevState {
			input.ResetKeyInput(stream)
		}

		// Handle screen resize
		if termWidth, termHeight, err := termSizeFunc(); err == nil {
			rw, rh, oc, or := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
			if canvas.Resize(rw, rh) || oc != offsetCol || or != offsetRow {
				offsetCol, offsetRow = oc, or
				canvas.SetOffset(oc, or)
				chunkWriter.SetOffset(oc, or)
				chunkWriter.WriteString("\033[H\033[2J")
			}
		}

		// ===== DRAW PHASE =====
		if g.State != prevState {
			// Full clear so text from the previous screen does not persist.
			chunkWriter.WriteString("\033[H\033[2J")
			prevState = g.State
		}
		if err := drawFrame(g, canvas, chunkWriter, st, inactive, idle); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		next = next.Add(config.TargetFrameTime)
		if wait := time.Until(next); wait > 0 {
			time.Sleep(wait)
		} else {
			// Running behind: drop the backlog instead of spiraling.
			next = time.Now()
		}
	}

	draw.ClearScreen(w)
	return nil
}

// drawFrame renders the session and the text overlay, then flushes.
func drawFrame(g *Game, canvas *draw.Canvas, cw *draw.ChunkWriter, st styles, inactive bool, idle time.Duration) error {
	arena := g.Session.Arena()
	view := draw.NewViewport(float64(canvas.Width()), float64(canvas.Height()), arena.Width, arena.TotalHeight())

	canvas.Clear()
	if err := g.Session.Draw(canvas, view); err != nil {
		return err
	}
	canvas.Render(cw)

	g.drawUI(screenUI{cw: cw, styles: st, width: canvas.Width(), height: canvas.TerminalHeight()}, view, inactive, idle)
	return cw.Flush()
}
