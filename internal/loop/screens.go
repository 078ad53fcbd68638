package loop

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/loop/config"
	"github.com/tomz197/ping/internal/object"
)

// styles holds the text styles for the overlay screens. They are bound to a
// renderer so every SSH session gets its own color handling.
type styles struct {
	title   lipgloss.Style
	score   lipgloss.Style
	text    lipgloss.Style
	hint    lipgloss.Style
	message lipgloss.Style
	box     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	// The canvas already speaks truecolor; keep the text consistent with it.
	r.SetColorProfile(termenv.TrueColor)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5f5f5")),
		score:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		text:    r.NewStyle().Foreground(lipgloss.Color("#d0d0d0")),
		hint:    r.NewStyle().Faint(true),
		message: r.NewStyle().Foreground(lipgloss.Color("#ffd75f")).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f87ff")).
			Padding(0, 2),
	}
}

// screenUI draws text overlays on top of the rendered canvas.
type screenUI struct {
	cw     *draw.ChunkWriter
	styles styles
	width  int // Render area in terminal cells
	height int
}

// centered writes a (possibly multi-line) block centered on column cx.
func (ui screenUI) centered(cx, row int, block string) {
	ui.cw.WriteLines(cx-lipgloss.Width(block)/2, row, block)
}

// drawUI draws the overlay for the current game state.
func (g *Game) drawUI(ui screenUI, view draw.Viewport, inactive bool, idle time.Duration) {
	cx, cy := ui.width/2, ui.height/2

	if inactive {
		g.drawInactivityScreen(ui, cx, cy, idle)
		return
	}

	g.drawScoreboard(ui, view)
	switch g.State {
	case GameStateTitle:
		g.drawTitleScreen(ui, cx, cy)
	case GameStatePaused:
		ui.centered(cx, cy-1, ui.styles.box.Render(ui.styles.title.Render("PAUSED")+"\n"+
			ui.styles.hint.Render("P resume  ESC title")))
	case GameStateMatchOver:
		g.drawMatchOverScreen(ui, cx, cy)
	}

	if msg, ok := g.Message(); ok {
		ui.centered(cx, ui.height-1, ui.styles.message.Render(truncate(msg, ui.width-2)))
	}
}

// drawScoreboard prints both scores inside the scoreboard band.
func (g *Game) drawScoreboard(ui screenUI, view draw.Viewport) {
	arena := g.Session.Arena()
	_, row := view.CellOf(arena.Width/2, arena.ScoreboardHeight/2)
	leftCol, _ := view.CellOf(arena.Width/4, 0)
	rightCol, _ := view.CellOf(arena.Width*3/4, 0)

	// Fixed width so a shrinking score leaves no residue.
	left := ui.styles.score.Render(fmt.Sprintf("%3d", g.Arena.Scores[object.PaddleLeft]))
	right := ui.styles.score.Render(fmt.Sprintf("%-3d", g.Arena.Scores[object.PaddleRight]))
	ui.cw.WriteAt(leftCol-1, row, left)
	ui.cw.WriteAt(rightCol-1, row, right)

	if name := g.Session.Level().Name; name != "" {
		midCol, _ := view.CellOf(arena.Width/2, 0)
		ui.centered(midCol, row, ui.styles.hint.Render(truncate(name, ui.width/3)))
	}
}

func (g *Game) drawTitleScreen(ui screenUI, cx, cy int) {
	title := []string{
		` ___ ___ _  _  ___ `,
		`| _ \_ _| \| |/ __|`,
		`|  _/| || .' | (_ |`,
		`|_| |___|_|\_|\___|`,
	}
	ui.centered(cx, cy-7, ui.styles.title.Render(strings.Join(title, "\n")))

	controls := []string{
		"W / S  . . . . Left paddle",
		"Up / Down  . . Right paddle",
		"P pause   M mute   R restart",
		"Q  . . . . . . . . . . Quit",
	}
	ui.centered(cx, cy-1, ui.styles.text.Render(strings.Join(controls, "\n")))

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		ui.centered(cx, cy+5, ui.styles.title.Render(">>  Press SPACE to Start  <<"))
	} else {
		ui.centered(cx, cy+5, strings.Repeat(" ", 28))
	}
}

func (g *Game) drawMatchOverScreen(ui screenUI, cx, cy int) {
	winner, _ := g.Arena.Winner()
	body := fmt.Sprintf("%s\n%s\n\n%s",
		ui.styles.title.Render(strings.ToUpper(winner.String())+" WINS"),
		ui.styles.score.Render(fmt.Sprintf("%d - %d", g.Arena.Scores[object.PaddleLeft], g.Arena.Scores[object.PaddleRight])),
		ui.styles.hint.Render("SPACE play again  ESC title"),
	)
	ui.centered(cx, cy-3, ui.styles.box.Render(body))
}

func (g *Game) drawInactivityScreen(ui screenUI, cx, cy int, idle time.Duration) {
	left := int(config.InactivityDisconnectUser - idle.Seconds())
	body := fmt.Sprintf("%s\n\n%s\n%s",
		ui.styles.title.Render("INACTIVITY WARNING"),
		ui.styles.text.Render(fmt.Sprintf("You will be disconnected in %d seconds.", left)),
		ui.styles.hint.Render("Press any key to continue"),
	)
	ui.centered(cx, cy-3, ui.styles.box.Render(body))
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
