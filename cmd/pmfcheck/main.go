// Command pmfcheck compiles PMF level files and reports what they contain
// and every problem found. It exits non-zero when any file fails to load.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/tomz197/ping/internal/audio"
	"github.com/tomz197/ping/internal/config"
	"github.com/tomz197/ping/internal/level"
	"github.com/tomz197/ping/internal/loop"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	configPath := flag.String("config", config.GetEnv("PING_CONFIG", "ping.yaml"), "settings file")
	verbose := flag.Bool("v", false, "log parser warnings as they happen")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pmfcheck [flags] level.pmf...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := log.NewWithOptions(logOut, log.Options{Prefix: "pmfcheck"})

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("settings: "+err.Error()))
		os.Exit(1)
	}

	failed := 0
	for _, path := range flag.Args() {
		if !check(os.Stdout, path, settings, logger) {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// check loads and compiles one level, printing a report. It returns false
// when the level cannot be played.
func check(w io.Writer, path string, settings config.Settings, logger *log.Logger) bool {
	lvl, err := level.Load(path, level.Options{Logger: logger, ScoreboardHeight: settings.Arena.ScoreboardHeight})
	if err != nil {
		fmt.Fprintf(w, "%s %s\n  %s\n", failStyle.Render("FAIL"), path, err)
		return false
	}

	session, err := loop.NewSession(lvl, loop.SessionOptions{
		Settings: settings,
		Logger:   logger,
		Sounds:   audio.Nop{},
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		fmt.Fprintf(w, "%s %s\n  compile: %s\n", failStyle.Render("FAIL"), path, err)
		return false
	}
	session.Close()

	fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("OK"), path,
		dimStyle.Render(fmt.Sprintf("%q %gx%g", lvl.Name, lvl.Arena.Width, lvl.Arena.Height)))

	summary := lvl.Summary()
	names := make([]string, 0, len(summary))
	for name, n := range summary {
		if n > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if len(names) > 0 {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(dimStyle).
			Headers("OBJECT", "COUNT")
		for _, name := range names {
			t.Row(name, strconv.Itoa(summary[name]))
		}
		fmt.Fprintln(w, t.Render())
	}

	for _, warning := range lvl.Warnings {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("warning:"), warning)
	}
	return true
}
