package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/ping/internal/audio"
	"github.com/tomz197/ping/internal/config"
	"github.com/tomz197/ping/internal/loop"
	"github.com/tomz197/ping/internal/object"
)

func main() {
	levelPath := flag.String("level", config.GetEnv("PING_LEVEL", ""), "PMF level file (empty plays the classic level)")
	configPath := flag.String("config", config.GetEnv("PING_CONFIG", "ping.yaml"), "settings file")
	logPath := flag.String("log", config.GetEnv("PING_LOG", ""), "log file (logging is off when empty)")
	flag.Parse()

	// The canvas owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "ping",
		Level:           log.DebugLevel,
	})

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}

	var sounds object.Sounds = audio.Nop{}
	if settings.Audio.Enabled {
		if p, err := audio.NewPlayer(logger); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			sounds = p
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Settings:  settings,
		LevelPath: *levelPath,
		Logger:    logger,
		Sounds:    sounds,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
