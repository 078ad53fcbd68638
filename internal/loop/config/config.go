// Package config centralizes the game-loop tuning that is not a user setting.
package config

import "time"

// Frame timing. The simulation always advances by FixedDelta per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	FixedDelta      = time.Second / TargetFPS
)

// Terminal rendering limits; larger terminals get a centered render area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Match flow
const (
	ServePauseSeconds = 1.0 // Freeze after a point before the next serve
	MessageSeconds    = 4.0 // How long transient messages stay on screen
)

// Inactivity, for remote sessions.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Lighting
const (
	MaxDarkness = 0.85 // Opacity of the dark overlay at lighting level 0
)
