package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Errorf("got %+v, want defaults", s)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ping.yaml")
	doc := "physics:\n  ball_speed: 300\nai:\n  left: true\n  right: false\nmatch:\n  winning_score: 3\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Physics.BallSpeed != 300 || s.Physics.BallMaxSpeed != Default().Physics.BallMaxSpeed {
		t.Errorf("physics = %+v", s.Physics)
	}
	if !s.AI.Left || s.AI.Right || s.Match.WinningScore != 3 {
		t.Errorf("ai/match = %+v %+v", s.AI, s.Match)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "physics: [",
		"negative size": "physics:\n  ball_size: -1\n",
		"max below":     "physics:\n  ball_speed: 500\n  ball_max_speed: 100\n",
		"no balls":      "spawns:\n  max_balls: 0\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ping.yaml")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PING_TEST_VALUE", "set")
	if got := GetEnv("PING_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("PING_TEST_UNSET_VALUE", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q", got)
	}
}
