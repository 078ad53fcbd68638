package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ping/internal/config"
)

func writeLevel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.pmf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckReportsLevel(t *testing.T) {
	path := writeLevel(t, `{
  "properties": {"width": 800, "height": 600, "name": "Pinball", "bounce_walls": true},
  "objects": [
    {"type": "bumper", "x": 300, "y": 300, "width": 40, "height": 40},
    {"type": "bumper", "x": 500, "y": 300, "width": 40, "height": 40},
    {"type": "trampoline", "x": 1, "y": 1}
  ]
}`)
	var out bytes.Buffer
	if !check(&out, path, config.Default(), log.New(io.Discard)) {
		t.Fatalf("check failed:\n%s", out.String())
	}
	report := out.String()
	for _, want := range []string{"OK", "Pinball", "bumpers", "warning:"} {
		if !strings.Contains(report, want) {
			t.Errorf("report lacks %q:\n%s", want, report)
		}
	}
}

func TestCheckRejectsBadLevel(t *testing.T) {
	path := writeLevel(t, `{"properties": {"width": 800, "height": 600}}`)
	var out bytes.Buffer
	if check(&out, path, config.Default(), log.New(io.Discard)) {
		t.Fatal("level without a scoring mode passed")
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Errorf("report = %q", out.String())
	}
}
