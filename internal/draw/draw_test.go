package draw

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomz197/ping/internal/physics"
)

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(200, 100, 800, 600)
	if v.Scale != 100.0/600 {
		t.Fatalf("scale = %v, want height-bound %v", v.Scale, 100.0/600)
	}
	r := physics.NewRect(120, 75, 40, 30)
	back := v.UnscaleRect(v.ScaleRect(r))
	for _, pair := range [][2]float64{{r.X, back.X}, {r.Y, back.Y}, {r.W, back.W}, {r.H, back.H}} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Fatalf("round trip %+v -> %+v", r, back)
		}
	}
	// Letterboxed horizontally.
	if math.Abs(v.OffsetY) > 1e-9 || v.OffsetX <= 0 {
		t.Errorf("offsets = (%v, %v)", v.OffsetX, v.OffsetY)
	}
}

func TestViewportDegenerate(t *testing.T) {
	v := NewViewport(0, 10, 800, 600)
	if v.Scale != 1 || v.OffsetX != 0 {
		t.Errorf("degenerate viewport = %+v", v)
	}
}

func TestCanvasBlend(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(physics.NewRect(0, 0, 4, 4), RGB(200, 0, 0))
	c.Set(1, 1, RGB(0, 0, 200).Alpha(0.5))

	col, ok := c.At(1, 1)
	if !ok {
		t.Fatal("pixel not set")
	}
	r, _, b := col.RGB255()
	if r < 90 || r > 110 || b < 90 || b > 110 {
		t.Errorf("blended = %d,%d", r, b)
	}
	if c.IsSet(0, 3) != true || c.IsSet(9, 9) {
		t.Error("IsSet bounds")
	}
}

func TestCanvasRenderSkipsEmptyCells(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(1, 0, RGB(255, 255, 255))
	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if strings.Count(out, string(BlockUpperHalf)) != 1 {
		t.Errorf("render = %q", out)
	}
	if !strings.Contains(out, "\033[1;2H") {
		t.Errorf("cursor not moved to the drawn cell: %q", out)
	}

	c.SetOffset(2, 3)
	buf.Reset()
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[4;4H") {
		t.Errorf("offset not applied: %q", buf.String())
	}
}

func TestPaletteMerge(t *testing.T) {
	base := DefaultPalette()
	merged := base.Merge(Palette{ColorBall: RGB(1, 2, 3)})
	if r, g, b := merged.Get(ColorBall).RGB255(); r != 1 || g != 2 || b != 3 {
		t.Errorf("override lost: %d,%d,%d", r, g, b)
	}
	if r, _, _ := base.Get(ColorBall).RGB255(); r != 255 {
		t.Error("Merge modified the base palette")
	}
	if r, g, b := merged.Get("no-such-color").RGB255(); r != 255 || g != 255 || b != 255 {
		t.Error("unknown color should be white")
	}
}

func TestHex(t *testing.T) {
	c, err := Hex("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := c.RGB255(); r != 255 || g != 128 || b != 0 {
		t.Errorf("Hex = %d,%d,%d", r, g, b)
	}
	if _, err := Hex("orange"); err == nil {
		t.Error("bad hex accepted")
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, oc, or := ClampTermSize(300, 50, 240, 80)
	if w != 240 || h != 50 || oc != 30 || or != 0 {
		t.Errorf("ClampTermSize = %d %d %d %d", w, h, oc, or)
	}
}

func TestFileImageLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.png")
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := NewFileImageLoader()
	img, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	// Cached: removing the file does not matter any more.
	os.Remove(path)
	if _, err := l.Load(path); err != nil {
		t.Errorf("cached load failed: %v", err)
	}

	if _, err := l.Load(filepath.Join(dir, "missing.png")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing image err = %v", err)
	}
}

func TestDrawImageSkipsTransparent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{G: 255, A: 255})
	c := NewCanvas(2, 1)
	c.DrawImage(src, physics.NewRect(0, 0, 2, 1))
	if !c.IsSet(0, 0) || c.IsSet(1, 0) {
		t.Errorf("set = %v %v, want only the opaque pixel", c.IsSet(0, 0), c.IsSet(1, 0))
	}
}
