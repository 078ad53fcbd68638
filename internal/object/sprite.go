package object

import (
	"github.com/charmbracelet/log"
	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Sprite is a purely decorative image.
type Sprite struct {
	Rect      physics.Rect
	ImagePath string

	loader draw.ImageLoader
	logger *log.Logger
	failed bool
}

// NewSprite creates a sprite drawn through loader.
func NewSprite(r physics.Rect, path string, loader draw.ImageLoader, logger *log.Logger) *Sprite {
	if logger == nil {
		logger = log.Default()
	}
	return &Sprite{Rect: r, ImagePath: path, loader: loader, logger: logger}
}

// Update is a no-op.
func (s *Sprite) Update(_ UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the image. A missing or broken image draws nothing.
func (s *Sprite) Draw(ctx DrawContext) error {
	if s.failed || s.loader == nil {
		return nil
	}
	img, err := s.loader.Load(s.ImagePath)
	if err != nil {
		s.failed = true
		s.logger.Warn("sprite image unavailable", "path", s.ImagePath, "err", err)
		return nil
	}
	ctx.Canvas.DrawImage(img, ctx.View.ScaleRect(s.Rect))
	return nil
}
