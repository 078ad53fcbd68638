package draw

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

// ImageLoader loads raster images for sprites.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// FileImageLoader decodes PNG files from disk and caches the result, including
// failures, so a missing asset is only reported once.
type FileImageLoader struct {
	mu    sync.Mutex
	cache map[string]cachedImage
}

type cachedImage struct {
	img image.Image
	err error
}

// NewFileImageLoader creates an empty loader.
func NewFileImageLoader() *FileImageLoader {
	return &FileImageLoader{cache: make(map[string]cachedImage)}
}

// Load returns the decoded image at path.
func (l *FileImageLoader) Load(path string) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.cache[path]; ok {
		return c.img, c.err
	}
	img, err := decodePNG(path)
	l.cache[path] = cachedImage{img: img, err: err}
	return img, err
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
