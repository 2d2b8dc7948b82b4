package item

import (
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultIconSize is the edge length in pixels of a slot icon.
const DefaultIconSize = 32

// IconSet holds slot-sized icons keyed by item.
type IconSet struct {
	size  int
	icons map[*Item]image.Image
}

// LoadIcons decodes and scales the icon of every catalog item that declares one.
// Paths are resolved against baseDir. A broken icon is logged and skipped so one
// bad asset does not prevent the rest from loading.
func LoadIcons(c *Catalog, baseDir string, size int) *IconSet {
	if size <= 0 {
		size = DefaultIconSize
	}
	set := &IconSet{size: size, icons: make(map[*Item]image.Image)}
	for _, it := range c.All() {
		if it.Icon == "" {
			continue
		}
		img, err := loadIcon(filepath.Join(baseDir, it.Icon), size)
		if err != nil {
			slog.Warn("icon not loaded", "item", it.ID, "path", it.Icon, "error", err)
			continue
		}
		set.icons[it] = img
	}
	return set
}

func loadIcon(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding icon: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return src, nil
	}
	slog.Debug("scaling icon", "path", path, "format", format, "from", b.Size(), "to", size)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst, nil
}

// Icon returns the icon for it, or nil when none was loaded.
func (s *IconSet) Icon(it *Item) image.Image {
	if s == nil || it == nil {
		return nil
	}
	return s.icons[it]
}

// Size returns the icon edge length in pixels.
func (s *IconSet) Size() int {
	return s.size
}

// Len returns the number of loaded icons.
func (s *IconSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.icons)
}
