package graphics

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"

	"github.com/yukidoke/tsugi/pkg/fileutil"
)

// placeholderColors gives each missing texture a distinct solid color so a
// broken asset reference is visible on screen instead of crashing.
var placeholderColors = []color.RGBA{
	{0x30, 0x30, 0x30, 0xff},
	{0x60, 0x20, 0x60, 0xff},
	{0x20, 0x50, 0x60, 0xff},
	{0x60, 0x50, 0x20, 0xff},
}

// textureCache loads images through a filesystem and caches them by path.
// Missing or undecodable files yield a solid placeholder of the requested
// size, logged once per path.
type textureCache struct {
	fsys     fileutil.FileSystem
	log      *slog.Logger
	loaded   map[string]*ebiten.Image
	failures int
}

func newTextureCache(fsys fileutil.FileSystem, log *slog.Logger) *textureCache {
	return &textureCache{
		fsys:   fsys,
		log:    log,
		loaded: map[string]*ebiten.Image{},
	}
}

func (tc *textureCache) get(path string, w, h int) *ebiten.Image {
	if img, ok := tc.loaded[path]; ok {
		return img
	}
	img := tc.load(path, w, h)
	tc.loaded[path] = img
	return img
}

func (tc *textureCache) load(path string, w, h int) *ebiten.Image {
	f, err := tc.fsys.Open(path)
	if err != nil {
		return tc.placeholder(path, w, h, err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return tc.placeholder(path, w, h, err)
	}
	return ebiten.NewImageFromImage(decoded)
}

func (tc *textureCache) placeholder(path string, w, h int, cause error) *ebiten.Image {
	tc.log.Warn("texture unavailable, using placeholder", "path", path, "error", cause)
	fill := placeholderColors[tc.failures%len(placeholderColors)]
	tc.failures++
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	img.Fill(fill)
	return img
}
