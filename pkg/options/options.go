// Package options persists player-adjustable settings as a TOML file next
// to the game data.
package options

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Filename is the options file name inside the game directory.
const Filename = "options.toml"

// Window modes.
const (
	WindowModeWindowed = iota
	WindowModeFullscreen
)

// Options are the player-adjustable settings.
type Options struct {
	WindowMode  int     `toml:"window_mode"`
	AutoSpeed   float64 `toml:"auto_speed"`
	MusicVolume float64 `toml:"music_volume"`
	SfxVolume   float64 `toml:"sfx_volume"`
}

// Default returns the settings used when no options file exists yet.
func Default() Options {
	return Options{
		WindowMode:  WindowModeWindowed,
		AutoSpeed:   1.0,
		MusicVolume: 0.25,
		SfxVolume:   0.35,
	}
}

// Load reads the options file in dir. A missing file yields the defaults
// and is not an error; an unreadable or invalid file also yields the
// defaults but is logged, so a hand-edited file cannot brick the game.
func Load(dir string, log *slog.Logger) Options {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("options file unreadable, using defaults", "path", path, "error", err)
		}
		return Default()
	}

	opts := Default()
	if err := toml.Unmarshal(data, &opts); err != nil {
		log.Warn("options file invalid, using defaults", "path", path, "error", err)
		return Default()
	}
	return opts.clamped()
}

// Save writes the options file in dir.
func (o Options) Save(dir string) error {
	data, err := toml.Marshal(o.clamped())
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	return nil
}

func (o Options) clamped() Options {
	if o.WindowMode != WindowModeWindowed && o.WindowMode != WindowModeFullscreen {
		o.WindowMode = WindowModeWindowed
	}
	o.AutoSpeed = clampRange(o.AutoSpeed, 0.1, 5)
	o.MusicVolume = clampRange(o.MusicVolume, 0, 1)
	o.SfxVolume = clampRange(o.SfxVolume, 0, 1)
	return o
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
