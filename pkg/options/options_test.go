package options

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	got := Load(t.TempDir(), testLogger())
	if got != Default() {
		t.Errorf("Load = %+v, want defaults %+v", got, Default())
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()

	want := Options{
		WindowMode:  WindowModeFullscreen,
		AutoSpeed:   2.5,
		MusicVolume: 0.5,
		SfxVolume:   0.1,
	}
	if err := want.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Load(dir, testLogger())
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadInvalidFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte("{not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Load(dir, testLogger())
	if got != Default() {
		t.Errorf("Load = %+v, want defaults", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte("music_volume = 0.8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Load(dir, testLogger())
	if got.MusicVolume != 0.8 {
		t.Errorf("MusicVolume = %v", got.MusicVolume)
	}
	if got.SfxVolume != Default().SfxVolume || got.AutoSpeed != Default().AutoSpeed {
		t.Errorf("missing keys not defaulted: %+v", got)
	}
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	content := "window_mode = 7\nmusic_volume = 3.0\nsfx_volume = -1.0\nauto_speed = 100.0\n"
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Load(dir, testLogger())
	if got.WindowMode != WindowModeWindowed {
		t.Errorf("WindowMode = %d", got.WindowMode)
	}
	if got.MusicVolume != 1 || got.SfxVolume != 0 || got.AutoSpeed != 5 {
		t.Errorf("values not clamped: %+v", got)
	}
}
