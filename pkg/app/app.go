// Package app wires the collaborators of a game run. It parses the
// command line, picks a filesystem (a game directory on disk or the
// embedded game), loads the asset index and the entry script, and then
// runs either the desktop window or the headless loop.
package app

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/yukidoke/tsugi/pkg/assets"
	"github.com/yukidoke/tsugi/pkg/bridge"
	"github.com/yukidoke/tsugi/pkg/cli"
	"github.com/yukidoke/tsugi/pkg/engine"
	"github.com/yukidoke/tsugi/pkg/fileutil"
	"github.com/yukidoke/tsugi/pkg/graphics"
	"github.com/yukidoke/tsugi/pkg/logger"
	"github.com/yukidoke/tsugi/pkg/options"
	"github.com/yukidoke/tsugi/pkg/script"
	"github.com/yukidoke/tsugi/pkg/sound"
	"github.com/yukidoke/tsugi/pkg/ui"
	"github.com/yukidoke/tsugi/pkg/window"
)

const (
	// DefaultEntryScript is the script started when none is named.
	DefaultEntryScript = "main"

	// BootScriptPath is the optional Starlark script run before the
	// first engine tick.
	BootScriptPath = "scripts/boot.star"

	// tickRate is the headless simulation rate, matching the display
	// refresh the desktop loop runs at.
	tickRate = 60
)

// Application holds the process-wide state of one invocation.
type Application struct {
	config  *cli.Config
	log     *slog.Logger
	embedFS embed.FS
}

// New creates an Application. embedFS carries the fallback game used
// when no game path is given on the command line.
func New(embedFS embed.FS) *Application {
	return &Application{embedFS: embedFS}
}

// Run executes the application with the given command line arguments.
func (a *Application) Run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	a.config = config

	if config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := logger.InitLogger(config.LogLevel); err != nil {
		return err
	}
	a.log = logger.GetLogger()

	fsys := a.selectFileSystem()

	optionsDir := a.optionsDir()
	opts := options.Load(optionsDir, a.log)
	if _, err := os.Stat(filepath.Join(optionsDir, options.Filename)); err != nil {
		// First run: materialize the defaults so players have a file to edit.
		if err := opts.Save(optionsDir); err != nil {
			a.log.Warn("could not write default options", "error", err)
		}
	}

	index, err := assets.LoadIndex(fsys, a.log)
	if err != nil {
		return fmt.Errorf("failed to load asset index: %w", err)
	}

	loader := script.NewLoader(fsys)
	entry := config.EntryScript
	if entry == "" {
		entry = DefaultEntryScript
	}

	a.log.Info("starting",
		"game", fsys.BasePath(),
		"embedded", fsys.IsEmbedded(),
		"entry", entry,
		"headless", config.Headless)

	if config.Headless {
		return a.runHeadless(fsys, index, loader, entry)
	}
	return a.runDesktop(fsys, index, loader, entry, opts)
}

// selectFileSystem returns the game directory from the command line, or
// the embedded game when none was given.
func (a *Application) selectFileSystem() fileutil.FileSystem {
	if a.config.GamePath != "" {
		return fileutil.NewRealFS(a.config.GamePath)
	}
	return fileutil.NewEmbedFS(a.embedFS, "game")
}

// optionsDir is where options.toml lives: next to the game data, or the
// working directory for the embedded game.
func (a *Application) optionsDir() string {
	if a.config.GamePath != "" {
		return a.config.GamePath
	}
	return "."
}

// runBootScript executes scripts/boot.star when the game ships one.
// A missing file is not an error; a broken one is.
func (a *Application) runBootScript(fsys fileutil.FileSystem, interp *engine.Interpreter) error {
	src, err := fsys.ReadFile(BootScriptPath)
	if err != nil {
		return nil
	}
	a.log.Info("running boot script", "path", BootScriptPath)
	runner := bridge.NewRunner(interp, nil, a.log)
	if err := runner.Run(BootScriptPath, src); err != nil {
		return fmt.Errorf("boot script failed: %w", err)
	}
	return nil
}

// headlessHost satisfies the engine's application collaborator when no
// window exists. Both requests just end the run.
type headlessHost struct {
	done bool
}

func (h *headlessHost) RequestQuit()         { h.done = true }
func (h *headlessHost) RequestReturnToMenu() { h.done = true }

// runHeadless drives the interpreter on a fixed tick without a display.
// There is no input source, so dialogue waits are skipped.
func (a *Application) runHeadless(fsys fileutil.FileSystem, index *assets.Index, loader *script.Loader, entry string) error {
	doc, err := loader.Load(entry)
	if err != nil {
		return fmt.Errorf("failed to load entry script %q: %w", entry, err)
	}

	gfx := graphics.NewHeadless(logger.For("graphics"))
	snd := sound.NewNull(logger.For("sound"))
	presenter := ui.NewLogPresenter(index, a.log)
	host := &headlessHost{}

	interp := engine.NewInterpreter(engine.NewCursor(doc), loader, gfx, snd, presenter, host, index, a.log)
	interp.SetSkip(true)

	if err := a.runBootScript(fsys, interp); err != nil {
		return err
	}

	var deadline time.Time
	if a.config.Timeout > 0 {
		deadline = time.Now().Add(a.config.Timeout)
	}

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for now := range ticker.C {
		if !deadline.IsZero() && now.After(deadline) {
			a.log.Info("timeout reached, terminating")
			break
		}
		gfx.Update()
		if err := interp.Update(now); err != nil {
			if errors.Is(err, engine.ErrTerminated) {
				break
			}
			return err
		}
		if host.done {
			break
		}
	}

	a.log.Info("headless run finished",
		"dialogue_lines", len(presenter.Lines()),
		"graphics_operations", len(gfx.History()),
		"music_track", snd.CurrentTrack())
	return nil
}

// runDesktop opens the window and runs the game loop. Each Enter press
// on the menu builds a fresh session from the entry script.
func (a *Application) runDesktop(fsys fileutil.FileSystem, index *assets.Index, loader *script.Loader, entry string, opts options.Options) error {
	audioCtx := audio.NewContext(sound.SampleRate)
	soundFontPath := locateSoundFont(fsys)

	var game *window.Game
	startSession := func() (*window.Session, error) {
		doc, err := loader.Load(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to load entry script %q: %w", entry, err)
		}

		stage := graphics.NewStage(fsys, index, window.ScreenWidth, window.ScreenHeight, logger.For("graphics"))
		mixer := sound.NewMixer(audioCtx, fsys, index, soundFontPath, opts.MusicVolume, opts.SfxVolume, logger.For("sound"))
		box := ui.NewDialogueBox(index, window.ScreenWidth, window.ScreenHeight)
		loadDialogueFont(fsys, box, a.log)

		interp := engine.NewInterpreter(engine.NewCursor(doc), loader, stage, mixer, box, game, index, a.log)

		if err := a.runBootScript(fsys, interp); err != nil {
			mixer.Close()
			return nil, err
		}

		return &window.Session{
			Interpreter: interp,
			Stage:       stage,
			Dialogue:    box,
			Skip:        a.config.Skip,
			Cleanup:     mixer.Close,
		}, nil
	}

	game = window.NewGame("tsugi", a.config.Timeout, startSession)
	fullscreen := opts.WindowMode == options.WindowModeFullscreen
	return window.Run(game, fullscreen)
}

// soundFontCandidates are checked in order inside the game filesystem.
var soundFontCandidates = []string{
	"sound/soundfont.sf2",
	"soundfont.sf2",
	"GeneralUser-GS.sf2",
}

// locateSoundFont returns the first SoundFont present in the game
// filesystem, or an empty path when the game ships none.
func locateSoundFont(fsys fileutil.FileSystem) string {
	for _, candidate := range soundFontCandidates {
		f, err := fsys.Open(candidate)
		if err != nil {
			continue
		}
		f.Close()
		return candidate
	}
	return ""
}

// loadDialogueFont installs the game's dialogue font when one exists.
// The bitmap default stays in place otherwise.
func loadDialogueFont(fsys fileutil.FileSystem, box *ui.DialogueBox, log *slog.Logger) {
	data, err := fsys.ReadFile("fonts/dialogue.ttf")
	if err != nil {
		return
	}
	if err := box.LoadFontData(data, 16); err != nil {
		log.Warn("dialogue font unreadable, using built-in face", "error", err)
	}
}
