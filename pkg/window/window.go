// Package window runs the ebiten game loop and routes player input into
// the script interpreter. It owns the two top-level modes: the menu and a
// running game session.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/yukidoke/tsugi/pkg/engine"
	"github.com/yukidoke/tsugi/pkg/graphics"
	"github.com/yukidoke/tsugi/pkg/ui"
)

// Screen dimensions of the virtual display.
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

var (
	menuBackground = color.RGBA{0x10, 0x10, 0x18, 0xff}
	menuText       = color.White
	menuAccent     = color.RGBA{0xff, 0xd7, 0x66, 0xff}
	defaultFace    = text.NewGoXFace(basicfont.Face7x13)
)

// Mode is the top-level display mode.
type Mode int

const (
	ModeMenu Mode = iota
	ModeInGame
)

// Session bundles everything a running game needs from the loop.
type Session struct {
	Interpreter *engine.Interpreter
	Stage       *graphics.Stage
	Dialogue    *ui.DialogueBox
	Skip        bool // skip mode on even without the key held
	Cleanup     func()
}

// Game implements ebiten.Game and the engine's application collaborator.
// The quit and return-to-menu requests are flags consumed by the next
// Update, so terminal script commands work from any collaborator.
type Game struct {
	title   string
	mode    Mode
	timeout time.Duration
	started time.Time

	startSession func() (*Session, error)
	session      *Session

	mu     sync.Mutex
	quit   bool
	toMenu bool
}

func NewGame(title string, timeout time.Duration, startSession func() (*Session, error)) *Game {
	return &Game{
		title:        title,
		mode:         ModeMenu,
		timeout:      timeout,
		started:      time.Now(),
		startSession: startSession,
	}
}

// RequestQuit asks the loop to terminate.
func (g *Game) RequestQuit() {
	g.mu.Lock()
	g.quit = true
	g.mu.Unlock()
}

// RequestReturnToMenu asks the loop to end the session and show the menu.
func (g *Game) RequestReturnToMenu() {
	g.mu.Lock()
	g.toMenu = true
	g.mu.Unlock()
}

func (g *Game) consumeRequests() (quit, toMenu bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	quit, toMenu = g.quit, g.toMenu
	g.quit, g.toMenu = false, false
	return
}

func (g *Game) Update() error {
	if g.timeout > 0 && time.Since(g.started) >= g.timeout {
		return ebiten.Termination
	}

	quit, toMenu := g.consumeRequests()
	if quit {
		return ebiten.Termination
	}
	if toMenu {
		g.endSession()
	}

	switch g.mode {
	case ModeMenu:
		return g.updateMenu()
	case ModeInGame:
		return g.updateInGame()
	}
	return nil
}

func (g *Game) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		session, err := g.startSession()
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		g.session = session
		g.mode = ModeInGame
	}
	return nil
}

func (g *Game) updateInGame() error {
	if g.session == nil {
		g.mode = ModeMenu
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.endSession()
		return nil
	}

	interp := g.session.Interpreter
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		interp.RequestAdvance()
	}
	interp.SetSkip(g.session.Skip || ebiten.IsKeyPressed(ebiten.KeyControl))

	g.session.Stage.Update()
	if err := interp.Update(time.Now()); err != nil && !errors.Is(err, engine.ErrTerminated) {
		return err
	}
	g.session.Dialogue.SetWaiting(interp.Cursor().State() == engine.StateAwaitingInput)
	return nil
}

func (g *Game) endSession() {
	if g.session != nil && g.session.Cleanup != nil {
		g.session.Cleanup()
	}
	g.session = nil
	g.mode = ModeMenu
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.mode {
	case ModeMenu:
		g.drawMenu(screen)
	case ModeInGame:
		if g.session != nil {
			g.session.Stage.Draw(screen)
			g.session.Dialogue.Draw(screen)
		}
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	screen.Fill(menuBackground)

	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Translate(60, 120)
	titleOp.ColorScale.ScaleWithColor(menuAccent)
	text.Draw(screen, g.title, defaultFace, titleOp)

	helpOp := &text.DrawOptions{}
	helpOp.GeoM.Translate(60, 200)
	helpOp.ColorScale.ScaleWithColor(menuText)
	text.Draw(screen, "ENTER to start, ESC to quit", defaultFace, helpOp)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until the loop terminates.
func Run(game *Game, fullscreen bool) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(game.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
