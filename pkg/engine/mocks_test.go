package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/yukidoke/tsugi/pkg/script"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGraphics records every call so tests can assert on effect order.
type fakeGraphics struct {
	calls   []string
	fading  bool
	bgIdx   int
	bgStyle Transition
	darken  uint8
}

func (g *fakeGraphics) ChangeBackground(bgIdx int, style Transition) {
	g.bgIdx, g.bgStyle = bgIdx, style
	g.calls = append(g.calls, fmt.Sprintf("bg(%d,%s)", bgIdx, style))
}

func (g *fakeGraphics) FadeToBlack(slow bool) {
	g.calls = append(g.calls, fmt.Sprintf("fade(slow=%v)", slow))
}

func (g *fakeGraphics) Fading() bool { return g.fading }

func (g *fakeGraphics) SetDarken(opacity uint8) {
	g.darken = opacity
	g.calls = append(g.calls, fmt.Sprintf("darken(%d)", opacity))
}

func (g *fakeGraphics) AddCharacter(charIdx, outfitIdx, emotionIdx, slot int, immediate bool) {
	g.calls = append(g.calls, fmt.Sprintf("char(%d,%d,%d,%d,%v)", charIdx, outfitIdx, emotionIdx, slot, immediate))
}

func (g *fakeGraphics) ClearCharacters(immediate bool) {
	g.calls = append(g.calls, fmt.Sprintf("clear(%v)", immediate))
}

type fakeSound struct {
	calls []string
	track int
}

func (s *fakeSound) ChangeTrack(idx int) {
	s.track = idx
	s.calls = append(s.calls, fmt.Sprintf("track(%d)", idx))
}

func (s *fakeSound) StopMusic() { s.calls = append(s.calls, "stopMusic") }

func (s *fakeSound) PlaySfx(idx int, forced bool) {
	s.calls = append(s.calls, fmt.Sprintf("sfx(%d,%v)", idx, forced))
}

func (s *fakeSound) PlayLoopedSfx(idx int) {
	s.calls = append(s.calls, fmt.Sprintf("loop(%d)", idx))
}

func (s *fakeSound) StopLoopedSfx() { s.calls = append(s.calls, "stopLoop") }

type dialogueLine struct {
	speaker int
	text    string
}

type fakePresenter struct {
	shown []dialogueLine
}

func (p *fakePresenter) ShowDialogue(speakerIdx int, text string) {
	p.shown = append(p.shown, dialogueLine{speakerIdx, text})
}

type fakeApp struct {
	quits int
	menus int
}

func (a *fakeApp) RequestQuit()         { a.quits++ }
func (a *fakeApp) RequestReturnToMenu() { a.menus++ }

// fakeResolver resolves from fixed name tables. Unknown names resolve to 0,
// matching the degradation rule of the real asset index.
type fakeResolver struct {
	characters  []string
	backgrounds []string
	music       []string
	sfx         []string
}

func defaultResolver() *fakeResolver {
	return &fakeResolver{
		characters:  []string{"NARRATOR", "Yuuji", "Reiko"},
		backgrounds: []string{"black", "school", "park"},
		music:       []string{"silence", "theme", "tense"},
		sfx:         []string{"none", "door", "bell"},
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func (r *fakeResolver) HasCharacter(name string) bool {
	for _, n := range r.characters {
		if n == name {
			return true
		}
	}
	return false
}

func (r *fakeResolver) CharacterIndex(name string) int { return indexOf(r.characters, name) }
func (r *fakeResolver) OutfitIndex(_ int, name string) int {
	return indexOf([]string{"Casual", "School"}, name)
}
func (r *fakeResolver) EmotionIndex(_ int, name string) int {
	return indexOf([]string{"Neutral", "Happy_1"}, name)
}
func (r *fakeResolver) BackgroundIndex(name string) int { return indexOf(r.backgrounds, name) }
func (r *fakeResolver) MusicIndex(name string) int      { return indexOf(r.music, name) }
func (r *fakeResolver) SfxIndex(name string) int        { return indexOf(r.sfx, name) }

type fakeLoader struct {
	docs map[string]*script.Document
	err  error
}

func (l *fakeLoader) Load(name string) (*script.Document, error) {
	if l.err != nil {
		return nil, l.err
	}
	doc, ok := l.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", script.ErrLoad, name)
	}
	return doc, nil
}

func doc(lines ...string) *script.Document {
	return &script.Document{Name: "test", Lines: lines}
}

// world bundles a fully wired interpreter with its fakes.
type world struct {
	interp    *Interpreter
	graphics  *fakeGraphics
	sound     *fakeSound
	presenter *fakePresenter
	app       *fakeApp
	loader    *fakeLoader
}

func newWorld(d *script.Document) *world {
	w := &world{
		graphics:  &fakeGraphics{},
		sound:     &fakeSound{},
		presenter: &fakePresenter{},
		app:       &fakeApp{},
		loader:    &fakeLoader{docs: map[string]*script.Document{}},
	}
	w.interp = NewInterpreter(NewCursor(d), w.loader, w.graphics, w.sound, w.presenter, w.app, defaultResolver(), discardLogger())
	return w
}
