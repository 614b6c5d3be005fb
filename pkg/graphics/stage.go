// Package graphics renders the visual state of a running game: the active
// background, in-flight background transitions, character sprites and the
// full-screen overlays. The engine drives it through requests; all progress
// happens in Update, one step per tick.
package graphics

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/yukidoke/tsugi/pkg/assets"
	"github.com/yukidoke/tsugi/pkg/engine"
	"github.com/yukidoke/tsugi/pkg/fileutil"
)

type characterSprite struct {
	charIdx, outfitIdx, emotionIdx int
	slot                           int
	img                            *ebiten.Image
	alpha, targetAlpha             float64
}

// Stage is the ebiten implementation of the engine's graphics collaborator.
type Stage struct {
	index    *assets.Index
	textures *textureCache
	log      *slog.Logger

	width, height int

	currentBg int
	pendingBg int
	style     engine.Transition
	progress  float64
	changing  bool

	characters []*characterSprite

	darken    uint8
	fadeAlpha float64
	fadeSlow  bool

	overlay *ebiten.Image
}

func NewStage(fsys fileutil.FileSystem, index *assets.Index, width, height int, log *slog.Logger) *Stage {
	return &Stage{
		index:    index,
		textures: newTextureCache(fsys, log),
		log:      log,
		width:    width,
		height:   height,
	}
}

// ActiveBackground returns the index of the background currently shown in
// full. During a transition it is still the outgoing one.
func (st *Stage) ActiveBackground() int { return st.currentBg }

// Changing reports whether a background transition is in flight.
func (st *Stage) Changing() bool { return st.changing }

func (st *Stage) ChangeBackground(bgIdx int, style engine.Transition) {
	if st.changing {
		// A new change preempts the old one; the preempted target becomes
		// visible immediately.
		st.currentBg = st.pendingBg
	}
	st.pendingBg = bgIdx
	st.style = style
	st.progress = 0
	st.changing = true
	st.fadeAlpha = 0
	st.fadeSlow = false
}

func (st *Stage) FadeToBlack(slow bool) {
	st.fadeSlow = slow
	if !slow {
		st.fadeAlpha = 1
	}
}

func (st *Stage) Fading() bool {
	return st.fadeSlow && st.fadeAlpha < 1
}

func (st *Stage) SetDarken(opacity uint8) { st.darken = opacity }

func (st *Stage) AddCharacter(charIdx, outfitIdx, emotionIdx, slot int, immediate bool) {
	sp := &characterSprite{
		charIdx:     charIdx,
		outfitIdx:   outfitIdx,
		emotionIdx:  emotionIdx,
		slot:        slot,
		img:         st.textures.get(st.index.SpritePath(charIdx, outfitIdx, emotionIdx), st.width/3, st.height),
		targetAlpha: 1,
	}
	if immediate {
		sp.alpha = 1
	}
	st.characters = append(st.characters, sp)
}

func (st *Stage) ClearCharacters(immediate bool) {
	if immediate {
		st.characters = nil
		return
	}
	for _, sp := range st.characters {
		sp.targetAlpha = 0
	}
}

// Update advances transitions, fades and sprite interpolation by one tick.
func (st *Stage) Update() {
	if st.changing {
		st.progress += float64(DefaultTransitionSpeed) / 100
		if st.progress >= 1 {
			st.progress = 1
			st.currentBg = st.pendingBg
			st.changing = false
		}
	}

	if st.fadeSlow && st.fadeAlpha < 1 {
		st.fadeAlpha += FadeSlowStep
		if st.fadeAlpha > 1 {
			st.fadeAlpha = 1
		}
	}

	kept := st.characters[:0]
	for _, sp := range st.characters {
		sp.alpha = Lerp(sp.alpha, sp.targetAlpha, DefaultLerpSpeed)
		if sp.targetAlpha == 0 && sp.alpha < 0.01 {
			continue
		}
		kept = append(kept, sp)
	}
	st.characters = kept
}

// Draw renders the stage bottom-up: background, incoming background,
// characters, darken overlay, fade overlay.
func (st *Stage) Draw(screen *ebiten.Image) {
	st.drawBackground(screen, st.currentBg, 1)

	if st.changing {
		incoming := st.backgroundImage(st.pendingBg)
		rect, isSwipe := swipeRect(st.style, st.progress, st.width, st.height)
		opts := &ebiten.DrawImageOptions{}
		if isSwipe {
			sub := incoming.SubImage(rect).(*ebiten.Image)
			opts.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
			screen.DrawImage(sub, opts)
		} else {
			opts.ColorScale.ScaleAlpha(float32(st.progress))
			screen.DrawImage(incoming, opts)
		}
	}

	for _, sp := range st.characters {
		opts := &ebiten.DrawImageOptions{}
		w := sp.img.Bounds().Dx()
		x := float64(st.width)*float64(sp.slot)/100 - float64(w)/2
		y := float64(st.height - sp.img.Bounds().Dy())
		opts.GeoM.Translate(x, y)
		opts.ColorScale.ScaleAlpha(float32(sp.alpha))
		screen.DrawImage(sp.img, opts)
	}

	if st.darken > 0 {
		st.fillOverlay(screen, float64(st.darken)/255)
	}
	if st.fadeAlpha > 0 {
		st.fillOverlay(screen, st.fadeAlpha)
	}
}

func (st *Stage) drawBackground(screen *ebiten.Image, bgIdx int, alpha float32) {
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(st.backgroundImage(bgIdx), opts)
}

func (st *Stage) backgroundImage(bgIdx int) *ebiten.Image {
	return st.textures.get(st.index.BackgroundPath(bgIdx), st.width, st.height)
}

func (st *Stage) fillOverlay(screen *ebiten.Image, alpha float64) {
	if st.overlay == nil {
		st.overlay = ebiten.NewImage(st.width, st.height)
		st.overlay.Fill(color.Black)
	}
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(st.overlay, opts)
}
