// Package ui renders the dialogue layer: the text box at the bottom of the
// screen showing the current speaker and utterance.
package ui

import (
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

var defaultFace = text.NewGoXFace(basicfont.Face7x13)

// NameResolver maps speaker indices back to display names.
type NameResolver interface {
	CharacterName(i int) string
}

// DialogueBox shows the current dialogue line. It implements the engine's
// presenter interface and is drawn as the topmost layer of the frame.
type DialogueBox struct {
	names NameResolver
	face  text.Face

	width, height int
	boxHeight     int

	visible bool
	waiting bool
	speaker string
	lines   []string

	frame int
	box   *ebiten.Image
}

func NewDialogueBox(names NameResolver, width, height int) *DialogueBox {
	return &DialogueBox{
		names:     names,
		face:      defaultFace,
		width:     width,
		height:    height,
		boxHeight: height / 4,
	}
}

// LoadFont replaces the default bitmap face with a TrueType font, for text
// beyond the ASCII range. Failure keeps the current face.
func (d *DialogueBox) LoadFont(path string, size float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return d.LoadFontData(data, size)
}

// LoadFontData installs a TrueType face from already loaded bytes.
func (d *DialogueBox) LoadFontData(data []byte, size float64) error {
	tt, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	d.face = text.NewGoXFace(face)
	return nil
}

func (d *DialogueBox) ShowDialogue(speakerIdx int, content string) {
	d.speaker = d.names.CharacterName(speakerIdx)
	d.lines = d.wrap(content)
	d.visible = true
}

// Hide clears the box, for menu transitions.
func (d *DialogueBox) Hide() {
	d.visible = false
	d.waiting = false
}

// SetWaiting controls the blinking advance arrow.
func (d *DialogueBox) SetWaiting(waiting bool) {
	d.waiting = waiting
}

func (d *DialogueBox) Draw(screen *ebiten.Image) {
	if !d.visible {
		return
	}
	if d.box == nil {
		d.box = ebiten.NewImage(d.width, d.boxHeight)
		d.box.Fill(color.RGBA{0, 0, 0, 0xb0})
	}

	top := float64(d.height - d.boxHeight)
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(0, top)
	screen.DrawImage(d.box, opts)

	lineHeight := d.face.Metrics().HAscent + d.face.Metrics().HDescent + 4
	y := top + 8

	if d.speaker != "" {
		topts := &text.DrawOptions{}
		topts.GeoM.Translate(16, y)
		topts.ColorScale.ScaleWithColor(color.RGBA{0xff, 0xd7, 0x66, 0xff})
		text.Draw(screen, d.speaker, d.face, topts)
		y += lineHeight
	}
	for _, line := range d.lines {
		topts := &text.DrawOptions{}
		topts.GeoM.Translate(16, y)
		topts.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, d.face, topts)
		y += lineHeight
	}

	d.frame++
	if d.waiting && d.frame%60 < 40 {
		d.drawAdvanceArrow(screen)
	}
}

// drawAdvanceArrow blinks a small downward triangle in the box corner while
// the engine waits for input.
func (d *DialogueBox) drawAdvanceArrow(screen *ebiten.Image) {
	x := float32(d.width - 28)
	y := float32(d.height - 16)
	for i := 0; i < 6; i++ {
		row := float32(i)
		vector.DrawFilledRect(screen, x+row, y+row, 12-2*row, 1, color.White, false)
	}
}

// wrap splits content into lines that fit the box width. Splitting is per
// rune, which handles text without spaces.
func (d *DialogueBox) wrap(content string) []string {
	maxWidth := float64(d.width - 32)
	var lines []string
	var current []rune
	for _, r := range content {
		next := append(current, r)
		if w, _ := text.Measure(string(next), d.face, 0); w > maxWidth && len(current) > 0 {
			lines = append(lines, string(current))
			current = []rune{r}
			continue
		}
		current = next
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
