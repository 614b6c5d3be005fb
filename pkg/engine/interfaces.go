package engine

import "github.com/yukidoke/tsugi/pkg/script"

// DarkenOpacity is the fixed overlay alpha applied by DARKEN_SCREEN.
const DarkenOpacity = 100

// Graphics is the rendering collaborator. The dispatcher only issues
// requests; all drawing state lives behind this interface.
type Graphics interface {
	// ChangeBackground begins a transition to the background with the given
	// index using the given style. The active background index must update
	// only once the transition completes.
	ChangeBackground(bgIdx int, style Transition)

	// FadeToBlack fades the frame to black. The slow variant is expected to
	// take multiple ticks and report its progress through Fading.
	FadeToBlack(slow bool)

	// Fading reports whether a slow fade is still in progress. The cursor
	// polls this while in the Transitioning state.
	Fading() bool

	// SetDarken adjusts the screen-dimming overlay (0 clears it).
	SetDarken(opacity uint8)

	// AddCharacter adds an active character slot. slot is the horizontal
	// position as a percentage of the screen width.
	AddCharacter(charIdx, outfitIdx, emotionIdx, slot int, immediate bool)

	// ClearCharacters removes all active character slots.
	ClearCharacters(immediate bool)
}

// Sound is the audio collaborator.
type Sound interface {
	// ChangeTrack switches the active music track. Track 0 is silence.
	ChangeTrack(idx int)
	StopMusic()

	// PlaySfx plays a sound effect once. A non-forced play is dropped when
	// the effect channel is busy.
	PlaySfx(idx int, forced bool)
	PlayLoopedSfx(idx int)
	StopLoopedSfx()
}

// Presenter is the interface collaborator rendering dialogue.
type Presenter interface {
	ShowDialogue(speakerIdx int, text string)
}

// App is the owning application. Both requests must be idempotent from the
// caller's point of view; the dispatcher issues each at most once per
// terminal command.
type App interface {
	RequestQuit()
	RequestReturnToMenu()
}

// Resolver resolves script names to collaborator indices. Lookups never
// fail; unresolved names degrade to a default index (see pkg/assets).
type Resolver interface {
	HasCharacter(name string) bool
	CharacterIndex(name string) int
	OutfitIndex(charIdx int, name string) int
	EmotionIndex(charIdx int, name string) int
	BackgroundIndex(name string) int
	MusicIndex(name string) int
	SfxIndex(name string) int
}

// DocumentLoader loads script documents by name. Implemented by
// script.Loader; abstracted so tests can inject documents directly.
type DocumentLoader interface {
	Load(name string) (*script.Document, error)
}
