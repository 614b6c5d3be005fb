// Package engine implements the script execution core: the line classifier,
// the execution cursor state machine, and the command dispatcher that turns
// classified commands into collaborator effects.
//
// Every command execution, whether it originates from the script document or
// from the embedded scripting bridge, passes through the same
// Classify/Dispatch pair. That single path is the central invariant of this
// package.
package engine

import "strings"

// Delimiter separates the keyword (or speaker name) from its operands.
const Delimiter = ":"

// Kind identifies one operation of the fixed command set. Kinds whose value
// doubles as the script keyword are matched case-sensitively against the
// first token of a line; SPEECH is the one kind without a keyword, since its
// first token is a speaker name.
type Kind string

const (
	BackgroundChange         Kind = "BACKGROUND_CHANGE"
	FadeBlack                Kind = "FADE_BLACK"
	FadeBlackSlow            Kind = "FADE_BLACK_SLOW"
	MusicChange              Kind = "MUSIC_CHANGE"
	DarkenScreen             Kind = "DARKEN_SCREEN"
	BrightenScreen           Kind = "BRIGHTEN_SCREEN"
	StopMusic                Kind = "STOP_MUSIC"
	PlaySfx                  Kind = "PLAY_SFX"
	PlaySfxLooped            Kind = "PLAY_SFX_LOOPED"
	StopSfxLooped            Kind = "STOP_SFX_LOOPED"
	Jump                     Kind = "JUMP"
	CharacterEnter           Kind = "CHARACTER_ENTER"
	CharacterEnterImmediate  Kind = "CHARACTER_ENTER_IMMEDIATE"
	ClearCharacters          Kind = "CLEAR_CHARACTERS"
	ClearCharactersImmediate Kind = "CLEAR_CHARACTERS_IMMEDIATE"
	LoadScript               Kind = "LOAD_SCRIPT"
	Speech                   Kind = "SPEECH"
	Narrative                Kind = "NARRATIVE"
	Comment                  Kind = "COMMENT"
	Wait                     Kind = "WAIT"
	ExitGame                 Kind = "EXIT_GAME"
	SetTransition            Kind = "SET_TRANSITION"
	ExitToMenu               Kind = "EXIT_TO_MENU"
)

// keywordTable maps script keywords to kinds. SPEECH is absent on purpose.
var keywordTable = map[string]Kind{
	string(BackgroundChange):         BackgroundChange,
	string(FadeBlack):                FadeBlack,
	string(FadeBlackSlow):            FadeBlackSlow,
	string(MusicChange):              MusicChange,
	string(DarkenScreen):             DarkenScreen,
	string(BrightenScreen):           BrightenScreen,
	string(StopMusic):                StopMusic,
	string(PlaySfx):                  PlaySfx,
	string(PlaySfxLooped):            PlaySfxLooped,
	string(StopSfxLooped):            StopSfxLooped,
	string(Jump):                     Jump,
	string(CharacterEnter):           CharacterEnter,
	string(CharacterEnterImmediate):  CharacterEnterImmediate,
	string(ClearCharacters):          ClearCharacters,
	string(ClearCharactersImmediate): ClearCharactersImmediate,
	string(LoadScript):               LoadScript,
	string(Narrative):                Narrative,
	string(Comment):                  Comment,
	string(Wait):                     Wait,
	string(ExitGame):                 ExitGame,
	string(SetTransition):            SetTransition,
	string(ExitToMenu):               ExitToMenu,
}

// Keywords returns every script keyword, in no particular order.
func Keywords() []string {
	keywords := make([]string, 0, len(keywordTable))
	for k := range keywordTable {
		keywords = append(keywords, k)
	}
	return keywords
}

// Command is one classified script line. Operands are kept verbatim; numeric
// operands are parsed lazily by the dispatcher per command kind.
type Command struct {
	Kind     Kind
	Operands []string
	// Speaker is the resolved speaker index for SPEECH lines, the narrator
	// index otherwise.
	Speaker int
}

// Text returns the utterance of a SPEECH or NARRATIVE command. The operands
// are rejoined on the delimiter so dialogue containing colons survives
// classification byte for byte.
func (c Command) Text() string {
	return strings.Join(c.Operands, Delimiter)
}
