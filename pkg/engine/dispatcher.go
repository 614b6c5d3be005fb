package engine

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Context carries the dispatch settings that persist across commands.
type Context struct {
	// Transition is the style used by BACKGROUND_CHANGE when the script
	// does not name one.
	Transition Transition
	// Skip suppresses the input wait after dialogue.
	Skip bool
}

// Dispatcher executes classified commands against the collaborators. A
// failed dispatch returns a non-OK status together with an error describing
// it; the caller decides whether to log and carry on.
type Dispatcher struct {
	graphics  Graphics
	sound     Sound
	presenter Presenter
	app       App
	resolver  Resolver
	loader    DocumentLoader
	log       *slog.Logger
}

func NewDispatcher(g Graphics, s Sound, p Presenter, app App, r Resolver, loader DocumentLoader, log *slog.Logger) *Dispatcher {
	return &Dispatcher{graphics: g, sound: s, presenter: p, app: app, resolver: r, loader: loader, log: log}
}

// Dispatch executes a single command, suspending or terminating the cursor
// as the command demands. now anchors timed waits.
func (d *Dispatcher) Dispatch(cmd Command, cur *Cursor, ctx *Context, now time.Time) (Status, error) {
	switch cmd.Kind {
	case Comment:
		return StatusOK, nil

	case Speech:
		d.presenter.ShowDialogue(cmd.Speaker, cmd.Text())
		if !ctx.Skip {
			cur.AwaitInput()
		}
		return StatusOK, nil

	case Narrative:
		d.presenter.ShowDialogue(0, cmd.Text())
		if !ctx.Skip {
			cur.AwaitInput()
		}
		return StatusOK, nil

	case BackgroundChange:
		if len(cmd.Operands) == 0 || cmd.Operands[0] == "" {
			return StatusMalformedOperand, fmt.Errorf("BACKGROUND_CHANGE: missing background name")
		}
		style := ctx.Transition
		if len(cmd.Operands) > 1 {
			parsed, err := ParseTransition(cmd.Operands[1])
			if err != nil {
				return StatusUnknownTransition, fmt.Errorf("BACKGROUND_CHANGE: %w", err)
			}
			style = parsed
		}
		d.graphics.ChangeBackground(d.resolver.BackgroundIndex(cmd.Operands[0]), style)
		return StatusOK, nil

	case SetTransition:
		if len(cmd.Operands) == 0 {
			return StatusMalformedOperand, fmt.Errorf("SET_TRANSITION: missing style name")
		}
		parsed, err := ParseTransition(cmd.Operands[0])
		if err != nil {
			return StatusUnknownTransition, fmt.Errorf("SET_TRANSITION: %w", err)
		}
		ctx.Transition = parsed
		return StatusOK, nil

	case FadeBlack:
		d.graphics.FadeToBlack(false)
		return StatusOK, nil

	case FadeBlackSlow:
		d.graphics.FadeToBlack(true)
		cur.AwaitTransition()
		return StatusOK, nil

	case DarkenScreen:
		d.graphics.SetDarken(DarkenOpacity)
		return StatusOK, nil

	case BrightenScreen:
		d.graphics.SetDarken(0)
		return StatusOK, nil

	case MusicChange:
		if len(cmd.Operands) == 0 || cmd.Operands[0] == "" {
			return StatusMalformedOperand, fmt.Errorf("MUSIC_CHANGE: missing track name")
		}
		d.sound.ChangeTrack(d.resolver.MusicIndex(cmd.Operands[0]))
		return StatusOK, nil

	case StopMusic:
		d.sound.StopMusic()
		return StatusOK, nil

	case PlaySfx:
		if len(cmd.Operands) == 0 || cmd.Operands[0] == "" {
			return StatusMalformedOperand, fmt.Errorf("PLAY_SFX: missing effect name")
		}
		// An optional FORCE modifier preempts whatever occupies the
		// effect channel instead of being dropped.
		forced := false
		if len(cmd.Operands) > 1 {
			if cmd.Operands[1] != "FORCE" {
				return StatusMalformedOperand, fmt.Errorf("PLAY_SFX: bad modifier %q", cmd.Operands[1])
			}
			forced = true
		}
		d.sound.PlaySfx(d.resolver.SfxIndex(cmd.Operands[0]), forced)
		return StatusOK, nil

	case PlaySfxLooped:
		if len(cmd.Operands) == 0 || cmd.Operands[0] == "" {
			return StatusMalformedOperand, fmt.Errorf("PLAY_SFX_LOOPED: missing effect name")
		}
		d.sound.PlayLoopedSfx(d.resolver.SfxIndex(cmd.Operands[0]))
		return StatusOK, nil

	case StopSfxLooped:
		d.sound.StopLoopedSfx()
		return StatusOK, nil

	case Jump:
		if len(cmd.Operands) == 0 {
			return StatusMalformedOperand, fmt.Errorf("JUMP: missing target line")
		}
		target, err := strconv.Atoi(cmd.Operands[0])
		if err != nil {
			return StatusMalformedOperand, fmt.Errorf("JUMP: bad target %q: %w", cmd.Operands[0], err)
		}
		if err := cur.JumpTo(target); err != nil {
			return StatusRangeError, fmt.Errorf("JUMP: target %d: %w", target, err)
		}
		return StatusOK, nil

	case CharacterEnter, CharacterEnterImmediate:
		return d.characterEnter(cmd, cmd.Kind == CharacterEnterImmediate)

	case ClearCharacters:
		d.graphics.ClearCharacters(false)
		return StatusOK, nil

	case ClearCharactersImmediate:
		d.graphics.ClearCharacters(true)
		return StatusOK, nil

	case Wait:
		if len(cmd.Operands) == 0 {
			return StatusMalformedOperand, fmt.Errorf("WAIT: missing duration")
		}
		ms, err := strconv.Atoi(cmd.Operands[0])
		if err != nil {
			return StatusMalformedOperand, fmt.Errorf("WAIT: bad duration %q: %w", cmd.Operands[0], err)
		}
		if ms > 0 && !ctx.Skip {
			cur.AwaitDeadline(now.Add(time.Duration(ms) * time.Millisecond))
		}
		return StatusOK, nil

	case LoadScript:
		if len(cmd.Operands) == 0 || cmd.Operands[0] == "" {
			return StatusMalformedOperand, fmt.Errorf("LOAD_SCRIPT: missing script name")
		}
		doc, err := d.loader.Load(cmd.Operands[0])
		if err != nil {
			// The current document stays active; playback continues
			// on the line after the failed load.
			return StatusLoadFailed, fmt.Errorf("LOAD_SCRIPT: %q: %w", cmd.Operands[0], err)
		}
		cur.AwaitReload(cmd.Operands[0], doc)
		return StatusOK, nil

	case ExitGame:
		cur.Terminate()
		d.app.RequestQuit()
		return StatusOK, nil

	case ExitToMenu:
		cur.Terminate()
		d.app.RequestReturnToMenu()
		return StatusOK, nil
	}

	return StatusMalformedOperand, fmt.Errorf("unknown command kind %q", cmd.Kind)
}

func (d *Dispatcher) characterEnter(cmd Command, immediate bool) (Status, error) {
	if len(cmd.Operands) < 4 {
		return StatusMalformedOperand, fmt.Errorf("%s: want character:outfit:emotion:position, got %d operands", cmd.Kind, len(cmd.Operands))
	}
	slot, err := strconv.Atoi(cmd.Operands[3])
	if err != nil {
		return StatusMalformedOperand, fmt.Errorf("%s: bad position %q: %w", cmd.Kind, cmd.Operands[3], err)
	}
	charIdx := d.resolver.CharacterIndex(cmd.Operands[0])
	outfit := d.resolver.OutfitIndex(charIdx, cmd.Operands[1])
	emotion := d.resolver.EmotionIndex(charIdx, cmd.Operands[2])
	d.graphics.AddCharacter(charIdx, outfit, emotion, slot, immediate)
	return StatusOK, nil
}
