package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Interpreter drives script execution one step per tick. A step is either
// the release of a suspension or the classification and dispatch of a
// single line; the two never happen in the same tick, which keeps pacing
// deterministic regardless of how a wait ended.
type Interpreter struct {
	cursor     *Cursor
	classifier *Classifier
	dispatcher *Dispatcher
	ctx        Context

	graphics Graphics
	app      App
	log      *slog.Logger

	advanceRequested bool
}

func NewInterpreter(cur *Cursor, loader DocumentLoader, g Graphics, s Sound, p Presenter, app App, r Resolver, log *slog.Logger) *Interpreter {
	return &Interpreter{
		cursor:     cur,
		classifier: NewClassifier(r, log),
		dispatcher: NewDispatcher(g, s, p, app, r, loader, log),
		ctx:        Context{Transition: DefaultTransition},
		graphics:   g,
		app:        app,
		log:        log,
	}
}

func (in *Interpreter) Cursor() *Cursor         { return in.cursor }
func (in *Interpreter) Classifier() *Classifier { return in.classifier }

// SetSkip toggles skip mode for subsequent dialogue.
func (in *Interpreter) SetSkip(skip bool) { in.ctx.Skip = skip }

// RequestAdvance records a user advance. The request is consumed by the next
// Update; requests made while the cursor is not waiting for input are
// dropped there.
func (in *Interpreter) RequestAdvance() { in.advanceRequested = true }

// ResolveChoice releases a branch wait by jumping to the chosen line.
func (in *Interpreter) ResolveChoice(line int) error {
	return in.cursor.Resolve(line)
}

// Update performs one execution step. It returns ErrTerminated once the
// cursor has reached its final state; every later call returns the same.
func (in *Interpreter) Update(now time.Time) error {
	if in.cursor.State() == StateTerminated {
		return ErrTerminated
	}

	if in.advanceRequested {
		in.advanceRequested = false
		if in.cursor.Advance() {
			return nil
		}
	}

	if in.ctx.Skip && in.cursor.SkipWait() {
		return nil
	}

	if in.cursor.Release(now, in.graphics.Fading()) {
		return nil
	}

	switch in.cursor.State() {
	case StateAwaitingInput, StateTimedWait, StateTransitioning, StateBranching:
		return nil

	case StateReloading:
		name := in.cursor.PendingDocument()
		in.cursor.CompleteReload()
		in.log.Info("script loaded", "name", name, "lines", in.cursor.Document().Len())
		return nil
	}

	if in.cursor.AtEnd() {
		in.log.Warn("script ended without EXIT_TO_MENU", "script", in.cursor.Document().Name)
		in.cursor.Terminate()
		in.app.RequestReturnToMenu()
		return nil
	}

	raw := in.cursor.Next()
	line := in.cursor.LineIndex() - 1
	cmd := in.classifier.Classify(raw)
	status, err := in.dispatcher.Dispatch(cmd, in.cursor, &in.ctx, now)
	if err != nil {
		if errors.Is(err, ErrJumpOutOfRange) {
			// A branch into nowhere means the script graph is broken;
			// stop instead of running whatever happens to come next.
			in.log.Error("jump out of range, terminating", "line", line, "error", err)
			in.cursor.Terminate()
			in.app.RequestReturnToMenu()
			return fmt.Errorf("line %d: %w", line, err)
		}
		in.log.Warn("command failed", "line", line, "status", status, "error", err)
	}
	return nil
}

// ClassifyAndDispatch runs a command assembled from the given arguments
// through the same classify and dispatch path as script lines. It is the
// entry point used by the scripting bridge.
func (in *Interpreter) ClassifyAndDispatch(args []string, now time.Time) Status {
	raw := strings.Join(args, Delimiter)
	cmd := in.classifier.Classify(raw)
	status, err := in.dispatcher.Dispatch(cmd, in.cursor, &in.ctx, now)
	if err != nil {
		in.log.Warn("bridge command failed", "command", raw, "status", status, "error", err)
	}
	return status
}

// ChangeBackground is the bridge shorthand for a background change with the
// current default transition.
func (in *Interpreter) ChangeBackground(name string, now time.Time) Status {
	return in.ClassifyAndDispatch([]string{string(BackgroundChange), name}, now)
}
