package engine

import (
	"time"

	"github.com/yukidoke/tsugi/pkg/script"
)

// State is the cursor's execution state. Only Advancing consumes script
// lines; every other state suspends the cursor until its release condition
// is met.
type State uint8

const (
	StateAdvancing State = iota
	StateAwaitingInput
	StateTimedWait
	StateTransitioning
	StateBranching
	StateReloading
	StateTerminated
)

var stateNames = [...]string{
	"advancing",
	"awaiting-input",
	"timed-wait",
	"transitioning",
	"branching",
	"reloading",
	"terminated",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Cursor tracks the execution position within a document. The line index
// always points at the NEXT line to classify; it is advanced before a
// command is dispatched, so suspending commands resume past themselves and
// jumps that target a line execute that exact line next.
type Cursor struct {
	doc       *script.Document
	lineIndex int

	state      State
	deadline   time.Time
	pending    string
	pendingDoc *script.Document
}

func NewCursor(doc *script.Document) *Cursor {
	return &Cursor{doc: doc}
}

func (c *Cursor) Document() *script.Document { return c.doc }
func (c *Cursor) LineIndex() int             { return c.lineIndex }
func (c *Cursor) State() State               { return c.state }

// AtEnd reports whether the cursor has run past the last line.
func (c *Cursor) AtEnd() bool {
	return c.doc == nil || c.lineIndex >= c.doc.Len()
}

// Next returns the line at the cursor and advances past it.
func (c *Cursor) Next() string {
	line := c.doc.Line(c.lineIndex)
	c.lineIndex++
	return line
}

// JumpTo positions the cursor so the given line executes next. Out of range
// targets are rejected and leave the cursor unchanged.
func (c *Cursor) JumpTo(line int) error {
	if c.doc == nil || line < 0 || line >= c.doc.Len() {
		return ErrJumpOutOfRange
	}
	c.lineIndex = line
	return nil
}

// Replace swaps in a new document and rewinds to its first line. The
// suspension state is untouched; callers decide whether the swap also
// releases the cursor.
func (c *Cursor) Replace(doc *script.Document) {
	c.doc = doc
	c.lineIndex = 0
}

// AwaitInput suspends the cursor until Advance is called.
func (c *Cursor) AwaitInput() { c.state = StateAwaitingInput }

// AwaitDeadline suspends the cursor until the deadline passes.
func (c *Cursor) AwaitDeadline(t time.Time) {
	c.state = StateTimedWait
	c.deadline = t
}

// AwaitTransition suspends the cursor until the graphics layer reports the
// current fade has completed.
func (c *Cursor) AwaitTransition() { c.state = StateTransitioning }

// AwaitBranch suspends the cursor until a choice is resolved.
func (c *Cursor) AwaitBranch() { c.state = StateBranching }

// AwaitReload suspends the cursor for one tick before the already loaded
// document replaces the current one.
func (c *Cursor) AwaitReload(name string, doc *script.Document) {
	c.state = StateReloading
	c.pending = name
	c.pendingDoc = doc
}

// PendingDocument returns the name recorded by AwaitReload.
func (c *Cursor) PendingDocument() string { return c.pending }

// Terminate puts the cursor into its final state. A terminated cursor never
// leaves it.
func (c *Cursor) Terminate() { c.state = StateTerminated }

// Advance releases an input wait. It reports whether the cursor actually
// resumed, so callers can treat the release itself as this tick's step.
func (c *Cursor) Advance() bool {
	if c.state != StateAwaitingInput {
		return false
	}
	c.state = StateAdvancing
	return true
}

// SkipWait releases a timed wait before its deadline. Skip mode collapses
// pending delays the same way it collapses input waits.
func (c *Cursor) SkipWait() bool {
	if c.state != StateTimedWait {
		return false
	}
	c.state = StateAdvancing
	c.deadline = time.Time{}
	return true
}

// Resolve releases a branch wait by jumping to the chosen line.
func (c *Cursor) Resolve(line int) error {
	if c.state != StateBranching {
		return nil
	}
	if err := c.JumpTo(line); err != nil {
		return err
	}
	c.state = StateAdvancing
	return nil
}

// Release clears any timed or transition suspension whose condition has
// been met. now drives the timed wait; fading reports the graphics state.
// It returns true when the cursor resumed this call.
func (c *Cursor) Release(now time.Time, fading bool) bool {
	switch c.state {
	case StateTimedWait:
		if !now.Before(c.deadline) {
			c.state = StateAdvancing
			return true
		}
	case StateTransitioning:
		if !fading {
			c.state = StateAdvancing
			return true
		}
	}
	return false
}

// CompleteReload installs the pending document and resumes from its first
// line.
func (c *Cursor) CompleteReload() {
	c.Replace(c.pendingDoc)
	c.pending = ""
	c.pendingDoc = nil
	c.state = StateAdvancing
}
