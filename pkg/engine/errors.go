package engine

import "errors"

// ErrTerminated is returned by Update once the cursor has reached its
// terminal state; the owning loop should stop ticking the interpreter.
var ErrTerminated = errors.New("interpreter terminated")

// ErrJumpOutOfRange reports a JUMP target outside the active document.
// Unlike operand parse failures this one is fail-fast: a branch into nowhere
// means the script graph itself is broken.
var ErrJumpOutOfRange = errors.New("jump target out of range")

// ErrUnknownTransition reports a SET_TRANSITION operand that matches no
// transition name. The prior setting is retained.
var ErrUnknownTransition = errors.New("unknown transition name")

// Status is the integer dispatch result. Zero means the command took its
// documented effect; negative values report contained degradations. The
// embedded scripting bridge hands this value back to the caller verbatim.
type Status int

const (
	StatusOK Status = 0
	// StatusMalformedOperand: a numeric operand failed to parse; the command
	// became a no-op advance.
	StatusMalformedOperand Status = -1
	// StatusUnknownTransition: SET_TRANSITION kept the prior setting.
	StatusUnknownTransition Status = -2
	// StatusLoadFailed: LOAD_SCRIPT could not read the target; the current
	// document stays active.
	StatusLoadFailed Status = -3
	// StatusRangeError: JUMP target out of bounds. Dispatch also returns
	// ErrJumpOutOfRange for this one.
	StatusRangeError Status = -4
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMalformedOperand:
		return "malformed operand"
	case StatusUnknownTransition:
		return "unknown transition"
	case StatusLoadFailed:
		return "load failed"
	case StatusRangeError:
		return "range error"
	}
	return "unknown status"
}
