package engine

import "fmt"

// Transition selects the visual style a background change is revealed with.
// The setting persists across document reloads until SET_TRANSITION changes
// it.
type Transition uint8

const (
	SwipeToRight Transition = iota
	SwipeDown
	SwipeToLeft
	FadeIn

	numTransitions
)

// DefaultTransition is the style active at engine start.
const DefaultTransition = FadeIn

var transitionNames = [numTransitions]string{
	SwipeToRight: "SWIPE_TO_RIGHT",
	SwipeDown:    "SWIPE_DOWN",
	SwipeToLeft:  "SWIPE_TO_LEFT",
	FadeIn:       "FADEIN",
}

func (t Transition) String() string {
	if t >= numTransitions {
		return fmt.Sprintf("Transition(%d)", uint8(t))
	}
	return transitionNames[t]
}

// ParseTransition maps a script operand to a Transition. The table is exact
// and case-sensitive; anything else is ErrUnknownTransition.
func ParseTransition(name string) (Transition, error) {
	for t, n := range transitionNames {
		if n == name {
			return Transition(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTransition, name)
}
