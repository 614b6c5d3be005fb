package graphics

import (
	"image"

	"github.com/yukidoke/tsugi/pkg/engine"
)

// DefaultTransitionSpeed is the per-tick progress of a background
// transition, as a percentage.
const DefaultTransitionSpeed = 5

// DefaultLerpSpeed is the per-tick interpolation factor for character
// sprite alpha and position.
const DefaultLerpSpeed = 0.15

// FadeSlowStep is the per-tick alpha increment of a slow fade to black.
const FadeSlowStep = 0.02

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// swipeRect returns the portion of the incoming image visible at the given
// progress for a swipe transition, in image coordinates. It reports false
// for alpha-based transitions, which reveal the whole rectangle instead.
func swipeRect(style engine.Transition, progress float64, w, h int) (image.Rectangle, bool) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	switch style {
	case engine.SwipeToRight:
		return image.Rect(0, 0, int(float64(w)*progress), h), true
	case engine.SwipeToLeft:
		cut := int(float64(w) * progress)
		return image.Rect(w-cut, 0, w, h), true
	case engine.SwipeDown:
		return image.Rect(0, 0, w, int(float64(h)*progress)), true
	}
	return image.Rect(0, 0, w, h), false
}
