package graphics

import (
	"image"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/yukidoke/tsugi/pkg/engine"
)

func TestSwipeRect(t *testing.T) {
	const w, h = 640, 480

	cases := []struct {
		name     string
		style    engine.Transition
		progress float64
		want     image.Rectangle
		isSwipe  bool
	}{
		{"right at half", engine.SwipeToRight, 0.5, image.Rect(0, 0, 320, 480), true},
		{"right complete", engine.SwipeToRight, 1, image.Rect(0, 0, 640, 480), true},
		{"left at half", engine.SwipeToLeft, 0.5, image.Rect(320, 0, 640, 480), true},
		{"down at quarter", engine.SwipeDown, 0.25, image.Rect(0, 0, 640, 120), true},
		{"fade covers all", engine.FadeIn, 0.5, image.Rect(0, 0, 640, 480), false},
		{"clamped below", engine.SwipeDown, -1, image.Rect(0, 0, 640, 0), true},
		{"clamped above", engine.SwipeDown, 2, image.Rect(0, 0, 640, 480), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, isSwipe := swipeRect(tc.style, tc.progress, w, h)
			if got != tc.want || isSwipe != tc.isSwipe {
				t.Errorf("swipeRect(%v, %v) = %v, %v; want %v, %v",
					tc.style, tc.progress, got, isSwipe, tc.want, tc.isSwipe)
			}
		})
	}
}

func TestSwipeRectProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	const w, h = 640, 480

	styles := gen.OneConstOf(engine.SwipeToRight, engine.SwipeToLeft, engine.SwipeDown)

	properties.Property("revealed area grows monotonically", prop.ForAll(
		func(style engine.Transition, p1, p2 float64) bool {
			if p1 > p2 {
				p1, p2 = p2, p1
			}
			r1, _ := swipeRect(style, p1, w, h)
			r2, _ := swipeRect(style, p2, w, h)
			return r1.Dx()*r1.Dy() <= r2.Dx()*r2.Dy()
		},
		styles,
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("revealed rect stays inside the screen", prop.ForAll(
		func(style engine.Transition, p float64) bool {
			r, _ := swipeRect(style, p, w, h)
			return r.In(image.Rect(0, 0, w, h)) || r.Empty()
		},
		styles,
		gen.Float64Range(-2, 2),
	))

	properties.TestingRun(t)
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0,10,0.5) = %v", got)
	}
	if got := Lerp(2, 2, 0.3); got != 2 {
		t.Errorf("Lerp(2,2,0.3) = %v", got)
	}
	if got := Lerp(0, 1, DefaultLerpSpeed); got != 0.15 {
		t.Errorf("Lerp(0,1,lerp) = %v", got)
	}
}
