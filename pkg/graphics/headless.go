package graphics

import (
	"log/slog"
	"sync"

	"github.com/yukidoke/tsugi/pkg/engine"
)

// OperationRecord is one recorded drawing request.
type OperationRecord struct {
	Operation string
	Args      map[string]any
}

// Headless tracks the visual state without rendering anything. It is used
// when running without a display and by tests that assert on drawing
// requests. Transitions and slow fades still take ticks to complete so the
// cursor state machine behaves exactly as it does on screen.
type Headless struct {
	log *slog.Logger

	mu        sync.Mutex
	currentBg int
	pendingBg int
	changing  bool
	progress  float64
	darken    uint8
	fadeAlpha float64
	fadeSlow  bool
	casts     int
	history   []OperationRecord
}

func NewHeadless(log *slog.Logger) *Headless {
	return &Headless{log: log}
}

func (h *Headless) record(op string, args map[string]any) {
	h.history = append(h.history, OperationRecord{Operation: op, Args: args})
	attrs := make([]any, 0, len(args)*2)
	for k, v := range args {
		attrs = append(attrs, k, v)
	}
	h.log.Debug("graphics: "+op, attrs...)
}

func (h *Headless) ChangeBackground(bgIdx int, style engine.Transition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.changing {
		h.currentBg = h.pendingBg
	}
	h.pendingBg = bgIdx
	h.changing = true
	h.progress = 0
	h.fadeAlpha = 0
	h.fadeSlow = false
	h.record("ChangeBackground", map[string]any{"bg": bgIdx, "style": style.String()})
}

func (h *Headless) FadeToBlack(slow bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fadeSlow = slow
	if !slow {
		h.fadeAlpha = 1
	}
	h.record("FadeToBlack", map[string]any{"slow": slow})
}

func (h *Headless) Fading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fadeSlow && h.fadeAlpha < 1
}

func (h *Headless) SetDarken(opacity uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.darken = opacity
	h.record("SetDarken", map[string]any{"opacity": opacity})
}

func (h *Headless) AddCharacter(charIdx, outfitIdx, emotionIdx, slot int, immediate bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.casts++
	h.record("AddCharacter", map[string]any{
		"char": charIdx, "outfit": outfitIdx, "emotion": emotionIdx,
		"slot": slot, "immediate": immediate,
	})
}

func (h *Headless) ClearCharacters(immediate bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.casts = 0
	h.record("ClearCharacters", map[string]any{"immediate": immediate})
}

// Update advances simulated transition and fade progress by one tick.
func (h *Headless) Update() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.changing {
		h.progress += float64(DefaultTransitionSpeed) / 100
		if h.progress >= 1 {
			h.progress = 1
			h.currentBg = h.pendingBg
			h.changing = false
		}
	}
	if h.fadeSlow && h.fadeAlpha < 1 {
		h.fadeAlpha += FadeSlowStep
		if h.fadeAlpha > 1 {
			h.fadeAlpha = 1
		}
	}
}

func (h *Headless) ActiveBackground() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentBg
}

func (h *Headless) Changing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.changing
}

func (h *Headless) CharacterCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.casts
}

func (h *Headless) Darken() uint8 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.darken
}

// History returns a copy of all recorded operations.
func (h *Headless) History() []OperationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]OperationRecord, len(h.history))
	copy(out, h.history)
	return out
}
