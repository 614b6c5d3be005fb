package ui

import (
	"log/slog"
	"sync"
)

// Line is one presented dialogue line.
type Line struct {
	Speaker string
	Text    string
}

// LogPresenter writes dialogue to the log instead of the screen. Used in
// headless runs and by tests, which assert on the recorded lines.
type LogPresenter struct {
	names NameResolver
	log   *slog.Logger

	mu    sync.Mutex
	lines []Line
}

func NewLogPresenter(names NameResolver, log *slog.Logger) *LogPresenter {
	return &LogPresenter{names: names, log: log}
}

func (p *LogPresenter) ShowDialogue(speakerIdx int, content string) {
	speaker := p.names.CharacterName(speakerIdx)
	p.mu.Lock()
	p.lines = append(p.lines, Line{Speaker: speaker, Text: content})
	p.mu.Unlock()
	p.log.Info("dialogue", "speaker", speaker, "text", content)
}

// Lines returns a copy of everything shown so far.
func (p *LogPresenter) Lines() []Line {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Line, len(p.lines))
	copy(out, p.lines)
	return out
}
