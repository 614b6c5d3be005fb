package sound

import (
	"log/slog"
	"sync"
)

// Null tracks audio state without producing sound. Used in headless runs
// and by tests; the busy-channel rule for effects is simulated so scripts
// behave the same with and without audio output.
type Null struct {
	log *slog.Logger

	mu           sync.Mutex
	currentTrack int
	sfxBusy      bool
	looping      bool
	played       []int
	dropped      int
}

func NewNull(log *slog.Logger) *Null {
	return &Null{log: log}
}

func (n *Null) ChangeTrack(idx int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if idx == n.currentTrack {
		return
	}
	n.currentTrack = idx
	n.log.Debug("sound: change track", "track", idx)
}

func (n *Null) StopMusic() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.currentTrack = SilenceTrack
	n.log.Debug("sound: stop music")
}

func (n *Null) PlaySfx(idx int, forced bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sfxBusy && !forced {
		n.dropped++
		return
	}
	n.sfxBusy = true
	n.played = append(n.played, idx)
	n.log.Debug("sound: play sfx", "sfx", idx, "forced", forced)
}

// FinishSfx marks the simulated effect channel idle again.
func (n *Null) FinishSfx() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sfxBusy = false
}

func (n *Null) PlayLoopedSfx(idx int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.looping = true
	n.played = append(n.played, idx)
	n.log.Debug("sound: play looped sfx", "sfx", idx)
}

func (n *Null) StopLoopedSfx() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.looping = false
	n.log.Debug("sound: stop looped sfx")
}

func (n *Null) CurrentTrack() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.currentTrack
}

func (n *Null) Looping() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.looping
}

// Played returns every effect index that actually played.
func (n *Null) Played() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int, len(n.played))
	copy(out, n.played)
	return out
}

// Dropped returns how many non-forced effects the busy channel discarded.
func (n *Null) Dropped() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dropped
}
