// Package sound mixes the audio of a running game: looped MIDI music
// rendered through a SoundFont synthesizer and one-shot or looped WAV
// effects. Failures degrade to silence; playback never stops the engine.
package sound

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/yukidoke/tsugi/pkg/assets"
	"github.com/yukidoke/tsugi/pkg/fileutil"
)

// SilenceTrack is the music index meaning no music.
const SilenceTrack = 0

// Mixer is the audio implementation of the engine's sound collaborator.
type Mixer struct {
	ctx   *audio.Context
	fsys  fileutil.FileSystem
	index *assets.Index
	log   *slog.Logger

	soundFont *meltysynth.SoundFont

	musicVolume float64
	sfxVolume   float64

	mu           sync.Mutex
	currentTrack int
	musicStream  *midiStream
	musicPlayer  *audio.Player
	sfxPlayer    *audio.Player
	loopPlayer   *audio.Player
}

// NewMixer creates a mixer. soundFontPath names the .sf2 file inside the
// game filesystem; when it cannot be loaded, music is disabled and effects
// still play.
func NewMixer(ctx *audio.Context, fsys fileutil.FileSystem, index *assets.Index, soundFontPath string, musicVolume, sfxVolume float64, log *slog.Logger) *Mixer {
	m := &Mixer{
		ctx:         ctx,
		fsys:        fsys,
		index:       index,
		log:         log,
		musicVolume: musicVolume,
		sfxVolume:   sfxVolume,
	}

	if soundFontPath == "" {
		log.Info("no soundfont shipped, music disabled")
		return m
	}
	data, err := fsys.ReadFile(soundFontPath)
	if err != nil {
		log.Warn("soundfont unavailable, music disabled", "path", soundFontPath, "error", err)
		return m
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		log.Warn("soundfont unreadable, music disabled", "path", soundFontPath, "error", err)
		return m
	}
	m.soundFont = sf
	return m
}

// ChangeTrack switches the music track. Switching to the already playing
// track is a no-op; track 0 stops the music.
func (m *Mixer) ChangeTrack(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx == m.currentTrack {
		return
	}
	m.stopMusicLocked()
	if idx == SilenceTrack {
		return
	}
	if err := m.startTrackLocked(idx); err != nil {
		m.log.Warn("music track failed", "track", idx, "error", err)
		return
	}
	m.currentTrack = idx
}

func (m *Mixer) startTrackLocked(idx int) error {
	if m.soundFont == nil {
		return fmt.Errorf("no soundfont loaded")
	}

	path := m.index.MusicPath(idx)
	data, err := m.fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	midi, err := meltysynth.NewMidiFile(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synth, err := meltysynth.NewSynthesizer(m.soundFont, settings)
	if err != nil {
		return fmt.Errorf("synthesizer: %w", err)
	}

	sequencer := meltysynth.NewMidiFileSequencer(synth)
	sequencer.Play(midi, true)

	m.musicStream = &midiStream{sequencer: sequencer}
	player, err := m.ctx.NewPlayer(m.musicStream)
	if err != nil {
		m.musicStream = nil
		return fmt.Errorf("player: %w", err)
	}
	player.SetVolume(m.musicVolume)
	player.Play()
	m.musicPlayer = player

	m.log.Info("music track started", "track", idx, "path", path)
	return nil
}

func (m *Mixer) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
}

func (m *Mixer) stopMusicLocked() {
	if m.musicStream != nil {
		m.musicStream.Stop()
		m.musicStream = nil
	}
	if m.musicPlayer != nil {
		m.musicPlayer.Close()
		m.musicPlayer = nil
	}
	m.currentTrack = SilenceTrack
}

// PlaySfx plays an effect once. A non-forced play is dropped while the
// previous effect is still sounding.
func (m *Mixer) PlaySfx(idx int, forced bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !forced && m.sfxPlayer != nil && m.sfxPlayer.IsPlaying() {
		m.log.Debug("effect dropped, channel busy", "sfx", idx)
		return
	}
	if m.sfxPlayer != nil {
		m.sfxPlayer.Close()
		m.sfxPlayer = nil
	}

	player, err := m.newWavPlayerLocked(idx)
	if err != nil {
		m.log.Warn("effect failed", "sfx", idx, "error", err)
		return
	}
	player.Play()
	m.sfxPlayer = player
}

// PlayLoopedSfx starts an effect that repeats until StopLoopedSfx.
func (m *Mixer) PlayLoopedSfx(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLoopLocked()

	path := m.index.SfxPath(idx)
	data, err := m.fsys.ReadFile(path)
	if err != nil {
		m.log.Warn("looped effect failed", "sfx", idx, "error", err)
		return
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		m.log.Warn("looped effect undecodable", "sfx", idx, "error", err)
		return
	}
	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := m.ctx.NewPlayer(loop)
	if err != nil {
		m.log.Warn("looped effect player failed", "sfx", idx, "error", err)
		return
	}
	player.SetVolume(m.sfxVolume)
	player.Play()
	m.loopPlayer = player
}

func (m *Mixer) StopLoopedSfx() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLoopLocked()
}

func (m *Mixer) stopLoopLocked() {
	if m.loopPlayer != nil {
		m.loopPlayer.Close()
		m.loopPlayer = nil
	}
}

// CurrentTrack returns the playing music index, SilenceTrack when none.
func (m *Mixer) CurrentTrack() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTrack
}

// Close releases all playback resources.
func (m *Mixer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
	m.stopLoopLocked()
	if m.sfxPlayer != nil {
		m.sfxPlayer.Close()
		m.sfxPlayer = nil
	}
}

func (m *Mixer) newWavPlayerLocked(idx int) (*audio.Player, error) {
	path := m.index.SfxPath(idx)
	data, err := m.fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	player, err := m.ctx.NewPlayer(stream)
	if err != nil {
		return nil, err
	}
	player.SetVolume(m.sfxVolume)
	return player, nil
}
