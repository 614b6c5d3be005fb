// Package assets maintains the name-to-index tables scripts refer to:
// characters (with per-character outfits and emotions), backgrounds, music
// tracks and sound effects. Collaborators work in indices; scripts work in
// names; this registry is the boundary between the two.
//
// Lookups never fail. An unresolved name degrades to index 0 and bumps an
// observable fallback counter, so authoring mistakes are diagnosable without
// halting playback.
package assets

import (
	"bufio"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"

	"github.com/yukidoke/tsugi/pkg/fileutil"
)

// NarratorIndex is the reserved speaker index for narrative text and for any
// speaker name that does not resolve.
const NarratorIndex = 0

// Character is one entry of the character table.
type Character struct {
	Name     string
	Outfits  []string
	Emotions []string
}

// Index holds every name table for one game.
type Index struct {
	Characters  []Character
	Backgrounds []string
	MusicNames  []string // index 0 is silence
	SfxNames    []string

	fallbacks atomic.Uint64
	log       *slog.Logger
}

// LoadIndex reads all index files from the game filesystem.
func LoadIndex(fsys fileutil.FileSystem, log *slog.Logger) (*Index, error) {
	idx := &Index{log: log}

	charNames, err := readIndexFile(fsys, "graphics/characters/index.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load character index: %w", err)
	}
	for _, name := range charNames {
		ch := Character{Name: name}
		// Per-character outfit and emotion tables are optional; the narrator
		// entry typically has neither.
		ch.Outfits, _ = readIndexFile(fsys, path.Join("graphics/characters", name, "outfits.txt"))
		ch.Emotions, _ = readIndexFile(fsys, path.Join("graphics/characters", name, "emotions.txt"))
		idx.Characters = append(idx.Characters, ch)
	}

	idx.Backgrounds, err = readIndexFile(fsys, "graphics/backgrounds/index.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load background index: %w", err)
	}

	idx.MusicNames, err = readIndexFile(fsys, "sound/music/index.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load music index: %w", err)
	}

	idx.SfxNames, err = readIndexFile(fsys, "sound/sfx/index.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load sfx index: %w", err)
	}

	return idx, nil
}

// NewIndex builds an Index from in-memory tables. Used by tests and by the
// embedded fallback game.
func NewIndex(characters []Character, backgrounds, music, sfx []string, log *slog.Logger) *Index {
	return &Index{
		Characters:  characters,
		Backgrounds: backgrounds,
		MusicNames:  music,
		SfxNames:    sfx,
		log:         log,
	}
}

// CharacterIndex resolves a character name. Unknown names fall back to the
// narrator.
func (idx *Index) CharacterIndex(name string) int {
	for i, ch := range idx.Characters {
		if ch.Name == name {
			return i
		}
	}
	idx.fallback("character", name)
	return NarratorIndex
}

// HasCharacter reports whether name resolves without consuming a fallback.
// The classifier uses this to tell speech from free-form text.
func (idx *Index) HasCharacter(name string) bool {
	for _, ch := range idx.Characters {
		if ch.Name == name {
			return true
		}
	}
	return false
}

// CharacterName returns the display name for a speaker index.
func (idx *Index) CharacterName(i int) string {
	if i < 0 || i >= len(idx.Characters) {
		return ""
	}
	return idx.Characters[i].Name
}

// OutfitIndex resolves an outfit name for the given character.
func (idx *Index) OutfitIndex(charIdx int, name string) int {
	if charIdx >= 0 && charIdx < len(idx.Characters) {
		for i, outfit := range idx.Characters[charIdx].Outfits {
			if outfit == name {
				return i
			}
		}
	}
	idx.fallback("outfit", name)
	return 0
}

// EmotionIndex resolves an emotion name for the given character.
func (idx *Index) EmotionIndex(charIdx int, name string) int {
	if charIdx >= 0 && charIdx < len(idx.Characters) {
		for i, emotion := range idx.Characters[charIdx].Emotions {
			if emotion == name {
				return i
			}
		}
	}
	idx.fallback("emotion", name)
	return 0
}

// BackgroundIndex resolves a background name.
func (idx *Index) BackgroundIndex(name string) int {
	for i, bg := range idx.Backgrounds {
		if bg == name {
			return i
		}
	}
	idx.fallback("background", name)
	return 0
}

// MusicIndex resolves a music track name. Index 0 is silence.
func (idx *Index) MusicIndex(name string) int {
	for i, track := range idx.MusicNames {
		if track == name {
			return i
		}
	}
	idx.fallback("music", name)
	return 0
}

// SfxIndex resolves a sound effect name.
func (idx *Index) SfxIndex(name string) int {
	for i, sfx := range idx.SfxNames {
		if sfx == name {
			return i
		}
	}
	idx.fallback("sfx", name)
	return 0
}

// SpritePath composes the on-disk path for a character sprite:
// graphics/characters/<character>/<outfit>/<emotion>.png
func (idx *Index) SpritePath(charIdx, outfitIdx, emotionIdx int) string {
	if charIdx < 0 || charIdx >= len(idx.Characters) {
		return ""
	}
	ch := idx.Characters[charIdx]
	outfit := nameAt(ch.Outfits, outfitIdx)
	emotion := nameAt(ch.Emotions, emotionIdx)
	return path.Join("graphics/characters", ch.Name, outfit, emotion+".png")
}

// BackgroundPath composes the on-disk path for a background texture.
func (idx *Index) BackgroundPath(bgIdx int) string {
	if bgIdx < 0 || bgIdx >= len(idx.Backgrounds) {
		return ""
	}
	return path.Join("graphics/backgrounds", idx.Backgrounds[bgIdx]+".png")
}

// MusicPath composes the on-disk path for a music track. Index 0 is
// silence and has no path.
func (idx *Index) MusicPath(musicIdx int) string {
	if musicIdx <= 0 || musicIdx >= len(idx.MusicNames) {
		return ""
	}
	return path.Join("sound/music", idx.MusicNames[musicIdx]+".mid")
}

// SfxPath composes the on-disk path for a sound effect.
func (idx *Index) SfxPath(sfxIdx int) string {
	if sfxIdx < 0 || sfxIdx >= len(idx.SfxNames) {
		return ""
	}
	return path.Join("sound/sfx", idx.SfxNames[sfxIdx]+".wav")
}

// FallbackCount returns how many name lookups degraded to a default index.
func (idx *Index) FallbackCount() uint64 {
	return idx.fallbacks.Load()
}

func (idx *Index) fallback(kind, name string) {
	idx.fallbacks.Add(1)
	if idx.log != nil {
		idx.log.Warn("unresolved name, using default index", "kind", kind, "name", name)
	}
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) {
		if len(names) > 0 {
			return names[0]
		}
		return ""
	}
	return names[i]
}

// readIndexFile reads a line-oriented index file. Blank lines and lines
// starting with ';' are skipped.
func readIndexFile(fsys fileutil.FileSystem, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}

	return entries, nil
}
