package sound

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMidiStreamSilenceWhenStopped(t *testing.T) {
	s := &midiStream{}
	s.Stop()

	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = 0xff
	}
	n, err := s.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %#x, want silence", i, b)
		}
	}
}

func TestMidiStreamNilSequencer(t *testing.T) {
	s := &midiStream{}
	buf := make([]byte, 16)
	n, err := s.Read(buf)
	if err != nil || n != len(buf) {
		t.Errorf("Read = %d, %v", n, err)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{-2, -1},
		{-1, -1},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{3, 1},
	}
	for _, tc := range cases {
		if got := clamp(tc.in, -1, 1); got != tc.want {
			t.Errorf("clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNullTrackSwitching(t *testing.T) {
	n := NewNull(testLogger())

	if n.CurrentTrack() != SilenceTrack {
		t.Fatalf("CurrentTrack = %d at start", n.CurrentTrack())
	}
	n.ChangeTrack(2)
	if n.CurrentTrack() != 2 {
		t.Errorf("CurrentTrack = %d", n.CurrentTrack())
	}
	n.ChangeTrack(SilenceTrack)
	if n.CurrentTrack() != SilenceTrack {
		t.Errorf("CurrentTrack = %d after silence", n.CurrentTrack())
	}
	n.ChangeTrack(1)
	n.StopMusic()
	if n.CurrentTrack() != SilenceTrack {
		t.Errorf("CurrentTrack = %d after stop", n.CurrentTrack())
	}
}

func TestNullBusyChannelDropsEffects(t *testing.T) {
	n := NewNull(testLogger())

	n.PlaySfx(1, false)
	n.PlaySfx(2, false) // dropped, channel busy
	n.PlaySfx(3, true)  // forced plays anyway

	if got := n.Played(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Played = %v", got)
	}
	if n.Dropped() != 1 {
		t.Errorf("Dropped = %d", n.Dropped())
	}

	n.FinishSfx()
	n.PlaySfx(2, false)
	if got := n.Played(); len(got) != 3 || got[2] != 2 {
		t.Errorf("Played = %v after channel freed", got)
	}
}

func TestNullLoopedSfx(t *testing.T) {
	n := NewNull(testLogger())

	n.PlayLoopedSfx(4)
	if !n.Looping() {
		t.Error("Looping = false after start")
	}
	n.StopLoopedSfx()
	if n.Looping() {
		t.Error("Looping = true after stop")
	}
}
