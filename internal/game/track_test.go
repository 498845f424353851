package game

import (
	"testing"

	"github.com/vovakirdan/stop-yourself/internal/core"
)

func recordFrames(tr *RecordedTrack, from, to int) {
	for f := from; f < to; f++ {
		tr.Record(f, core.V(float64(f), 0), f%5 == 0)
	}
}

func TestRecordUsesFirstSampleAsFrameStart(t *testing.T) {
	tr := NewRecordedTrack()
	tr.Record(100, core.V(1, 1), false)
	tr.Record(103, core.V(2, 1), true)

	if tr.FrameStart() != 100 {
		t.Errorf("FrameStart() = %d, expected 100", tr.FrameStart())
	}
	got := tr.Samples()
	if len(got) != 2 || got[0].Frame != 0 || got[1].Frame != 3 {
		t.Fatalf("samples = %+v, expected relative frames 0 and 3", got)
	}
	if !got[1].Jumped {
		t.Error("second sample should carry the jump flag")
	}
}

func TestRecordRejections(t *testing.T) {
	tr := NewRecordedTrack()
	tr.Lock()
	if tr.Record(0, core.V(0, 0), false) {
		t.Error("locked track accepted a sample")
	}

	tr.Unlock()
	tr.Record(10, core.V(0, 0), false)
	tr.Record(12, core.V(0, 0), false)
	if tr.Record(11, core.V(0, 0), false) {
		t.Error("track accepted a sample going back in time")
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", tr.Len())
	}

	tr.Clear()
	if tr.Len() != 0 || tr.LastPlayedFrame() != 0 {
		t.Errorf("Clear() left len=%d last=%d", tr.Len(), tr.LastPlayedFrame())
	}
	tr.Record(40, core.V(0, 0), false)
	if tr.FrameStart() != 40 {
		t.Errorf("FrameStart() after clear = %d, expected 40", tr.FrameStart())
	}
}

func TestPlayCatchesUpWithoutLossOrRepeats(t *testing.T) {
	tr := NewRecordedTrack()
	recordFrames(tr, 0, 10)
	tr.Rebase(50)

	var played []int
	apply := func(s Sample) { played = append(played, s.Frame) }

	steps := []struct {
		frame int
		want  int
	}{
		{50, 1},  // Frame 0
		{52, 2},  // Frames 1 and 2 after two skipped ticks
		{52, 0},  // Same frame again applies nothing
		{53, 1},  // Boundary sample exactly once
		{200, 6}, // Remaining frames
		{201, 0},
	}
	last := -1
	for _, st := range steps {
		if n := tr.Play(st.frame, apply); n != st.want {
			t.Errorf("Play(%d) = %d, expected %d", st.frame, n, st.want)
		}
		if tr.LastPlayedFrame() < last {
			t.Errorf("LastPlayedFrame() went back from %d to %d", last, tr.LastPlayedFrame())
		}
		last = tr.LastPlayedFrame()
	}

	if len(played) != 10 {
		t.Fatalf("played %d samples, expected 10", len(played))
	}
	for i, f := range played {
		if f != i {
			t.Errorf("played[%d] = %d, expected %d", i, f, i)
		}
	}
	if !tr.Finished() {
		t.Error("track should be finished")
	}
}

func TestPlayEmptyTrack(t *testing.T) {
	tr := NewRecordedTrack()
	tr.Rebase(5)
	if n := tr.Play(100, func(Sample) { t.Error("apply called on empty track") }); n != 0 {
		t.Errorf("Play() = %d, expected 0", n)
	}
	if tr.LastPlayedFrame() != 0 {
		t.Errorf("LastPlayedFrame() = %d, expected 0", tr.LastPlayedFrame())
	}
}

func TestRebaseKeepsSamples(t *testing.T) {
	tr := NewRecordedTrack()
	recordFrames(tr, 3, 8)
	tr.Play(1000, func(Sample) {})

	tr.Rebase(70)
	if tr.FrameStart() != 70 || tr.LastPlayedFrame() != 0 || tr.Len() != 5 {
		t.Errorf("after Rebase: start=%d last=%d len=%d", tr.FrameStart(), tr.LastPlayedFrame(), tr.Len())
	}
	if tr.Rebases() != 1 {
		t.Errorf("Rebases() = %d, expected 1", tr.Rebases())
	}
	if n := tr.Play(74, func(Sample) {}); n != 5 {
		t.Errorf("Play() after rebase = %d, expected 5", n)
	}
}

func TestPauseShiftKeepsRelativeFramesContinuous(t *testing.T) {
	var clock FrameClock
	tr := NewRecordedTrack()

	for i := 0; i < 10; i++ {
		tr.Record(clock.Now(), core.V(0, 0), false)
		clock.Advance()
	}
	clock.Pause()
	for i := 0; i < 5; i++ {
		clock.Advance()
	}
	tr.Shift(clock.Resume())
	for i := 0; i < 5; i++ {
		tr.Record(clock.Now(), core.V(0, 0), false)
		clock.Advance()
	}

	for i, s := range tr.Samples() {
		if s.Frame != i {
			t.Errorf("sample %d has frame %d, expected %d", i, s.Frame, i)
		}
	}
}
