package game

import "github.com/vovakirdan/stop-yourself/internal/core"

// Sample is one recorded player position.
type Sample struct {
	Frame  int       // Frames since the track's frame start
	Pos    core.Vec2 // Player center
	Jumped bool      // A jump was triggered on this frame
}

// RecordedTrack is the player's run as captured during Survive and
// replayed during Replay.
type RecordedTrack struct {
	frameStart      int
	samples         []Sample
	lastPlayedFrame int
	next            int // Index of the first sample not yet applied by playback
	locked          bool
	rebases         int
}

// NewRecordedTrack creates an empty, unlocked track.
func NewRecordedTrack() *RecordedTrack {
	return &RecordedTrack{samples: make([]Sample, 0, 256)}
}

// FrameStart returns the absolute frame that relative frames are measured from.
func (t *RecordedTrack) FrameStart() int {
	return t.frameStart
}

// Samples returns the recorded samples. Callers must not modify the slice.
func (t *RecordedTrack) Samples() []Sample {
	return t.samples
}

// Len returns the number of recorded samples.
func (t *RecordedTrack) Len() int {
	return len(t.samples)
}

// LastPlayedFrame returns the relative frame of the last sample applied by playback.
func (t *RecordedTrack) LastPlayedFrame() int {
	return t.lastPlayedFrame
}

// Locked reports whether new samples are rejected.
func (t *RecordedTrack) Locked() bool {
	return t.locked
}

// Rebases returns how many times the track was rebased for playback.
func (t *RecordedTrack) Rebases() int {
	return t.rebases
}

// Lock stops the track from accepting samples.
func (t *RecordedTrack) Lock() {
	t.locked = true
}

// Unlock lets the track accept samples again.
func (t *RecordedTrack) Unlock() {
	t.locked = false
}

// Clear drops all samples and resets the playback cursor.
// The lock state is left alone.
func (t *RecordedTrack) Clear() {
	t.samples = t.samples[:0]
	t.lastPlayedFrame = 0
	t.next = 0
}

// Rebase prepares the track for playback starting at frame.
// Samples are kept.
func (t *RecordedTrack) Rebase(frame int) {
	t.frameStart = frame
	t.lastPlayedFrame = 0
	t.next = 0
	t.rebases++
}

// Shift moves the frame start forward by span frames, so time spent paused
// does not show up in relative frames.
func (t *RecordedTrack) Shift(span int) {
	t.frameStart += span
}

// Record appends a sample captured at the absolute frame. The first sample
// after a clear sets the frame start. It returns false when the track is
// locked or the sample would go back in time.
func (t *RecordedTrack) Record(frame int, pos core.Vec2, jumped bool) bool {
	if t.locked {
		return false
	}
	if len(t.samples) == 0 {
		t.frameStart = frame
	}
	rel := frame - t.frameStart
	if n := len(t.samples); n > 0 && rel < t.samples[n-1].Frame {
		return false
	}
	t.samples = append(t.samples, Sample{Frame: rel, Pos: pos, Jumped: jumped})
	return true
}

// Play applies, in order, every sample whose relative frame is due at the
// absolute frame and that has not been applied yet. Samples behind the
// cursor are skipped, so a late call catches up without dropping or
// repeating any sample. It returns the number of samples applied.
func (t *RecordedTrack) Play(frame int, apply func(Sample)) int {
	target := frame - t.frameStart
	applied := 0
	for t.next < len(t.samples) {
		s := t.samples[t.next]
		if s.Frame < t.lastPlayedFrame {
			t.next++
			continue
		}
		if s.Frame > target {
			break
		}
		apply(s)
		t.lastPlayedFrame = s.Frame
		t.next++
		applied++
	}
	return applied
}

// Finished reports whether playback has applied every sample.
func (t *RecordedTrack) Finished() bool {
	return t.next >= len(t.samples)
}
