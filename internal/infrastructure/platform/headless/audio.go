package headless

import (
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/harness/internal/domain/sound"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var (
	_ platform.Mixer     = new(Mixer)
	_ platform.Voice     = new(Voice)
	_ sound.NativeSample = new(Sample)
)

// Mixer plays samples against the virtual clock.
type Mixer struct {
	backend    *Backend
	sampleRate int
	samples    []*Sample
	voices     []*Voice
	closed     bool
}

// Sample is uploaded PCM.
type Sample struct {
	PCM      []byte
	Releases int
}

// Len implements sound.NativeSample.
func (s *Sample) Len() int {
	return len(s.PCM)
}

// Voice is a sample playing until its length has passed on the virtual clock.
type Voice struct {
	clock    *Clock
	Sample   *Sample
	Loops    int
	started  time.Duration
	length   time.Duration
	stopped  bool
	stops    int
	released bool
}

// NewSample implements platform.Mixer.
func (m *Mixer) NewSample(pcm []byte) (sound.NativeSample, error) {
	if m.closed {
		return nil, errors.New("mixer closed")
	}
	s := &Sample{PCM: pcm}
	m.samples = append(m.samples, s)
	return s, nil
}

// ReleaseSample implements platform.Mixer.
func (m *Mixer) ReleaseSample(s sound.NativeSample) {
	if sample, ok := s.(*Sample); ok {
		sample.Releases++
	}
}

// Play implements platform.Mixer.
func (m *Mixer) Play(s sound.NativeSample, loops int) (platform.Voice, error) {
	sample, ok := s.(*Sample)
	if !ok {
		return nil, fmt.Errorf("foreign sample %T", s)
	}
	if m.backend.failures["audio.play"] {
		return nil, fmt.Errorf("audio.play: %w", ErrInjected)
	}

	v := &Voice{
		clock:   m.backend.clock,
		Sample:  sample,
		Loops:   loops,
		started: m.backend.clock.Now(),
		length:  -1,
	}
	if loops >= 0 && m.sampleRate > 0 {
		once := time.Duration(len(sample.PCM)/4) * time.Second / time.Duration(m.sampleRate)
		v.length = once * time.Duration(loops+1)
	}
	m.voices = append(m.voices, v)
	return v, nil
}

// Close implements platform.Mixer.
func (m *Mixer) Close() error {
	m.closed = true
	return m.backend.record("audio.close")
}

// Samples returns every sample uploaded so far.
func (m *Mixer) Samples() []*Sample {
	return append([]*Sample(nil), m.samples...)
}

// Voices returns every voice started so far.
func (m *Mixer) Voices() []*Voice {
	return append([]*Voice(nil), m.voices...)
}

// IsPlaying implements platform.Voice.
func (v *Voice) IsPlaying() bool {
	if v.stopped {
		return false
	}
	if v.length < 0 {
		return true
	}
	return v.clock.Now()-v.started < v.length
}

// Stop implements platform.Voice.
func (v *Voice) Stop() {
	if !v.stopped {
		v.released = v.Sample.Releases > 0
	}
	v.stopped = true
	v.stops++
}

// Stopped reports whether Stop was called.
func (v *Voice) Stopped() bool {
	return v.stopped
}

// Stops returns the number of Stop calls.
func (v *Voice) Stops() int {
	return v.stops
}

// StoppedAfterRelease reports whether the voice was first stopped after its sample was released.
func (v *Voice) StoppedAfterRelease() bool {
	return v.released
}
