// Package sound holds decoded audio samples.
package sound

import (
	"time"

	"github.com/younwookim/harness/internal/domain/asset"
)

// NativeSample is PCM uploaded to the platform mixer.
type NativeSample interface {
	// Len returns the size of the PCM data in bytes.
	Len() int
}

// Sample is a decoded sound shared by every caller that loaded it.
type Sample struct {
	handle     *asset.Handle[NativeSample]
	sampleRate int
}

// NewSample wraps a native sample decoded at sampleRate.
func NewSample(h *asset.Handle[NativeSample], sampleRate int) *Sample {
	return &Sample{handle: h, sampleRate: sampleRate}
}

// Handle returns the shared native handle.
func (s *Sample) Handle() *asset.Handle[NativeSample] {
	return s.handle
}

// Native returns the native sample, or false once the owning resource was freed.
func (s *Sample) Native() (NativeSample, bool) {
	if s == nil || s.handle == nil {
		return nil, false
	}
	return s.handle.Get()
}

// Duration returns the play time of one pass over the sample.
// Samples are 16-bit stereo, four bytes per frame.
func (s *Sample) Duration() time.Duration {
	native, ok := s.Native()
	if !ok || s.sampleRate <= 0 {
		return 0
	}
	frames := native.Len() / 4
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}
