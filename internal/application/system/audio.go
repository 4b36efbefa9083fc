package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/domain/sound"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

// AllChannels selects every channel in StopPlayback.
const AllChannels = -1

var (
	// ErrNoFreeChannel is returned when every channel is playing.
	ErrNoFreeChannel = errors.New("no free audio channel")
	// ErrInvalidLoops is returned for a loop count below -1.
	ErrInvalidLoops = errors.New("invalid loop count")
	// ErrSampleReleased is returned when playing a freed sample.
	ErrSampleReleased = errors.New("sample released")
)

// AudioSystem plays samples on a fixed number of channels.
type AudioSystem struct {
	mixer    platform.Mixer
	channels []platform.Voice
	logger   *log.Logger
}

// NewAudioSystem creates an audio system with n channels.
func NewAudioSystem(mixer platform.Mixer, n int, logger *log.Logger) *AudioSystem {
	return &AudioSystem{
		mixer:    mixer,
		channels: make([]platform.Voice, n),
		logger:   logger,
	}
}

// Play starts s on the first free channel and returns it. loops is the
// number of repeats: 0 plays once, -1 repeats until stopped.
func (s *AudioSystem) Play(sample *sound.Sample, loops int) (int, error) {
	if loops < -1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLoops, loops)
	}
	native, ok := sample.Native()
	if !ok {
		return 0, ErrSampleReleased
	}

	ch := s.free()
	if ch < 0 {
		return 0, ErrNoFreeChannel
	}
	// a finished voice still holds its player
	s.stop(ch)
	voice, err := s.mixer.Play(native, loops)
	if err != nil {
		return 0, fmt.Errorf("play on channel %d: %w", ch, err)
	}
	s.channels[ch] = voice
	s.logger.Debug("sample playing", "channel", ch, "loops", loops)
	return ch, nil
}

func (s *AudioSystem) free() int {
	for i, v := range s.channels {
		if v == nil || !v.IsPlaying() {
			return i
		}
	}
	return -1
}

// Playing reports whether channel is busy.
func (s *AudioSystem) Playing(channel int) bool {
	if channel < 0 || channel >= len(s.channels) {
		return false
	}
	v := s.channels[channel]
	return v != nil && v.IsPlaying()
}

// Channels returns the number of channels.
func (s *AudioSystem) Channels() int {
	return len(s.channels)
}

// StopPlayback halts channel, or every channel for AllChannels.
// Unknown channels are ignored.
func (s *AudioSystem) StopPlayback(channel int) {
	if channel == AllChannels {
		for i := range s.channels {
			s.stop(i)
		}
		return
	}
	if channel >= 0 && channel < len(s.channels) {
		s.stop(channel)
	}
}

func (s *AudioSystem) stop(i int) {
	if v := s.channels[i]; v != nil {
		v.Stop()
		s.channels[i] = nil
	}
}

// Close halts every channel.
func (s *AudioSystem) Close() {
	s.StopPlayback(AllChannels)
}
