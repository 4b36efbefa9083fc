package ebitenplatform

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/pkg/errors"

	"github.com/younwookim/harness/internal/domain/sound"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var (
	_ platform.Mixer = new(Mixer)
	_ platform.Voice = new(voice)
)

// Mixer plays PCM through the Ebitengine audio context.
type Mixer struct {
	ctx    *audio.Context
	voices []*voice
}

type sample struct {
	pcm []byte
}

func (s *sample) Len() int {
	return len(s.pcm)
}

type voice struct {
	player *audio.Player
}

func (v *voice) IsPlaying() bool {
	return v.player != nil && v.player.IsPlaying()
}

func (v *voice) Stop() {
	if v.player == nil {
		return
	}
	v.player.Pause()
	_ = v.player.Close()
	v.player = nil
}

// NewSample implements platform.Mixer.
func (m *Mixer) NewSample(pcm []byte) (sound.NativeSample, error) {
	if len(pcm)%4 != 0 {
		return nil, errors.Errorf("pcm length %d is not a whole number of stereo frames", len(pcm))
	}
	return &sample{pcm: pcm}, nil
}

// ReleaseSample implements platform.Mixer.
func (m *Mixer) ReleaseSample(s sound.NativeSample) {
	if smp, ok := s.(*sample); ok {
		smp.pcm = nil
	}
}

// Play implements platform.Mixer.
func (m *Mixer) Play(s sound.NativeSample, loops int) (platform.Voice, error) {
	smp, ok := s.(*sample)
	if !ok {
		return nil, errors.Errorf("foreign sample %T", s)
	}
	if smp.pcm == nil {
		return nil, errors.New("sample released")
	}

	var player *audio.Player
	switch {
	case loops < 0:
		loop := audio.NewInfiniteLoop(bytes.NewReader(smp.pcm), int64(len(smp.pcm)))
		p, err := m.ctx.NewPlayer(loop)
		if err != nil {
			return nil, errors.Wrap(err, "new looping player")
		}
		player = p
	case loops == 0:
		player = m.ctx.NewPlayerFromBytes(smp.pcm)
	default:
		player = m.ctx.NewPlayerFromBytes(bytes.Repeat(smp.pcm, loops+1))
	}

	player.Play()
	v := &voice{player: player}
	m.prune()
	m.voices = append(m.voices, v)
	return v, nil
}

// prune closes and drops finished voices.
func (m *Mixer) prune() {
	live := m.voices[:0]
	for _, v := range m.voices {
		if v.IsPlaying() {
			live = append(live, v)
			continue
		}
		v.Stop()
	}
	clear(m.voices[len(live):])
	m.voices = live
}

// Close implements platform.Mixer. It stops every voice; the context itself lives for the process.
func (m *Mixer) Close() error {
	for _, v := range m.voices {
		v.Stop()
	}
	m.voices = nil
	return nil
}
