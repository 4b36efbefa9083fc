package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/harness/internal/domain/asset"
	"github.com/younwookim/harness/internal/domain/sound"
	"github.com/younwookim/harness/internal/infrastructure/logging"
	"github.com/younwookim/harness/internal/infrastructure/platform"
	"github.com/younwookim/harness/internal/infrastructure/platform/headless"
)

const testRate = 44100

func createTestAudio(t *testing.T, channels int) (*AudioSystem, *headless.Backend) {
	t.Helper()
	b := headless.New(headless.NewScript())
	mixer, err := b.OpenAudio(platform.AudioConfig{Channels: channels, SampleRate: testRate})
	require.NoError(t, err)
	return NewAudioSystem(mixer, channels, logging.Discard()), b
}

// createTestSample returns a sample playing for d.
func createTestSample(t *testing.T, b *headless.Backend, d time.Duration) *sound.Sample {
	t.Helper()
	frames := int(d * testRate / time.Second)
	native, err := b.Mixer().NewSample(make([]byte, frames*4))
	require.NoError(t, err)
	h := asset.NewHandle(native, b.Mixer().ReleaseSample)
	return sound.NewSample(h, testRate)
}

func TestAudioSystem_Play(t *testing.T) {
	t.Run("first free channel", func(t *testing.T) {
		audio, b := createTestAudio(t, 2)
		s := createTestSample(t, b, 100*time.Millisecond)

		ch, err := audio.Play(s, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, ch)

		ch, err = audio.Play(s, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, ch)

		_, err = audio.Play(s, 0)
		assert.ErrorIs(t, err, ErrNoFreeChannel)

		b.Clock().Sleep(100 * time.Millisecond)
		ch, err = audio.Play(s, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, ch, "finished channels are reused")

		voices := b.Mixer().Voices()
		require.Len(t, voices, 3)
		assert.Equal(t, 1, voices[0].Stops(), "the finished voice is stopped before its channel is reused")
		assert.False(t, voices[1].Stopped())
		assert.False(t, voices[2].Stopped())
	})

	t.Run("loops", func(t *testing.T) {
		audio, b := createTestAudio(t, 2)
		s := createTestSample(t, b, 100*time.Millisecond)

		ch, err := audio.Play(s, 2)
		require.NoError(t, err)

		b.Clock().Sleep(250 * time.Millisecond)
		assert.True(t, audio.Playing(ch), "plays loops+1 times")
		b.Clock().Sleep(50 * time.Millisecond)
		assert.False(t, audio.Playing(ch))

		forever, err := audio.Play(s, -1)
		require.NoError(t, err)
		b.Clock().Sleep(time.Hour)
		assert.True(t, audio.Playing(forever))
	})

	t.Run("invalid loops", func(t *testing.T) {
		audio, b := createTestAudio(t, 1)
		_, err := audio.Play(createTestSample(t, b, time.Millisecond), -2)
		assert.ErrorIs(t, err, ErrInvalidLoops)
	})

	t.Run("released sample", func(t *testing.T) {
		audio, b := createTestAudio(t, 1)
		s := createTestSample(t, b, time.Millisecond)
		s.Handle().Release()

		_, err := audio.Play(s, 0)
		assert.ErrorIs(t, err, ErrSampleReleased)
	})

	t.Run("mixer failure", func(t *testing.T) {
		b := headless.New(headless.NewScript(), headless.FailOn("audio.play"))
		mixer, err := b.OpenAudio(platform.AudioConfig{Channels: 1, SampleRate: testRate})
		require.NoError(t, err)
		audio := NewAudioSystem(mixer, 1, logging.Discard())

		_, err = audio.Play(createTestSample(t, b, time.Millisecond), 0)
		assert.ErrorIs(t, err, headless.ErrInjected)
		assert.False(t, audio.Playing(0))
	})
}

func TestAudioSystem_StopPlayback(t *testing.T) {
	audio, b := createTestAudio(t, 3)
	s := createTestSample(t, b, time.Second)
	for i := 0; i < 3; i++ {
		_, err := audio.Play(s, -1)
		require.NoError(t, err)
	}

	audio.StopPlayback(1)
	assert.True(t, audio.Playing(0))
	assert.False(t, audio.Playing(1))
	assert.True(t, b.Mixer().Voices()[1].Stopped())

	audio.StopPlayback(7)
	assert.True(t, audio.Playing(2))

	audio.StopPlayback(AllChannels)
	for i := 0; i < audio.Channels(); i++ {
		assert.False(t, audio.Playing(i))
	}

	t.Run("close halts everything", func(t *testing.T) {
		_, err := audio.Play(s, -1)
		require.NoError(t, err)
		audio.Close()
		assert.False(t, audio.Playing(0))
	})
}
