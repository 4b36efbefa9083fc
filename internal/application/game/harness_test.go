package game

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/harness/internal/application/render"
	"github.com/younwookim/harness/internal/application/replay"
	"github.com/younwookim/harness/internal/application/state"
	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/config"
	"github.com/younwookim/harness/internal/infrastructure/logging"
	"github.com/younwookim/harness/internal/infrastructure/platform/headless"
)

const interval = time.Second / 80

func createTestConfig(t *testing.T) (config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Resources.SearchPaths = []string{dir}
	return cfg, dir
}

func createTestHarness(t *testing.T, cfg config.Config, b *headless.Backend, opts ...Option) *Harness {
	t.Helper()
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	h, err := New(cfg, b, opts...)
	require.NoError(t, err)
	return h
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// writeWAV writes 10ms of 16-bit stereo silence at 44100 Hz.
func writeWAV(t *testing.T, path string) {
	t.Helper()
	const dataSize = 441 * 4
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	for _, v := range []any{
		[]byte("RIFF"), uint32(36 + dataSize), []byte("WAVE"),
		[]byte("fmt "), uint32(16), uint16(1), uint16(2),
		uint32(44100), uint32(44100 * 4), uint16(4), uint16(16),
		[]byte("data"), uint32(dataSize), make([]byte, dataSize),
	} {
		require.NoError(t, binary.Write(f, binary.LittleEndian, v))
	}
}

func TestHarness_Lifecycle(t *testing.T) {
	cfg, _ := createTestConfig(t)
	b := headless.New(headless.NewScript(headless.Step{Elapsed: interval}))
	h := createTestHarness(t, cfg, b)

	assert.Equal(t, state.StageInitialized, h.Stage())
	assert.Equal(t, []string{"init", "audio.open", "window.open", "renderer.open"}, b.Calls())

	require.NoError(t, h.Run())

	assert.Equal(t, state.StageStopped, h.Stage())
	assert.Equal(t, []string{
		"init", "audio.open", "window.open", "renderer.open",
		"window.show",
		"renderer.close", "window.close", "audio.close", "quit",
	}, b.Calls())

	assert.ErrorIs(t, h.Run(), ErrAlreadyRun)
}

func TestHarness_FixedStepScenario(t *testing.T) {
	cfg, _ := createTestConfig(t)
	b := headless.New(headless.NewScript(
		headless.Step{Elapsed: 5 * time.Millisecond},
		headless.Step{Elapsed: 3 * time.Millisecond},
		headless.Step{Elapsed: 2 * time.Millisecond},
		headless.Step{Elapsed: 11 * time.Millisecond},
	))
	h := createTestHarness(t, cfg, b)

	updates := 0
	draws := 0
	h.Update(func(dt float64) error {
		updates++
		assert.InDelta(t, 0.0125, dt, 1e-12)
		return nil
	})
	h.Draw(func(*render.Renderer) error {
		draws++
		return nil
	})

	require.NoError(t, h.Run())

	assert.Equal(t, 1, updates)
	assert.Equal(t, uint64(1), h.Steps())
	// four scripted iterations and the one that received the quit event
	assert.Equal(t, 5, b.Frames())
	assert.Equal(t, 5, draws)
	assert.Equal(t, 5, b.Draws())
}

func TestHarness_DrawCap(t *testing.T) {
	cfg, _ := createTestConfig(t)
	cfg.Loop.MaxFPS = 40
	b := headless.New(headless.NewScript(headless.Repeat(8, headless.Step{Elapsed: interval})...))
	h := createTestHarness(t, cfg, b)

	require.NoError(t, h.Run())

	assert.Equal(t, 9, b.Frames())
	assert.Equal(t, 5, b.Draws())
	assert.Equal(t, uint64(9), h.Steps())
}

func TestHarness_Quit(t *testing.T) {
	cfg, _ := createTestConfig(t)
	b := headless.New(headless.NewScript(
		headless.Repeat(10, headless.Step{Elapsed: interval, Keys: []input.KeyCode{input.KeyEscape}})...,
	))
	h := createTestHarness(t, cfg, b)

	seen := 0
	h.Update(func(float64) error {
		if h.Keys().Pressed(input.KeyEscape) {
			seen++
			h.Quit()
		}
		return nil
	})

	require.NoError(t, h.Run())

	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, b.Frames())
}

func TestHarness_RemoveHandlerAtRuntime(t *testing.T) {
	cfg, _ := createTestConfig(t)
	b := headless.New(headless.NewScript(headless.Repeat(4, headless.Step{Elapsed: interval})...))
	h := createTestHarness(t, cfg, b)

	debug := 0
	id := h.Update(func(float64) error {
		debug++
		return nil
	})
	h.Update(func(float64) error {
		if h.Steps() == 1 {
			h.RemoveHandler(id)
		}
		return nil
	})

	require.NoError(t, h.Run())

	assert.Equal(t, 2, debug)
}

func TestHarness_CallbackError(t *testing.T) {
	cfg, dir := createTestConfig(t)
	writePNG(t, filepath.Join(dir, "hero.png"), 4, 4)
	b := headless.New(headless.NewScript(headless.Repeat(5, headless.Step{Elapsed: interval})...))
	h := createTestHarness(t, cfg, b)

	tex, err := h.LoadTexture("hero.png")
	require.NoError(t, err)

	boom := errors.New("boom")
	h.Update(func(float64) error { return boom })

	err = h.Run()

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, state.StageStopped, h.Stage())
	assert.Contains(t, b.Calls(), "quit")
	assert.False(t, tex.Valid(), "resources are freed on the error path")
	assert.Equal(t, 0, b.Window().Renderer().Live())
}

func TestHarness_DrawsTextures(t *testing.T) {
	cfg, dir := createTestConfig(t)
	writePNG(t, filepath.Join(dir, "hero.png"), 16, 16)
	b := headless.New(headless.NewScript(headless.Step{Elapsed: interval}))
	h := createTestHarness(t, cfg, b)

	tex, err := h.LoadTexture("hero.png")
	require.NoError(t, err)
	h.Draw(func(r *render.Renderer) error {
		r.Draw(tex.Subtexture(8, 8, 8, 8), render.At(100, 50))
		return nil
	})

	require.NoError(t, h.Run())

	ops := b.Ops()
	require.GreaterOrEqual(t, len(ops), 2)
	assert.Equal(t, headless.OpClear, ops[0].Kind)
	assert.Equal(t, headless.OpDraw, ops[1].Kind)
	assert.Equal(t, 16, ops[1].Texture.W)
	assert.Equal(t, 100, ops[1].Dst.X)
	assert.Equal(t, 8, ops[1].Src.X)
}

func TestHarness_Controllers(t *testing.T) {
	cfg, _ := createTestConfig(t)
	cfg.Controller.Mapping["start"] = "KEY_ENTER"
	b := headless.New(headless.NewScript(
		headless.Step{Elapsed: interval, Buttons: map[int][]input.Action{0: {input.ActionStart}}},
		headless.Step{Elapsed: interval, Buttons: map[int][]input.Action{0: {input.ActionStart}}},
		headless.Step{Elapsed: interval},
	), headless.WithGamepad(0, "pad"))
	h := createTestHarness(t, cfg, b)

	require.True(t, h.HasControllers())
	controllers, err := h.Controllers()
	require.NoError(t, err)
	require.Len(t, controllers, 1)

	var pressed []bool
	h.Update(func(float64) error {
		pressed = append(pressed, h.Keys().Pressed(input.KeyEnter))
		return nil
	})

	require.NoError(t, h.Run())

	assert.Equal(t, []bool{true, true, false}, pressed)
	assert.True(t, b.Devices().Gamepad(0).Closed(), "controllers are closed on shutdown")
}

func TestHarness_ShutdownStopsAudioFirst(t *testing.T) {
	cfg, dir := createTestConfig(t)
	writeWAV(t, filepath.Join(dir, "loop.wav"))
	b := headless.New(headless.NewScript(headless.Step{Elapsed: interval}))
	h := createTestHarness(t, cfg, b)

	s, err := h.LoadSample("loop.wav")
	require.NoError(t, err)
	_, err = h.Play(s, -1)
	require.NoError(t, err)

	require.NoError(t, h.Run())

	voices := b.Mixer().Voices()
	require.Len(t, voices, 1)
	assert.True(t, voices[0].Stopped())
	assert.False(t, voices[0].StoppedAfterRelease(), "playback stops before the sample is released")
	assert.Equal(t, 1, voices[0].Sample.Releases)
}

func TestHarness_OptionalSetup(t *testing.T) {
	cfg, dir := createTestConfig(t)
	writePNG(t, filepath.Join(dir, "icon.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gamecontrollerdb.txt"), []byte("db"), 0o644))
	cfg.Window.Icon = "icon.png"
	cfg.Resources.GamepadDB = "gamecontrollerdb.txt"

	b := headless.New(headless.NewScript())
	h := createTestHarness(t, cfg, b)

	assert.NotNil(t, b.Window().Icon())
	assert.Equal(t, 0, h.Resources().Len(), "the icon is not registered")
	assert.Len(t, b.Devices().Mappings(), 1)

	t.Run("missing optional files are not fatal", func(t *testing.T) {
		cfg.Window.Icon = "missing.png"
		cfg.Resources.GamepadDB = "missing.txt"
		_, err := New(cfg, headless.New(headless.NewScript()), WithLogger(logging.Discard()))
		assert.NoError(t, err)
	})

	require.NoError(t, h.Close())
	assert.Equal(t, state.StageStopped, h.Stage())
}

func TestNew_Errors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg, _ := createTestConfig(t)
		cfg.Window.Width = 0
		b := headless.New(headless.NewScript())

		_, err := New(cfg, b, WithLogger(logging.Discard()))

		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Empty(t, b.Calls())
	})

	t.Run("partial init is torn down in reverse", func(t *testing.T) {
		cfg, _ := createTestConfig(t)
		b := headless.New(headless.NewScript(), headless.FailOn("window.open"))

		_, err := New(cfg, b, WithLogger(logging.Discard()))

		assert.ErrorIs(t, err, headless.ErrInjected)
		assert.Equal(t, []string{"init", "audio.open", "window.open", "audio.close", "quit"}, b.Calls())
	})
}

func TestHarness_RecordAndReplay(t *testing.T) {
	right := []input.KeyCode{input.KeyRight}
	script := headless.NewScript(
		headless.Step{Elapsed: 7 * time.Millisecond, Keys: right},
		headless.Step{Elapsed: 9 * time.Millisecond, Keys: right},
		headless.Step{Elapsed: 30 * time.Millisecond},
		headless.Step{Elapsed: 13 * time.Millisecond, Keys: right},
		headless.Step{Elapsed: 400 * time.Millisecond, Keys: right},
	)

	session := func(b *headless.Backend, opts ...Option) (int, uint64) {
		cfg, _ := createTestConfig(t)
		h := createTestHarness(t, cfg, b, opts...)
		x := 0
		h.Update(func(float64) error {
			if h.Keys().Pressed(input.KeyRight) {
				x++
			}
			return nil
		})
		require.NoError(t, h.Run())
		return x, h.Steps()
	}

	rec := replay.NewRecorder(80)
	x, steps := session(headless.New(script), WithRecorder(rec))
	require.Equal(t, 6, rec.FrameCount())

	replayer, err := replay.NewReplayer(rec.Data())
	require.NoError(t, err)
	replayedX, replayedSteps := session(headless.New(replayer))

	assert.Equal(t, x, replayedX)
	assert.Equal(t, steps, replayedSteps)
	assert.Positive(t, x)
}

func TestHarness_RecordAndReplayController(t *testing.T) {
	right := map[int][]input.Action{2: {input.ActionRight}}
	script := headless.NewScript(
		headless.Step{Elapsed: 7 * time.Millisecond, Buttons: right},
		headless.Step{Elapsed: 9 * time.Millisecond, Buttons: right},
		headless.Step{Elapsed: 30 * time.Millisecond},
		headless.Step{Elapsed: 13 * time.Millisecond, Keys: []input.KeyCode{input.KeyRight}},
		headless.Step{Elapsed: 400 * time.Millisecond, Buttons: right},
	)

	session := func(b *headless.Backend, opts ...Option) (int, uint64) {
		cfg, _ := createTestConfig(t)
		cfg.Controller.Mapping["right"] = "KEY_RIGHT"
		h := createTestHarness(t, cfg, b, opts...)
		_, err := h.Controllers()
		require.NoError(t, err)
		x := 0
		h.Update(func(float64) error {
			if h.Keys().Pressed(input.KeyRight) {
				x++
			}
			return nil
		})
		require.NoError(t, h.Run())
		return x, h.Steps()
	}

	rec := replay.NewRecorder(80)
	x, steps := session(headless.New(script, headless.WithGamepad(2, "pad")), WithRecorder(rec))
	require.Equal(t, 6, rec.FrameCount())

	data := rec.Data()
	assert.Equal(t, []int{2}, data.Gamepads())
	assert.Equal(t, map[int][]string{2: {"right"}}, data.Frames[0].B)
	assert.Empty(t, data.Frames[3].B, "keyboard keys are not recorded as buttons")
	assert.Equal(t, []string{"KEY_RIGHT"}, data.Frames[3].K)

	replayer, err := replay.NewReplayer(data)
	require.NoError(t, err)
	b := headless.New(replayer, headless.WithGamepad(2, "replay"))
	replayedX, replayedSteps := session(b)

	assert.Equal(t, x, replayedX)
	assert.Equal(t, steps, replayedSteps)
	assert.Positive(t, x)

	t.Run("without the gamepad connected the buttons are lost", func(t *testing.T) {
		replayer.Reset()
		lostX, _ := session(headless.New(replayer))
		assert.Less(t, lostX, x)
	})
}
