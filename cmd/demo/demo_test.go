package main

import (
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/harness/internal/application/game"
	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/config"
	"github.com/younwookim/harness/internal/infrastructure/logging"
	"github.com/younwookim/harness/internal/infrastructure/platform/headless"
)

const interval = time.Second / 80

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

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

func createTestAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "background.png"), screenW, screenH)
	writePNG(t, filepath.Join(dir, "title.png"), 240, 60)
	writePNG(t, filepath.Join(dir, "sprites.png"), 32, 16)
	writePNG(t, filepath.Join(dir, "font.png"), 16*7, 5*13)
	writeWAV(t, filepath.Join(dir, "coin.wav"))
	return dir
}

func createTestDemo(t *testing.T, steps ...headless.Step) (*Demo, *game.Harness, *headless.Backend) {
	t.Helper()
	cfg := config.Default()
	cfg.Resources.SearchPaths = []string{createTestAssets(t)}

	b := headless.New(headless.NewScript(steps...))
	h, err := game.New(cfg, b, game.WithLogger(logging.Discard()))
	require.NoError(t, err)
	d, err := NewDemo(h, logging.Discard())
	require.NoError(t, err)
	return d, h, b
}

func held(k ...input.KeyCode) headless.Step {
	return headless.Step{Elapsed: interval, Keys: k}
}

func TestDemo_MenuQuit(t *testing.T) {
	_, h, b := createTestDemo(t, held(input.KeyEscape), held(input.KeyEscape), held())

	require.NoError(t, h.Run())

	assert.Equal(t, 1, b.Frames())
	assert.Equal(t, 0, b.Window().Renderer().Live(), "assets are freed on shutdown")
}

func TestDemo_MenuToPlayAndBack(t *testing.T) {
	d, h, _ := createTestDemo(t,
		held(),
		held(input.KeyS),
		held(input.KeyS),
		held(),
		held(input.KeyEscape),
		held(),
	)

	var depth []int
	h.Update(func(float64) error {
		depth = append(depth, d.Scenes().Len())
		return nil
	})

	require.NoError(t, h.Run())

	require.GreaterOrEqual(t, len(depth), 6)
	// a held S starts one game; Escape in play returns to the menu without quitting
	assert.Equal(t, []int{1, 2, 2, 2, 1, 1}, depth[:6])
}

func TestDemo_DebugToggle(t *testing.T) {
	d, h, _ := createTestDemo(t,
		held(input.KeyD),
		held(input.KeyD),
		held(input.KeyD),
		held(),
		held(input.KeyD),
	)

	var on []bool
	h.Update(func(float64) error {
		on = append(on, d.DebugOn())
		return nil
	})

	require.NoError(t, h.Run())

	require.GreaterOrEqual(t, len(on), 5)
	assert.Equal(t, []bool{true, true, true, true, false}, on[:5])
}

func TestDemo_CollectGoodie(t *testing.T) {
	d, h, b := createTestDemo(t, held(input.KeyS), held())

	var scores []int
	h.Update(func(float64) error {
		if p, ok := d.Scenes().Current().(*play); ok && len(scores) == 0 {
			p.items = []point{p.player}
		}
		scores = append(scores, d.Score())
		return nil
	})

	require.NoError(t, h.Run())

	require.GreaterOrEqual(t, len(scores), 2)
	assert.Equal(t, 0, scores[0])
	assert.Equal(t, 1, scores[1])
	assert.NotEmpty(t, b.Mixer().Voices(), "the coin sound is played")
}

func TestDemo_Draw(t *testing.T) {
	_, h, b := createTestDemo(t, held())

	require.NoError(t, h.Run())

	assert.Positive(t, b.Draws())
	ops := b.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, headless.OpClear, ops[0].Kind)
	assert.Greater(t, len(ops), 2, "background, title and text are drawn")
}

func TestDemo_MissingAssets(t *testing.T) {
	cfg := config.Default()
	cfg.Resources.SearchPaths = []string{t.TempDir()}
	h, err := game.New(cfg, headless.New(headless.NewScript()), game.WithLogger(logging.Discard()))
	require.NoError(t, err)
	defer h.Close()

	_, err = NewDemo(h, logging.Discard())

	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, screenW, cfg.Window.Width)
	assert.Equal(t, screenH, cfg.Window.Height)
	assert.Equal(t, 80, cfg.Loop.UpdateRate)

	t.Run("toml file", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join("configs", "harness.toml"))
		require.NoError(t, err)
		assert.Equal(t, screenW, cfg.Window.Width)
	})
}
