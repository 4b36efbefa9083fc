package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/harness/internal/domain/asset"
	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/infrastructure/logging"
)

type fakeTexture struct {
	w, h int
}

func (f *fakeTexture) Size() (int, int) { return f.w, f.h }

type drawCall struct {
	tex  graphics.NativeTexture
	src  graphics.Rect
	dst  graphics.Rect
	tint color.RGBA
}

// mockCanvas records canvas calls
type mockCanvas struct {
	clears int
	calls  []drawCall
}

func (m *mockCanvas) Clear() { m.clears++ }

func (m *mockCanvas) Draw(tex graphics.NativeTexture, src, dst graphics.Rect, tint color.RGBA) {
	m.calls = append(m.calls, drawCall{tex: tex, src: src, dst: dst, tint: tint})
}

func createTestTexture(w, h int) graphics.Texture {
	handle := asset.NewHandle[graphics.NativeTexture](&fakeTexture{w: w, h: h}, nil)
	return graphics.NewTexture(handle, graphics.Rect{W: w, H: h})
}

func createTestRenderer() (*Renderer, *mockCanvas) {
	r := New(logging.Discard())
	c := &mockCanvas{}
	r.Begin(c)
	return r, c
}

func TestRenderer_Draw(t *testing.T) {
	tex := createTestTexture(64, 32)
	red := color.RGBA{R: 255, A: 255}

	tests := []struct {
		name string
		opts []DrawOption
		src  graphics.Rect
		dst  graphics.Rect
		tint color.RGBA
	}{
		{
			name: "defaults to the top-left corner",
			src:  graphics.Rect{W: 64, H: 32},
			dst:  graphics.Rect{W: 64, H: 32},
			tint: White,
		},
		{
			name: "at position",
			opts: []DrawOption{At(10, 20)},
			src:  graphics.Rect{W: 64, H: 32},
			dst:  graphics.Rect{X: 10, Y: 20, W: 64, H: 32},
			tint: White,
		},
		{
			name: "destination wins over position",
			opts: []DrawOption{At(10, 20), Dst(graphics.Rect{X: 0, Y: 40, W: 240, H: 60})},
			src:  graphics.Rect{W: 64, H: 32},
			dst:  graphics.Rect{X: 0, Y: 40, W: 240, H: 60},
			tint: White,
		},
		{
			name: "source rect sizes the destination",
			opts: []DrawOption{Src(graphics.Rect{X: 8, Y: 8, W: 8, H: 8}), At(1, 2)},
			src:  graphics.Rect{X: 8, Y: 8, W: 8, H: 8},
			dst:  graphics.Rect{X: 1, Y: 2, W: 8, H: 8},
			tint: White,
		},
		{
			name: "tint",
			opts: []DrawOption{Tint(red)},
			src:  graphics.Rect{W: 64, H: 32},
			dst:  graphics.Rect{W: 64, H: 32},
			tint: red,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := createTestRenderer()

			r.Draw(tex, tt.opts...)

			require.Len(t, c.calls, 1)
			assert.Equal(t, tt.src, c.calls[0].src)
			assert.Equal(t, tt.dst, c.calls[0].dst)
			assert.Equal(t, tt.tint, c.calls[0].tint)
		})
	}
}

func TestRenderer_TintIsPerCall(t *testing.T) {
	r, c := createTestRenderer()
	tex := createTestTexture(8, 8)

	r.Draw(tex, Tint(color.RGBA{G: 255, A: 255}))
	r.Draw(tex)

	require.Len(t, c.calls, 2)
	assert.Equal(t, White, c.calls[1].tint)
}

func TestRenderer_Subtexture(t *testing.T) {
	r, c := createTestRenderer()
	sheet := createTestTexture(64, 64)

	r.Draw(sheet.Subtexture(16, 0, 16, 16), At(5, 5))

	require.Len(t, c.calls, 1)
	assert.Equal(t, graphics.Rect{X: 16, Y: 0, W: 16, H: 16}, c.calls[0].src)
	assert.Equal(t, graphics.Rect{X: 5, Y: 5, W: 16, H: 16}, c.calls[0].dst)
}

func TestRenderer_SkipsReleasedTextures(t *testing.T) {
	r, c := createTestRenderer()
	tex := createTestTexture(8, 8)
	tex.Handle().Release()

	r.Draw(tex)
	r.Draw(tex)
	r.Draw(graphics.Texture{})

	assert.Empty(t, c.calls)
	assert.Equal(t, 0, r.Calls())
}

func TestRenderer_DropsDrawsOutsideFrame(t *testing.T) {
	r, c := createTestRenderer()
	r.End()

	r.Draw(createTestTexture(8, 8))
	r.Clear()

	assert.Empty(t, c.calls)
	assert.Equal(t, 0, c.clears)
}

func TestRenderer_DrawText(t *testing.T) {
	font, err := graphics.NewBitmapFont(createTestTexture(600, 10), 6, 10, "")
	require.NoError(t, err)

	t.Run("center", func(t *testing.T) {
		r, c := createTestRenderer()

		r.DrawText(font, 120, 120, "Press 's' to start!", Align(graphics.AlignCenter))

		require.Len(t, c.calls, 19)
		assert.Equal(t, 120-57, c.calls[0].dst.X)
		assert.Equal(t, 115, c.calls[0].dst.Y)
		assert.Equal(t, 19, r.Calls())
	})

	t.Run("missing glyphs leave a gap", func(t *testing.T) {
		r, c := createTestRenderer()

		r.DrawText(font, 0, 0, "a~b", Tint(color.RGBA{B: 255, A: 255}))

		require.Len(t, c.calls, 2)
		assert.Equal(t, 12, c.calls[1].dst.X)
		assert.Equal(t, color.RGBA{B: 255, A: 255}, c.calls[1].tint)
	})

	t.Run("right", func(t *testing.T) {
		r, c := createTestRenderer()

		r.DrawText(font, 100, 0, "ab", Align(graphics.AlignRight))

		require.Len(t, c.calls, 2)
		assert.Equal(t, 88, c.calls[0].dst.X)
	})
}
