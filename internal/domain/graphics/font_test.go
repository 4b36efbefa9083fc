package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/harness/internal/domain/asset"
)

type fakeTexture struct {
	w, h int
}

func (f *fakeTexture) Size() (int, int) { return f.w, f.h }

func createTestTexture(w, h int) Texture {
	handle := asset.NewHandle[NativeTexture](&fakeTexture{w: w, h: h}, nil)
	return NewTexture(handle, Rect{W: w, H: h})
}

func TestNewBitmapFont(t *testing.T) {
	t.Run("defaults the font map", func(t *testing.T) {
		font, err := NewBitmapFont(createTestTexture(60, 10), 6, 10, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultFontMap, font.FontMap())
	})

	t.Run("rejects empty cells", func(t *testing.T) {
		_, err := NewBitmapFont(createTestTexture(60, 10), 0, 10, "")
		assert.ErrorIs(t, err, ErrInvalidGlyphSize)
	})
}

func TestBitmapFont_Source(t *testing.T) {
	// 4 cells per row, two rows
	font, err := NewBitmapFont(createTestTexture(24, 20), 6, 10, "abcdefgh")
	require.NoError(t, err)

	src, ok := font.Source('b')
	require.True(t, ok)
	assert.Equal(t, Rect{X: 6, Y: 0, W: 6, H: 10}, src)

	src, ok = font.Source('f')
	require.True(t, ok)
	assert.Equal(t, Rect{X: 6, Y: 10, W: 6, H: 10}, src)

	_, ok = font.Source('z')
	assert.False(t, ok)
}

func TestBitmapFont_Layout(t *testing.T) {
	font, err := NewBitmapFont(createTestTexture(600, 10), 6, 10, "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		align  Align
		firstX int
		firstY int
	}{
		{"left", AlignLeft, 120, 120},
		{"center", AlignCenter, 120 - 9, 120 - 5},
		{"right", AlignRight, 120 - 18, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs := font.Layout(120, 120, "abc", tt.align)
			require.Len(t, glyphs, 3)
			assert.Equal(t, tt.firstX, glyphs[0].Dst.X)
			assert.Equal(t, tt.firstY, glyphs[0].Dst.Y)
			assert.Equal(t, tt.firstX+12, glyphs[2].Dst.X)
		})
	}
}

func TestBitmapFont_LayoutSkipsMissingGlyphs(t *testing.T) {
	font, err := NewBitmapFont(createTestTexture(600, 10), 6, 10, "ab")
	require.NoError(t, err)

	glyphs := font.Layout(0, 0, "a#b", AlignLeft)

	require.Len(t, glyphs, 2)
	assert.Equal(t, 0, glyphs[0].Dst.X)
	assert.Equal(t, 12, glyphs[1].Dst.X, "missing glyph still advances the cursor")
	assert.Equal(t, Rect{X: 6, W: 6, H: 10}, glyphs[1].Src)
}

func TestBitmapFont_OffsetSheet(t *testing.T) {
	sheet := createTestTexture(200, 200).Subtexture(100, 50, 60, 10)
	font, err := NewBitmapFont(sheet, 6, 10, "ab")
	require.NoError(t, err)

	src, ok := font.Source('b')
	require.True(t, ok)
	assert.Equal(t, Rect{X: 106, Y: 50, W: 6, H: 10}, src)
}

func TestAlign_String(t *testing.T) {
	assert.Equal(t, "left", AlignLeft.String())
	assert.Equal(t, "center", AlignCenter.String())
	assert.Equal(t, "right", AlignRight.String())
	assert.Equal(t, "unknown", Align(9).String())
}

func TestBMFont_Layout(t *testing.T) {
	page := createTestTexture(128, 128)
	font := &BMFont{
		LineHeight: 12,
		Base:       10,
		Pages:      []Texture{page},
		Chars: map[rune]BMChar{
			'A': {Rect: Rect{X: 0, Y: 0, W: 8, H: 10}, XAdvance: 9},
			'V': {Rect: Rect{X: 8, Y: 0, W: 8, H: 10}, XOffset: 1, YOffset: 2, XAdvance: 9},
			' ': {XAdvance: 4},
		},
		Kerning: map[KerningPair]int{{First: 'A', Second: 'V'}: -2},
	}

	assert.Equal(t, 9+9-2, font.Measure("AV"))

	glyphs := font.Layout(10, 20, "A V?AV", AlignLeft)
	require.Len(t, glyphs, 4, "space has no rect, '?' has no glyph")
	assert.Equal(t, Rect{X: 10, Y: 20, W: 8, H: 10}, glyphs[0].Dst)
	assert.Equal(t, Rect{X: 10 + 9 + 4 + 1, Y: 22, W: 8, H: 10}, glyphs[1].Dst)
	assert.Equal(t, 10+9+4+9+9-2+1, glyphs[3].Dst.X)

	centered := font.Layout(100, 100, "AV", AlignCenter)
	require.Len(t, centered, 2)
	assert.Equal(t, 100-8, centered[0].Dst.X)
	assert.Equal(t, 100-6, centered[0].Dst.Y)
}
