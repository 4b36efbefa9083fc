package graphics

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultFontMap is the glyph order of a bitmap font loaded without a map.
const DefaultFontMap = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!?()@:/'., "

// ErrInvalidGlyphSize is returned for a bitmap font with a non-positive cell size.
var ErrInvalidGlyphSize = errors.New("invalid glyph size")

// Align is the horizontal anchoring of a text line.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the string representation of the alignment
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Glyph is one draw call produced by a text layout.
type Glyph struct {
	Texture Texture
	Src     Rect
	Dst     Rect
}

// Font lays a line of text out into glyph draws.
type Font interface {
	Layout(x, y int, text string, align Align) []Glyph
}

// BitmapFont is a fixed-cell font cut from a single texture.
type BitmapFont struct {
	texture Texture
	width   int
	height  int
	fontMap string
	slots   map[rune]int
	columns int
}

// NewBitmapFont creates a font whose cells are laid out row-major on tex in fontMap order.
// An empty fontMap selects DefaultFontMap.
func NewBitmapFont(tex Texture, width, height int, fontMap string) (*BitmapFont, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGlyphSize, width, height)
	}
	if fontMap == "" {
		fontMap = DefaultFontMap
	}

	slots := make(map[rune]int, utf8.RuneCountInString(fontMap))
	i := 0
	for _, r := range fontMap {
		if _, dup := slots[r]; !dup {
			slots[r] = i
		}
		i++
	}

	columns := tex.Width() / width
	if columns < 1 {
		columns = 1
	}

	return &BitmapFont{
		texture: tex,
		width:   width,
		height:  height,
		fontMap: fontMap,
		slots:   slots,
		columns: columns,
	}, nil
}

// Texture returns the font sheet.
func (f *BitmapFont) Texture() Texture {
	return f.texture
}

// GlyphSize returns the cell size.
func (f *BitmapFont) GlyphSize() (w, h int) {
	return f.width, f.height
}

// FontMap returns the glyph order.
func (f *BitmapFont) FontMap() string {
	return f.fontMap
}

// Source returns the sheet rectangle of r.
func (f *BitmapFont) Source(r rune) (Rect, bool) {
	slot, ok := f.slots[r]
	if !ok {
		return Rect{}, false
	}
	base := f.texture.Rect()
	return Rect{
		X: base.X + (slot%f.columns)*f.width,
		Y: base.Y + (slot/f.columns)*f.height,
		W: f.width,
		H: f.height,
	}, true
}

// Measure returns the width of text in pixels.
func (f *BitmapFont) Measure(text string) int {
	return utf8.RuneCountInString(text) * f.width
}

// Layout places text at x, y. Runes missing from the font map leave a blank cell.
func (f *BitmapFont) Layout(x, y int, text string, align Align) []Glyph {
	width := f.Measure(text)
	switch align {
	case AlignCenter:
		x -= width / 2
		y -= f.height / 2
	case AlignRight:
		x -= width
	}

	glyphs := make([]Glyph, 0, utf8.RuneCountInString(text))
	i := 0
	for _, r := range text {
		if src, ok := f.Source(r); ok {
			glyphs = append(glyphs, Glyph{
				Texture: f.texture,
				Src:     src,
				Dst:     Rect{X: x + i*f.width, Y: y, W: f.width, H: f.height},
			})
		}
		i++
	}
	return glyphs
}
