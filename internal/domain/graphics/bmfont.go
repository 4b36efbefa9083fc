package graphics

// BMChar is one glyph of an AngelCode font.
type BMChar struct {
	Rect     Rect
	XOffset  int
	YOffset  int
	XAdvance int
	Page     int
}

// KerningPair identifies two consecutive runes.
type KerningPair struct {
	First, Second rune
}

// BMFont is a variable-width font described by an AngelCode .fnt file.
type BMFont struct {
	Face       string
	LineHeight int
	Base       int
	Pages      []Texture
	Chars      map[rune]BMChar
	Kerning    map[KerningPair]int
}

// Measure returns the advance width of text in pixels.
func (f *BMFont) Measure(text string) int {
	width := 0
	prev := rune(-1)
	for _, r := range text {
		ch, ok := f.Chars[r]
		if !ok {
			prev = -1
			continue
		}
		width += ch.XAdvance + f.Kerning[KerningPair{First: prev, Second: r}]
		prev = r
	}
	return width
}

// Layout places text at x, y. Runes without a glyph are skipped.
func (f *BMFont) Layout(x, y int, text string, align Align) []Glyph {
	switch align {
	case AlignCenter:
		x -= f.Measure(text) / 2
		y -= f.LineHeight / 2
	case AlignRight:
		x -= f.Measure(text)
	}

	var glyphs []Glyph
	cursor := x
	prev := rune(-1)
	for _, r := range text {
		ch, ok := f.Chars[r]
		if !ok {
			prev = -1
			continue
		}
		cursor += f.Kerning[KerningPair{First: prev, Second: r}]
		if ch.Page >= 0 && ch.Page < len(f.Pages) && !ch.Rect.Empty() {
			glyphs = append(glyphs, Glyph{
				Texture: f.Pages[ch.Page],
				Src:     ch.Rect,
				Dst: Rect{
					X: cursor + ch.XOffset,
					Y: y + ch.YOffset,
					W: ch.Rect.W,
					H: ch.Rect.H,
				},
			})
		}
		cursor += ch.XAdvance
		prev = r
	}
	return glyphs
}
