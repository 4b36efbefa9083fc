package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	_ "golang.org/x/image/bmp"

	"github.com/younwookim/harness/internal/domain/graphics"
)

// decodeImage reads an image file in any registered format.
func decodeImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetDecode, err)
	}
	return img, nil
}

// decodePCM reads a .wav or .ogg file as 16-bit little-endian stereo PCM at sampleRate.
func decodePCM(path string, sampleRate int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var stream io.Reader
	switch filepath.Ext(path) {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssetDecode, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssetDecode, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("%w: unsupported audio file %s", ErrAssetDecode, filepath.Base(path))
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetDecode, err)
	}
	return pcm, nil
}

// fontFile is a decoded AngelCode font before its pages are uploaded.
type fontFile struct {
	face       string
	lineHeight int
	base       int
	pages      []image.Image
	pagePaths  []string
	chars      map[rune]graphics.BMChar
	kerning    map[graphics.KerningPair]int
}

// decodeBMFont reads an AngelCode .fnt file and its page sheets.
func decodeBMFont(path string) (*fontFile, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAssetDecode, err)
	}
	desc := font.Descriptor

	// page ids index the sheets and need not be dense
	pages := len(desc.Pages)
	for _, p := range desc.Pages {
		pages = max(pages, int(p.ID)+1)
	}
	for id := range font.PageSheets {
		pages = max(pages, id+1)
	}

	out := &fontFile{
		face:       desc.Info.Face,
		lineHeight: int(desc.Common.LineHeight),
		base:       int(desc.Common.Base),
		pages:      make([]image.Image, pages),
		pagePaths:  make([]string, pages),
		chars:      make(map[rune]graphics.BMChar, len(desc.Chars)),
		kerning:    make(map[graphics.KerningPair]int, len(desc.Kerning)),
	}
	for id, img := range font.PageSheets {
		if id >= 0 {
			out.pages[id] = img
		}
	}

	dir := filepath.Dir(path)
	for _, p := range desc.Pages {
		if id := int(p.ID); id >= 0 {
			out.pagePaths[id] = filepath.Join(dir, p.File)
		}
	}

	for r, c := range desc.Chars {
		out.chars[r] = graphics.BMChar{
			Rect: graphics.Rect{
				X: int(c.X),
				Y: int(c.Y),
				W: int(c.Width),
				H: int(c.Height),
			},
			XOffset:  int(c.XOffset),
			YOffset:  int(c.YOffset),
			XAdvance: int(c.XAdvance),
			Page:     int(c.Page),
		}
	}

	for pair, k := range desc.Kerning {
		out.kerning[graphics.KerningPair{First: pair.First, Second: pair.Second}] = int(k.Amount)
	}
	return out, nil
}
