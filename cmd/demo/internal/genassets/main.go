// Command genassets writes the images and sounds used by the demo.
package main

import (
	"encoding/binary"
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/harness/internal/domain/graphics"
)

// Font cell size of font.png
const (
	glyphW  = 7
	glyphH  = 13
	columns = 16
)

var (
	colorSky    = color.RGBA{26, 26, 46, 255}
	colorGround = color.RGBA{60, 60, 90, 255}
	colorTitle  = color.RGBA{255, 215, 0, 255}
	colorPlayer = color.RGBA{100, 200, 100, 255}
	colorGoodie = color.RGBA{255, 200, 100, 255}
)

func main() {
	out := flag.String("out", "data", "Output directory")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal("create output directory", "err", err)
	}

	images := map[string]image.Image{
		"background.png": background(240, 240),
		"title.png":      title(240, 60),
		"font.png":       fontSheet(graphics.DefaultFontMap),
		"sprites.png":    sprites(),
		"icon.png":       icon(),
	}
	for name, img := range images {
		if err := writePNG(filepath.Join(*out, name), img); err != nil {
			log.Fatal("write image", "name", name, "err", err)
		}
		log.Info("image written", "name", name, "bounds", img.Bounds())
	}

	if err := writeWAV(filepath.Join(*out, "coin.wav"), blip(44100)); err != nil {
		log.Fatal("write sound", "err", err)
	}
	log.Info("sound written", "name", "coin.wav")
}

func background(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := colorSky
		if y > h*3/4 {
			c = colorGround
		}
		// vertical gradient
		shade := uint8(y * 40 / h)
		c.R += shade
		c.G += shade
		c.B += shade
		draw.Draw(img, image.Rect(0, y, w, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

func title(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	text := "HARNESS"
	scale := 4
	small := image.NewRGBA(image.Rect(0, 0, len(text)*glyphW, glyphH))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(colorTitle),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)

	// nearest-neighbour upscale, centered
	ox := (w - small.Bounds().Dx()*scale) / 2
	oy := (h - small.Bounds().Dy()*scale) / 2
	for y := 0; y < small.Bounds().Dy(); y++ {
		for x := 0; x < small.Bounds().Dx(); x++ {
			c := small.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			r := image.Rect(ox+x*scale, oy+y*scale, ox+(x+1)*scale, oy+(y+1)*scale)
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

// fontSheet draws fontMap in row-major glyphW x glyphH cells.
func fontSheet(fontMap string) image.Image {
	runes := []rune(fontMap)
	rows := (len(runes) + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, columns*glyphW, rows*glyphH))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for i, r := range runes {
		x := (i % columns) * glyphW
		y := (i / columns) * glyphH
		d.Dot = fixed.P(x, y+basicfont.Face7x13.Ascent)
		d.DrawString(string(r))
	}
	return img
}

// sprites is a 32x16 sheet: the player, then a goodie.
func sprites() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	draw.Draw(img, image.Rect(2, 2, 14, 16), image.NewUniform(colorPlayer), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(5, 5, 7, 7), image.Black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(9, 5, 11, 7), image.Black, image.Point{}, draw.Src)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			dx, dy := float64(x)-7.5, float64(y)-7.5
			if dx*dx+dy*dy <= 36 {
				img.Set(16+x, y, colorGoodie)
			}
		}
	}
	return img
}

func icon() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorSky), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(3, 3, 13, 13), image.NewUniform(colorTitle), image.Point{}, draw.Src)
	return img
}

// blip is a short falling square tone as 16-bit stereo samples.
func blip(rate int) []int16 {
	n := rate / 10
	out := make([]int16, 0, n*2)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		freq := 1320.0 - 600.0*t*10
		v := int16(6000 * (1 - float64(i)/float64(n)))
		if math.Mod(t*freq, 1) >= 0.5 {
			v = -v
		}
		out = append(out, v, v)
	}
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeWAV(path string, samples []int16) error {
	const (
		channels = 2
		rate     = 44100
		bits     = 16
	)
	dataSize := len(samples) * 2

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []any{
		[]byte("RIFF"), uint32(36 + dataSize), []byte("WAVE"),
		[]byte("fmt "), uint32(16), uint16(1), uint16(channels),
		uint32(rate), uint32(rate * channels * bits / 8),
		uint16(channels * bits / 8), uint16(bits),
		[]byte("data"), uint32(dataSize),
		samples,
	}
	for _, v := range header {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}
