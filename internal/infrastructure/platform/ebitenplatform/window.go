package ebitenplatform

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var (
	_ platform.Window   = new(Window)
	_ platform.Renderer = new(Renderer)
	_ platform.Canvas   = new(canvas)
	_ ebiten.Game       = new(driver)
)

// Window is the Ebitengine window. Ebitengine owns a single window per process.
type Window struct {
	config  platform.WindowConfig
	input   *Input
	visible bool
}

// Show implements platform.Window. The window appears when Run starts.
func (w *Window) Show() error {
	w.visible = true
	return nil
}

// Hide implements platform.Window. Ebitengine closes the window when Run returns.
func (w *Window) Hide() error {
	w.visible = false
	return nil
}

// SetIcon implements platform.Window.
func (w *Window) SetIcon(img image.Image) error {
	if img == nil {
		return errors.New("nil icon")
	}
	ebiten.SetWindowIcon([]image.Image{img})
	return nil
}

// Close implements platform.Window.
func (w *Window) Close() error {
	return nil
}

// NewRenderer implements platform.Window.
func (w *Window) NewRenderer() (platform.Renderer, error) {
	return &Renderer{}, nil
}

// Run implements platform.Window.
func (w *Window) Run(frame platform.Frame) error {
	d := &driver{
		frame:  frame,
		input:  w.input,
		width:  w.config.Width,
		height: w.config.Height,
	}
	if err := ebiten.RunGame(d); err != nil {
		return errors.Wrap(err, "run game")
	}
	if d.err != nil {
		return d.err
	}
	return nil
}

// driver adapts a platform.Frame to ebiten.Game.
type driver struct {
	frame   platform.Frame
	input   *Input
	width   int
	height  int
	pending bool
	err     error
}

func (d *driver) Update() error {
	if d.err != nil {
		// a draw callback failed
		return ebiten.Termination
	}
	draw, _, err := d.frame.Tick()
	if errors.Is(err, platform.ErrTerminated) {
		return ebiten.Termination
	}
	if err != nil {
		d.err = err
		return ebiten.Termination
	}
	d.pending = d.pending || draw
	return nil
}

func (d *driver) Draw(screen *ebiten.Image) {
	if !d.pending || d.err != nil {
		return
	}
	d.pending = false
	if err := d.frame.Render(&canvas{screen: screen}); err != nil {
		d.err = err
	}
}

func (d *driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.width, d.height
}

// Renderer uploads images as ebiten.Image textures.
type Renderer struct{}

type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// NewTexture implements platform.Renderer.
func (r *Renderer) NewTexture(img image.Image) (graphics.NativeTexture, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.Errorf("empty image %v", b)
	}
	return &texture{img: ebiten.NewImageFromImage(img)}, nil
}

// ReleaseTexture implements platform.Renderer.
func (r *Renderer) ReleaseTexture(tex graphics.NativeTexture) {
	if t, ok := tex.(*texture); ok {
		t.img.Deallocate()
	}
}

// Close implements platform.Renderer.
func (r *Renderer) Close() error {
	return nil
}

type canvas struct {
	screen *ebiten.Image
}

func (c *canvas) Clear() {
	c.screen.Fill(color.Black)
}

func (c *canvas) Draw(tex graphics.NativeTexture, src, dst graphics.Rect, tint color.RGBA) {
	t, ok := tex.(*texture)
	if !ok || src.Empty() || dst.Empty() {
		return
	}
	sub, ok := t.img.SubImage(image.Rect(src.X, src.Y, src.X+src.W, src.Y+src.H)).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.W)/float64(src.W), float64(dst.H)/float64(src.H))
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))
	op.ColorScale.ScaleWithColor(tint)
	c.screen.DrawImage(sub, op)
}
