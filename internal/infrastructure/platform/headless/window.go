package headless

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var (
	_ platform.Window   = new(Window)
	_ platform.Renderer = new(Renderer)
	_ platform.Canvas   = new(canvas)
)

// OpKind is the kind of a recorded canvas operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpDraw
)

// Op is one recorded canvas operation.
type Op struct {
	Kind    OpKind
	Frame   int
	Texture *Texture
	Src     graphics.Rect
	Dst     graphics.Rect
	Tint    color.RGBA
}

// Window is a window that is never shown on screen.
type Window struct {
	backend  *Backend
	config   platform.WindowConfig
	visible  bool
	icon     image.Image
	renderer *Renderer
}

// Config returns the configuration the window was opened with.
func (w *Window) Config() platform.WindowConfig {
	return w.config
}

// Visible reports whether Show was called after the last Hide.
func (w *Window) Visible() bool {
	return w.visible
}

// Icon returns the image passed to SetIcon.
func (w *Window) Icon() image.Image {
	return w.icon
}

// Show implements platform.Window.
func (w *Window) Show() error {
	w.visible = true
	return w.backend.record("window.show")
}

// Hide implements platform.Window.
func (w *Window) Hide() error {
	w.visible = false
	return w.backend.record("window.hide")
}

// SetIcon implements platform.Window.
func (w *Window) SetIcon(img image.Image) error {
	w.icon = img
	return w.backend.record("window.icon")
}

// Close implements platform.Window.
func (w *Window) Close() error {
	return w.backend.record("window.close")
}

// NewRenderer implements platform.Window.
func (w *Window) NewRenderer() (platform.Renderer, error) {
	if err := w.backend.record("renderer.open"); err != nil {
		return nil, err
	}
	w.renderer = &Renderer{backend: w.backend}
	return w.renderer, nil
}

// Renderer returns the renderer created for the window, or nil.
func (w *Window) Renderer() *Renderer {
	return w.renderer
}

// Run implements platform.Window. Each iteration takes the next step of the
// source; once the source is exhausted a quit event is delivered every
// iteration until the frame terminates.
func (w *Window) Run(frame platform.Frame) error {
	b := w.backend
	for {
		step, ok := b.source.Next()
		if !ok {
			step = Step{Quit: true}
		}
		b.clock.step(step.Elapsed)
		b.input.apply(step)

		draw, wait, err := frame.Tick()
		if errors.Is(err, platform.ErrTerminated) {
			return nil
		}
		if err != nil {
			return err
		}
		b.frames++

		if draw {
			b.draws++
			if err := frame.Render(&canvas{backend: b, frame: b.frames}); err != nil {
				return err
			}
		}
		b.clock.Sleep(wait)
	}
}

// Texture is an uploaded image.
type Texture struct {
	ID       int
	W, H     int
	Image    image.Image
	Releases int
}

// Size implements graphics.NativeTexture.
func (t *Texture) Size() (int, int) {
	return t.W, t.H
}

// Renderer keeps track of uploaded textures.
type Renderer struct {
	backend  *Backend
	textures []*Texture
	closed   bool
}

// NewTexture implements platform.Renderer.
func (r *Renderer) NewTexture(img image.Image) (graphics.NativeTexture, error) {
	if r.closed {
		return nil, errors.New("renderer closed")
	}
	if r.backend.failures["texture.new"] {
		return nil, fmt.Errorf("texture.new: %w", ErrInjected)
	}
	bounds := img.Bounds()
	tex := &Texture{
		ID:    len(r.textures) + 1,
		W:     bounds.Dx(),
		H:     bounds.Dy(),
		Image: img,
	}
	r.textures = append(r.textures, tex)
	return tex, nil
}

// ReleaseTexture implements platform.Renderer.
func (r *Renderer) ReleaseTexture(tex graphics.NativeTexture) {
	if t, ok := tex.(*Texture); ok {
		t.Releases++
	}
}

// Close implements platform.Renderer.
func (r *Renderer) Close() error {
	r.closed = true
	return r.backend.record("renderer.close")
}

// Textures returns every texture uploaded so far.
func (r *Renderer) Textures() []*Texture {
	return append([]*Texture(nil), r.textures...)
}

// Live returns the number of uploaded textures not yet released.
func (r *Renderer) Live() int {
	n := 0
	for _, t := range r.textures {
		if t.Releases == 0 {
			n++
		}
	}
	return n
}

type canvas struct {
	backend *Backend
	frame   int
}

func (c *canvas) Clear() {
	c.backend.ops = append(c.backend.ops, Op{Kind: OpClear, Frame: c.frame})
}

func (c *canvas) Draw(tex graphics.NativeTexture, src, dst graphics.Rect, tint color.RGBA) {
	t, _ := tex.(*Texture)
	c.backend.ops = append(c.backend.ops, Op{
		Kind:    OpDraw,
		Frame:   c.frame,
		Texture: t,
		Src:     src,
		Dst:     dst,
		Tint:    tint,
	})
}
