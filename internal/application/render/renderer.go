// Package render provides the drawing surface handed to draw callbacks.
package render

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

// White leaves texture colors unchanged.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Renderer draws textures and text onto the canvas of the current frame.
type Renderer struct {
	canvas platform.Canvas
	logger *log.Logger
	warned map[uuid.UUID]bool
	calls  int
}

// New creates a renderer. It draws nothing until Begin is called.
func New(logger *log.Logger) *Renderer {
	return &Renderer{
		logger: logger,
		warned: map[uuid.UUID]bool{},
	}
}

// Begin starts a frame on c.
func (r *Renderer) Begin(c platform.Canvas) {
	r.canvas = c
	r.calls = 0
}

// End finishes the frame. Draws outside Begin/End are dropped.
func (r *Renderer) End() {
	r.canvas = nil
}

// Clear clears the frame.
func (r *Renderer) Clear() {
	if r.canvas != nil {
		r.canvas.Clear()
	}
}

// Calls returns the number of draw calls issued in the current frame.
func (r *Renderer) Calls() int {
	return r.calls
}

type drawOptions struct {
	x, y  int
	at    bool
	src   *graphics.Rect
	dst   *graphics.Rect
	tint  color.RGBA
	align graphics.Align
}

// DrawOption configures a single Draw or DrawText call.
type DrawOption func(*drawOptions)

// At places the texture at x, y with its source size.
func At(x, y int) DrawOption {
	return func(o *drawOptions) {
		o.x, o.y, o.at = x, y, true
	}
}

// Src selects the source rectangle instead of the texture's own.
func Src(rect graphics.Rect) DrawOption {
	return func(o *drawOptions) {
		o.src = &rect
	}
}

// Dst sets the destination rectangle. It takes precedence over At.
func Dst(rect graphics.Rect) DrawOption {
	return func(o *drawOptions) {
		o.dst = &rect
	}
}

// Tint multiplies the texture colors for this call only.
func Tint(c color.RGBA) DrawOption {
	return func(o *drawOptions) {
		o.tint = c
	}
}

// Align sets the text alignment of DrawText.
func Align(a graphics.Align) DrawOption {
	return func(o *drawOptions) {
		o.align = a
	}
}

func applyOptions(opts []DrawOption) drawOptions {
	o := drawOptions{tint: White, align: graphics.AlignLeft}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Draw draws tex. Without options the whole texture goes to the top-left corner.
func (r *Renderer) Draw(tex graphics.Texture, opts ...DrawOption) {
	o := applyOptions(opts)

	src := tex.Rect()
	if o.src != nil {
		src = *o.src
	}

	var dst graphics.Rect
	switch {
	case o.dst != nil:
		dst = *o.dst
	case o.at:
		dst = graphics.Rect{X: o.x, Y: o.y, W: src.W, H: src.H}
	default:
		dst = graphics.Rect{W: src.W, H: src.H}
	}

	r.draw(tex, src, dst, o.tint)
}

// DrawText draws text with font, anchored at x, y according to the Align option.
func (r *Renderer) DrawText(font graphics.Font, x, y int, text string, opts ...DrawOption) {
	if font == nil {
		return
	}
	o := applyOptions(opts)
	for _, g := range font.Layout(x, y, text, o.align) {
		r.draw(g.Texture, g.Src, g.Dst, o.tint)
	}
}

func (r *Renderer) draw(tex graphics.Texture, src, dst graphics.Rect, tint color.RGBA) {
	if r.canvas == nil {
		return
	}
	native, ok := tex.Native()
	if !ok {
		r.warnReleased(tex)
		return
	}
	r.canvas.Draw(native, src, dst, tint)
	r.calls++
}

func (r *Renderer) warnReleased(tex graphics.Texture) {
	h := tex.Handle()
	if h == nil {
		r.logger.Warn("draw of an unloaded texture skipped")
		return
	}
	if r.warned[h.ID()] {
		return
	}
	r.warned[h.ID()] = true
	r.logger.Warn("draw of a released texture skipped", "handle", h.ID())
}
