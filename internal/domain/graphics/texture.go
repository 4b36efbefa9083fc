// Package graphics holds textures, fonts and the text layout used by the renderer.
package graphics

import "github.com/younwookim/harness/internal/domain/asset"

// Rect is an integer rectangle in pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// NativeTexture is an image uploaded to the platform renderer.
type NativeTexture interface {
	Size() (w, h int)
}

// Texture is a rectangle on a shared native texture.
type Texture struct {
	handle *asset.Handle[NativeTexture]
	rect   Rect
}

// NewTexture creates a texture covering rect of the native texture behind h.
func NewTexture(h *asset.Handle[NativeTexture], rect Rect) Texture {
	return Texture{handle: h, rect: rect}
}

// Handle returns the shared native handle.
func (t Texture) Handle() *asset.Handle[NativeTexture] {
	return t.handle
}

// Rect returns the region of the native texture this texture covers.
func (t Texture) Rect() Rect {
	return t.rect
}

// Width returns the width of the covered region.
func (t Texture) Width() int {
	return t.rect.W
}

// Height returns the height of the covered region.
func (t Texture) Height() int {
	return t.rect.H
}

// Native returns the native texture, or false once the owning resource was freed.
func (t Texture) Native() (NativeTexture, bool) {
	if t.handle == nil {
		return nil, false
	}
	return t.handle.Get()
}

// Valid reports whether the texture can still be drawn.
func (t Texture) Valid() bool {
	_, ok := t.Native()
	return ok
}

// Subtexture returns a view of x, y, w, h on the underlying image.
// The view shares the handle; freeing the parent resource invalidates it.
func (t Texture) Subtexture(x, y, w, h int) Texture {
	return Texture{
		handle: t.handle,
		rect:   Rect{X: x, Y: y, W: w, H: h},
	}
}
