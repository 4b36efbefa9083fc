// Package resource finds, decodes and caches game assets by file name.
package resource

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/domain/asset"
	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/domain/sound"
	"github.com/younwookim/harness/internal/infrastructure/logging"
)

// DefaultSampleRate is used when Options.SampleRate is not set.
const DefaultSampleRate = 44100

// TextureFactory uploads decoded images. platform.Renderer implements it.
type TextureFactory interface {
	NewTexture(img image.Image) (graphics.NativeTexture, error)
	ReleaseTexture(tex graphics.NativeTexture)
}

// SampleFactory uploads decoded PCM. platform.Mixer implements it.
type SampleFactory interface {
	NewSample(pcm []byte) (sound.NativeSample, error)
	ReleaseSample(s sound.NativeSample)
}

// Options configures a Registry.
type Options struct {
	// SearchPaths are tried in order; the first directory holding the file wins.
	SearchPaths []string
	Textures    TextureFactory
	Samples     SampleFactory
	SampleRate  int
	Logger      *log.Logger
}

// file is one file on disk backing a registry entry.
type file struct {
	path    string
	texture *asset.Handle[graphics.NativeTexture]
	sample  *asset.Handle[sound.NativeSample]
}

func (f *file) release() {
	if f.texture != nil {
		f.texture.Release()
	}
	if f.sample != nil {
		f.sample.Release()
	}
}

type entry struct {
	name    string
	kind    Kind
	files   []*file
	texture graphics.Texture
	sample  *sound.Sample
	font    *graphics.BMFont
}

// Registry maps file names to loaded resources. Every handle it hands out is
// owned by the registry and released by Free or FreeAll.
//
// A Registry is used from the loop thread only.
type Registry struct {
	paths      []string
	textures   TextureFactory
	samples    SampleFactory
	sampleRate int
	logger     *log.Logger
	entries    map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	paths := make([]string, len(opts.SearchPaths))
	copy(paths, opts.SearchPaths)

	return &Registry{
		paths:      paths,
		textures:   opts.Textures,
		samples:    opts.Samples,
		sampleRate: opts.SampleRate,
		logger:     opts.Logger,
		entries:    make(map[string]*entry),
	}
}

// SearchPaths returns the directories searched by Find.
func (r *Registry) SearchPaths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Find returns the path of name in the first search directory holding a regular file of that name.
func (r *Registry) Find(name string) (string, error) {
	for _, dir := range r.paths {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrResourceNotFound, name)
}

// Load finds and decodes name according to its extension. Images and audio
// are registered under name; loading a registered name again returns the
// cached resource. Raw files are opened and not registered.
func (r *Registry) Load(name string) (Resource, error) {
	kind := Classify(name)
	if kind == KindRaw {
		rc, err := r.Open(name)
		if err != nil {
			return Resource{}, err
		}
		return Resource{Kind: KindRaw, Raw: rc}, nil
	}

	if e, ok := r.entries[name]; ok {
		return e.resource(), nil
	}

	path, err := r.Find(name)
	if err != nil {
		return Resource{}, &LoadError{Name: name, Kind: kind, Err: err}
	}

	var e *entry
	switch kind {
	case KindImage:
		e, err = r.loadImage(name, path)
	case KindAudio:
		e, err = r.loadAudio(name, path)
	}
	if err != nil {
		r.logger.Warn("resource load failed", "name", name, "kind", kind, "err", err)
		return Resource{}, &LoadError{Name: name, Path: path, Kind: kind, Err: err}
	}

	r.entries[name] = e
	r.logger.Debug("resource loaded", "name", name, "kind", kind, "path", path)
	return e.resource(), nil
}

func (e *entry) resource() Resource {
	return Resource{Kind: e.kind, Texture: e.texture, Sample: e.sample}
}

func (r *Registry) loadImage(name, path string) (*entry, error) {
	h, w, ht, err := r.uploadImage(path)
	if err != nil {
		return nil, err
	}
	return &entry{
		name:    name,
		kind:    KindImage,
		files:   []*file{{path: path, texture: h}},
		texture: graphics.NewTexture(h, graphics.Rect{W: w, H: ht}),
	}, nil
}

func (r *Registry) uploadImage(path string) (*asset.Handle[graphics.NativeTexture], int, int, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, 0, 0, err
	}
	native, err := r.newTexture(img)
	if err != nil {
		return nil, 0, 0, err
	}
	b := img.Bounds()
	return asset.NewHandle(native, r.textures.ReleaseTexture), b.Dx(), b.Dy(), nil
}

func (r *Registry) newTexture(img image.Image) (graphics.NativeTexture, error) {
	if r.textures == nil {
		return nil, errors.New("no renderer to upload textures")
	}
	native, err := r.textures.NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("upload texture: %w", err)
	}
	return native, nil
}

func (r *Registry) loadAudio(name, path string) (*entry, error) {
	native, err := r.decodeSample(path)
	if err != nil {
		return nil, err
	}
	h := asset.NewHandle(native, r.samples.ReleaseSample)
	return &entry{
		name:   name,
		kind:   KindAudio,
		files:  []*file{{path: path, sample: h}},
		sample: sound.NewSample(h, r.sampleRate),
	}, nil
}

func (r *Registry) decodeSample(path string) (sound.NativeSample, error) {
	if r.samples == nil {
		return nil, errors.New("no mixer to upload samples")
	}
	pcm, err := decodePCM(path, r.sampleRate)
	if err != nil {
		return nil, err
	}
	native, err := r.samples.NewSample(pcm)
	if err != nil {
		return nil, fmt.Errorf("upload sample: %w", err)
	}
	return native, nil
}

// LoadTexture loads an image resource.
func (r *Registry) LoadTexture(name string) (graphics.Texture, error) {
	if kind := Classify(name); kind != KindImage {
		return graphics.Texture{}, &LoadError{Name: name, Kind: kind, Err: ErrKindMismatch}
	}
	res, err := r.Load(name)
	if err != nil {
		return graphics.Texture{}, err
	}
	return res.Texture, nil
}

// LoadSample loads an audio resource.
func (r *Registry) LoadSample(name string) (*sound.Sample, error) {
	if kind := Classify(name); kind != KindAudio {
		return nil, &LoadError{Name: name, Kind: kind, Err: ErrKindMismatch}
	}
	res, err := r.Load(name)
	if err != nil {
		return nil, err
	}
	return res.Sample, nil
}

// Open returns a stream on the file name regardless of its extension.
// The caller closes it.
func (r *Registry) Open(name string) (io.ReadCloser, error) {
	path, err := r.Find(name)
	if err != nil {
		return nil, &LoadError{Name: name, Kind: KindRaw, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Kind: KindRaw, Err: err}
	}
	return f, nil
}

// ReadImage decodes the image name without uploading or registering it.
func (r *Registry) ReadImage(name string) (image.Image, error) {
	path, err := r.Find(name)
	if err != nil {
		return nil, &LoadError{Name: name, Kind: KindImage, Err: err}
	}
	img, err := decodeImage(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Kind: KindImage, Err: err}
	}
	return img, nil
}

// LoadBitmapFont loads the image name and cuts it into glyphW x glyphH cells.
// The texture is registered under name; the font itself is not.
func (r *Registry) LoadBitmapFont(name string, glyphW, glyphH int, fontMap string) (*graphics.BitmapFont, error) {
	tex, err := r.LoadTexture(name)
	if err != nil {
		return nil, err
	}
	font, err := graphics.NewBitmapFont(tex, glyphW, glyphH, fontMap)
	if err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", name, err)
	}
	return font, nil
}

// LoadBMFont loads an AngelCode font description and its page sheets.
// All pages belong to the single entry name.
func (r *Registry) LoadBMFont(name string) (*graphics.BMFont, error) {
	if e, ok := r.entries[name]; ok {
		if e.kind != KindFont {
			return nil, &LoadError{Name: name, Kind: e.kind, Err: ErrKindMismatch}
		}
		return e.font, nil
	}

	path, err := r.Find(name)
	if err != nil {
		return nil, &LoadError{Name: name, Kind: KindFont, Err: err}
	}
	ff, err := decodeBMFont(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Kind: KindFont, Err: err}
	}

	e := &entry{name: name, kind: KindFont}
	pages := make([]graphics.Texture, len(ff.pages))
	for i, img := range ff.pages {
		if img == nil {
			continue
		}
		native, err := r.newTexture(img)
		if err != nil {
			for _, f := range e.files {
				f.release()
			}
			return nil, &LoadError{Name: name, Path: path, Kind: KindFont, Err: err}
		}
		h := asset.NewHandle(native, r.textures.ReleaseTexture)
		e.files = append(e.files, &file{path: ff.pagePaths[i], texture: h})
		b := img.Bounds()
		pages[i] = graphics.NewTexture(h, graphics.Rect{W: b.Dx(), H: b.Dy()})
	}

	e.font = &graphics.BMFont{
		Face:       ff.face,
		LineHeight: ff.lineHeight,
		Base:       ff.base,
		Pages:      pages,
		Chars:      ff.chars,
		Kerning:    ff.kerning,
	}
	r.entries[name] = e
	r.logger.Debug("resource loaded", "name", name, "kind", KindFont, "pages", len(pages))
	return e.font, nil
}

// Free releases name and forgets it. Unknown names are ignored.
func (r *Registry) Free(name string) {
	e, ok := r.entries[name]
	if !ok {
		return
	}
	for _, f := range e.files {
		f.release()
	}
	delete(r.entries, name)
	r.logger.Debug("resource freed", "name", name, "kind", e.kind)
}

// FreeAll releases every entry in name order.
func (r *Registry) FreeAll() {
	for _, name := range r.Names() {
		r.Free(name)
	}
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Reload decodes every file behind name again and swaps the native handles in
// place. Textures, subtextures and fonts already handed out see the new content.
func (r *Registry) Reload(name string) error {
	e, ok := r.entries[name]
	if !ok {
		return &LoadError{Name: name, Kind: Classify(name), Err: ErrResourceNotFound}
	}
	var errs []error
	for _, f := range e.files {
		if err := r.reloadFile(f); err != nil {
			errs = append(errs, &LoadError{Name: name, Path: f.path, Kind: e.kind, Err: err})
		}
	}
	return errors.Join(errs...)
}

// ReloadPaths reloads every entry backed by one of paths. Paths that back no
// entry are ignored.
func (r *Registry) ReloadPaths(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	changed := make(map[string]bool, len(paths))
	for _, p := range paths {
		changed[absClean(p)] = true
	}

	var errs []error
	for _, name := range r.Names() {
		e := r.entries[name]
		for _, f := range e.files {
			if !changed[absClean(f.path)] {
				continue
			}
			if err := r.reloadFile(f); err != nil {
				r.logger.Warn("resource reload failed", "name", name, "path", f.path, "err", err)
				errs = append(errs, &LoadError{Name: name, Path: f.path, Kind: e.kind, Err: err})
				continue
			}
			r.logger.Info("resource reloaded", "name", name, "path", f.path)
		}
	}
	return errors.Join(errs...)
}

// reloadFile keeps the previous content when decoding fails.
func (r *Registry) reloadFile(f *file) error {
	switch {
	case f.texture != nil:
		img, err := decodeImage(f.path)
		if err != nil {
			return err
		}
		native, err := r.newTexture(img)
		if err != nil {
			return err
		}
		f.texture.Swap(native)
	case f.sample != nil:
		native, err := r.decodeSample(f.path)
		if err != nil {
			return err
		}
		f.sample.Swap(native)
	}
	return nil
}

func absClean(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
