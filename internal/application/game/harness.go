// Package game wires the loop, resources, input and audio to a platform
// backend and runs them.
package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/application/loop"
	"github.com/younwookim/harness/internal/application/render"
	"github.com/younwookim/harness/internal/application/replay"
	"github.com/younwookim/harness/internal/application/resource"
	"github.com/younwookim/harness/internal/application/state"
	"github.com/younwookim/harness/internal/application/system"
	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/domain/sound"
	"github.com/younwookim/harness/internal/infrastructure/config"
	"github.com/younwookim/harness/internal/infrastructure/logging"
	"github.com/younwookim/harness/internal/infrastructure/platform"
)

// ErrAlreadyRun is returned by a second call to Run.
var ErrAlreadyRun = errors.New("harness already run")

type options struct {
	logger   *log.Logger
	baseDir  string
	recorder *replay.Recorder
}

// Option configures a Harness.
type Option func(*options)

// WithLogger sets the logger. The default is built from the log configuration.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBaseDir sets the directory relative search paths resolve against.
// The default is the directory of the executable.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithRecorder records the raw input of every iteration into rec.
func WithRecorder(rec *replay.Recorder) Option {
	return func(o *options) {
		o.recorder = rec
	}
}

type closer struct {
	name  string
	close func() error
}

// Harness owns a platform session: the window, the mixer, the loop and every
// resource loaded through it.
type Harness struct {
	cfg     config.Config
	logger  *log.Logger
	backend platform.Backend
	clock   platform.Clock

	mixer    platform.Mixer
	window   platform.Window
	renderer platform.Renderer

	loop        *loop.Loop
	draw        *render.Renderer
	resources   *resource.Registry
	keys        *input.KeyState
	input       *system.InputSystem
	controllers *system.ControllerSystem
	audio       *system.AudioSystem
	watcher     *resource.Watcher
	recorder    *replay.Recorder

	stage    state.Machine
	teardown []closer
	last     time.Duration
	ran      bool
}

// New initializes the platform and opens the mixer, the window and its
// renderer. Everything acquired is released again if a later step fails.
func New(cfg config.Config, backend platform.Backend, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.New(cfg.Log, nil)
	}
	if o.baseDir == "" {
		o.baseDir = config.AppDir()
	}

	h := &Harness{
		cfg:      cfg,
		logger:   o.logger,
		backend:  backend,
		clock:    backend.Clock(),
		recorder: o.recorder,
	}
	if err := h.open(); err != nil {
		if terr := h.closeAll(); terr != nil {
			h.logger.Error("teardown after failed init", "err", terr)
		}
		return nil, err
	}

	h.loop = loop.New(loop.Config{
		UpdateInterval: cfg.Loop.UpdateInterval(),
		MaxFrameTime:   cfg.Loop.MaxFrameDuration(),
		DrawInterval:   cfg.Loop.DrawInterval(),
	})
	h.draw = render.New(h.logger)
	h.resources = resource.NewRegistry(resource.Options{
		SearchPaths: cfg.Resources.ResolveSearchPaths(o.baseDir),
		Textures:    h.renderer,
		Samples:     h.mixer,
		SampleRate:  cfg.Audio.SampleRate,
		Logger:      h.logger,
	})

	// Validate already applied the mapping once
	mapping, _ := input.DefaultMapping.Apply(cfg.Controller.Mapping)
	h.keys = &input.KeyState{}
	h.controllers = system.NewControllerSystem(backend.Input(), mapping, h.logger)
	h.input = system.NewInputSystem(backend.Input(), h.keys, h.controllers, h.logger)
	h.audio = system.NewAudioSystem(h.mixer, cfg.Audio.Channels, h.logger)

	h.setup()

	if err := h.stage.Transition(state.StageInitialized); err != nil {
		return nil, err
	}
	h.logger.Info("harness initialized",
		"size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height),
		"zoom", cfg.Window.Zoom,
		"updateRate", cfg.Loop.UpdateRate,
		"searchPaths", h.resources.SearchPaths())
	return h, nil
}

// open acquires the platform objects in order and pushes each on the teardown stack.
func (h *Harness) open() error {
	cfg := h.cfg
	if err := h.backend.Init(); err != nil {
		return fmt.Errorf("init platform: %w", err)
	}
	h.push("platform", h.backend.Quit)

	mixer, err := h.backend.OpenAudio(platform.AudioConfig{
		Channels:   cfg.Audio.Channels,
		SampleRate: cfg.Audio.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	h.mixer = mixer
	h.push("audio", mixer.Close)

	window, err := h.backend.OpenWindow(platform.WindowConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Zoom:       cfg.Window.Zoom,
		VSync:      cfg.Window.VSync,
		UpdateRate: cfg.Loop.UpdateRate,
	})
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	h.window = window
	h.push("window", window.Close)

	renderer, err := window.NewRenderer()
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	h.renderer = renderer
	h.push("renderer", renderer.Close)
	return nil
}

// setup runs the optional steps. Their failures are logged and do not stop the harness.
func (h *Harness) setup() {
	cfg := h.cfg
	if _, err := system.LoadGamepadMappings(h.resources, h.backend.Input(), cfg.Resources.GamepadDB); err != nil {
		h.logger.Warn("controller database not loaded", "name", cfg.Resources.GamepadDB, "err", err)
	}

	if cfg.Window.Icon != "" {
		if err := h.SetIcon(cfg.Window.Icon); err != nil {
			h.logger.Warn("window icon not set", "name", cfg.Window.Icon, "err", err)
		}
	}

	if cfg.Resources.HotReload {
		w, err := resource.NewWatcher(h.resources.SearchPaths(), h.logger)
		if err != nil {
			h.logger.Warn("hot reload disabled", "err", err)
			return
		}
		h.watcher = w
		h.push("watcher", w.Close)
	}
}

func (h *Harness) push(name string, fn func() error) {
	h.teardown = append(h.teardown, closer{name: name, close: fn})
}

// closeAll pops the teardown stack.
func (h *Harness) closeAll() error {
	var errs []error
	for i := len(h.teardown) - 1; i >= 0; i-- {
		c := h.teardown[i]
		if err := c.close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	h.teardown = nil
	return errors.Join(errs...)
}

// Run shows the window and runs the loop until Quit, a quit event or a
// callback error. Every resource and platform object is released before it
// returns. Run may be called once.
func (h *Harness) Run() error {
	if h.ran {
		return ErrAlreadyRun
	}
	h.ran = true
	if err := h.stage.Transition(state.StageRunning); err != nil {
		return err
	}

	var runErr error
	if err := h.window.Show(); err != nil {
		runErr = fmt.Errorf("show window: %w", err)
	} else {
		h.last = h.clock.Now()
		runErr = h.window.Run(&frame{h: h})
	}

	if err := h.shutdown(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

func (h *Harness) shutdown() error {
	if err := h.stage.Transition(state.StageShuttingDown); err != nil {
		return err
	}
	h.logger.Info("harness shutting down", "steps", h.loop.Steps(), "resources", h.resources.Len())

	h.audio.Close()
	h.resources.FreeAll()
	err := h.controllers.CloseAll()
	err = errors.Join(err, h.closeAll())

	if terr := h.stage.Transition(state.StageStopped); terr != nil {
		err = errors.Join(err, terr)
	}
	return err
}

// Close releases everything of a harness that was never run.
func (h *Harness) Close() error {
	if h.ran {
		return nil
	}
	h.ran = true
	return h.shutdown()
}

// Update registers an update callback.
func (h *Harness) Update(fn loop.UpdateFunc) loop.HandlerID {
	return h.loop.RegisterUpdate(fn)
}

// Draw registers a draw callback.
func (h *Harness) Draw(fn loop.DrawFunc) loop.HandlerID {
	return h.loop.RegisterDraw(fn)
}

// RemoveHandler removes an update or draw callback.
func (h *Harness) RemoveHandler(id loop.HandlerID) {
	h.loop.RemoveHandler(id)
}

// Quit stops the loop at the start of the next iteration.
func (h *Harness) Quit() {
	h.loop.RequestQuit()
}

// Keys returns the key state read and written by update callbacks.
func (h *Harness) Keys() *input.KeyState {
	return h.keys
}

// Steps returns the number of fixed update steps run so far.
func (h *Harness) Steps() uint64 {
	return h.loop.Steps()
}

// LoadResource loads name according to its extension.
func (h *Harness) LoadResource(name string) (resource.Resource, error) {
	return h.resources.Load(name)
}

// LoadTexture loads an image.
func (h *Harness) LoadTexture(name string) (graphics.Texture, error) {
	return h.resources.LoadTexture(name)
}

// LoadSample loads a sound.
func (h *Harness) LoadSample(name string) (*sound.Sample, error) {
	return h.resources.LoadSample(name)
}

// Open opens name as a raw stream. The caller closes it.
func (h *Harness) Open(name string) (io.ReadCloser, error) {
	return h.resources.Open(name)
}

// FreeResource releases name.
func (h *Harness) FreeResource(name string) {
	h.resources.Free(name)
}

// LoadBitmapFont loads a fixed-cell font image.
func (h *Harness) LoadBitmapFont(name string, glyphW, glyphH int, fontMap string) (*graphics.BitmapFont, error) {
	return h.resources.LoadBitmapFont(name, glyphW, glyphH, fontMap)
}

// LoadBMFont loads an AngelCode font.
func (h *Harness) LoadBMFont(name string) (*graphics.BMFont, error) {
	return h.resources.LoadBMFont(name)
}

// Play plays s on a free channel. loops is the number of repeats, -1 forever.
func (h *Harness) Play(s *sound.Sample, loops int) (int, error) {
	return h.audio.Play(s, loops)
}

// StopPlayback halts channel, or every channel for system.AllChannels.
func (h *Harness) StopPlayback(channel int) {
	h.audio.StopPlayback(channel)
}

// HasControllers reports whether a gamepad is connected.
func (h *Harness) HasControllers() bool {
	return h.controllers.HasControllers()
}

// Controllers opens and returns the connected gamepads.
func (h *Harness) Controllers() ([]*system.Controller, error) {
	return h.controllers.Controllers()
}

// SetIcon sets the window icon from the image name. The image is not kept
// as a texture.
func (h *Harness) SetIcon(name string) error {
	img, err := h.resources.ReadImage(name)
	if err != nil {
		return err
	}
	return h.window.SetIcon(img)
}

// Stage returns the lifecycle stage.
func (h *Harness) Stage() state.Stage {
	return h.stage.Current()
}

// Resources returns the resource registry.
func (h *Harness) Resources() *resource.Registry {
	return h.resources
}

// Config returns the configuration the harness was created with.
func (h *Harness) Config() config.Config {
	return h.cfg
}
