// Package ebitenplatform implements the platform capabilities on top of Ebitengine.
package ebitenplatform

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/pkg/errors"

	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var _ platform.Backend = new(Backend)

// Backend is the Ebitengine platform.
type Backend struct {
	clock *clock
	input *Input
	mixer *Mixer
}

// New creates an Ebitengine backend. Nothing native is touched until Init.
func New() *Backend {
	return &Backend{
		clock: &clock{},
		input: newInput(),
	}
}

// Init implements platform.Backend.
func (b *Backend) Init() error {
	b.clock.start = time.Now()
	// the harness decides when a frame is drawn; unchanged frames keep the previous image
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowClosingHandled(true)
	return nil
}

// Quit implements platform.Backend.
func (b *Backend) Quit() error {
	return nil
}

// Clock implements platform.Backend.
func (b *Backend) Clock() platform.Clock {
	return b.clock
}

// Input implements platform.Backend.
func (b *Backend) Input() platform.Input {
	return b.input
}

// OpenAudio implements platform.Backend.
func (b *Backend) OpenAudio(cfg platform.AudioConfig) (platform.Mixer, error) {
	if cfg.SampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate %d", cfg.SampleRate)
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(cfg.SampleRate)
	} else if ctx.SampleRate() != cfg.SampleRate {
		return nil, errors.Errorf("audio context already open at %d Hz", ctx.SampleRate())
	}
	b.mixer = &Mixer{ctx: ctx}
	return b.mixer, nil
}

// OpenWindow implements platform.Backend.
func (b *Backend) OpenWindow(cfg platform.WindowConfig) (platform.Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	zoom := cfg.Zoom
	if zoom < 1 {
		zoom = 1
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*zoom, cfg.Height*zoom)
	ebiten.SetVsyncEnabled(cfg.VSync)
	// one Update per displayed frame; the fixed step is kept by the harness accumulator
	ebiten.SetTPS(ebiten.SyncWithFPS)

	return &Window{config: cfg, input: b.input}, nil
}

type clock struct {
	start time.Time
}

func (c *clock) Now() time.Duration {
	return time.Since(c.start)
}

func (c *clock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
