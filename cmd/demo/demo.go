package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/application/game"
	"github.com/younwookim/harness/internal/application/loop"
	"github.com/younwookim/harness/internal/application/scene"
	"github.com/younwookim/harness/internal/application/system"
	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/domain/sound"
)

// Sprite cells on sprites.png
var (
	playerCell = graphics.Rect{X: 0, Y: 0, W: 16, H: 16}
	goodieCell = graphics.Rect{X: 16, Y: 0, W: 16, H: 16}
)

type assets struct {
	background graphics.Texture
	title      graphics.Texture
	player     graphics.Texture
	goodie     graphics.Texture
	font       *graphics.BitmapFont
	coin       *sound.Sample
}

func loadAssets(h *game.Harness) (assets, error) {
	var (
		a   assets
		err error
	)
	if a.background, err = h.LoadTexture("background.png"); err != nil {
		return a, err
	}
	if a.title, err = h.LoadTexture("title.png"); err != nil {
		return a, err
	}
	sheet, err := h.LoadTexture("sprites.png")
	if err != nil {
		return a, err
	}
	a.player = sheet.Subtexture(playerCell.X, playerCell.Y, playerCell.W, playerCell.H)
	a.goodie = sheet.Subtexture(goodieCell.X, goodieCell.Y, goodieCell.W, goodieCell.H)

	if a.font, err = h.LoadBitmapFont("font.png", 7, 13, ""); err != nil {
		return a, err
	}
	if a.coin, err = h.LoadSample("coin.wav"); err != nil {
		return a, err
	}
	return a, nil
}

// Demo is the example game: a title menu and a screen with goodies to collect.
type Demo struct {
	h      *game.Harness
	logger *log.Logger
	assets assets
	scenes scene.Stack

	debug   loop.HandlerID
	debugOn bool
	score   int
}

// NewDemo loads the demo assets and registers its callbacks on h.
func NewDemo(h *game.Harness, logger *log.Logger) (*Demo, error) {
	a, err := loadAssets(h)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	d := &Demo{
		h:      h,
		logger: logger,
		assets: a,
	}

	if h.HasControllers() {
		pads, err := h.Controllers()
		for _, p := range pads {
			logger.Info("controller found", "id", p.ID(), "name", p.Name())
		}
		if err != nil {
			logger.Warn("some controllers could not be opened", "err", err)
		}
	}

	h.Update(d.toggleDebug)
	h.Update(d.scenes.Update)
	h.Draw(d.scenes.Draw)
	d.scenes.Push(newMenu(d))
	return d, nil
}

// Score returns the number of goodies collected.
func (d *Demo) Score() int {
	return d.score
}

// Scenes returns the scene stack.
func (d *Demo) Scenes() *scene.Stack {
	return &d.scenes
}

// DebugOn reports whether the debug update handler is registered.
func (d *Demo) DebugOn() bool {
	return d.debugOn
}

func (d *Demo) toggleDebug(float64) error {
	keys := d.h.Keys()
	if !keys.Pressed(input.KeyD) {
		return nil
	}
	keys.Consume(input.KeyD)

	if d.debugOn {
		d.h.RemoveHandler(d.debug)
		d.debugOn = false
		d.logger.Info("debug update off")
		return nil
	}
	d.debug = d.h.Update(func(dt float64) error {
		d.logger.Debug("update", "dt", dt, "step", d.h.Steps())
		return nil
	})
	d.debugOn = true
	d.logger.Info("debug update on")
	return nil
}

func (d *Demo) playCoin() {
	if _, err := d.h.Play(d.assets.coin, 0); err != nil {
		if errors.Is(err, system.ErrNoFreeChannel) {
			return
		}
		d.logger.Warn("coin sound not played", "err", err)
	}
}
