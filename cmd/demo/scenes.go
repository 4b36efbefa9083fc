package main

import (
	"fmt"
	"math/rand"

	"github.com/younwookim/harness/internal/application/render"
	"github.com/younwookim/harness/internal/application/scene"
	"github.com/younwookim/harness/internal/domain/graphics"
	"github.com/younwookim/harness/internal/domain/input"
)

const (
	screenW = 240
	screenH = 240

	playerSpeed = 80.0 // pixels per second
	goodies     = 3
	goodieSeed  = 2015
)

var (
	_ scene.Scene = new(menu)
	_ scene.Scene = new(play)
)

// menu is the title screen. S starts a game, Escape quits.
type menu struct {
	d       *Demo
	counter float64
}

func newMenu(d *Demo) *menu {
	return &menu{d: d}
}

func (m *menu) OnEnter() {
	m.counter = 0
}

func (m *menu) OnExit() {}

func (m *menu) Update(dt float64) error {
	keys := m.d.h.Keys()
	if keys.Pressed(input.KeyEscape) {
		m.d.h.Quit()
		return nil
	}
	if keys.Pressed(input.KeyS) {
		keys.Consume(input.KeyS)
		m.d.scenes.Push(newPlay(m.d))
		return nil
	}

	// blink period of 1.2s
	m.counter += dt * 10
	if m.counter > 12 {
		m.counter -= 12
	}
	return nil
}

func (m *menu) Draw(r *render.Renderer) error {
	a := m.d.assets
	r.Draw(a.background)
	r.Draw(a.title, render.Dst(graphics.Rect{X: 0, Y: 40, W: 240, H: 60}))

	center := render.Align(graphics.AlignCenter)
	r.DrawText(a.font, screenW/2, 10, "Copyright (c) 2015 usebox.net", center)
	if m.counter > 2 {
		r.DrawText(a.font, screenW/2, 130, "Press 's' to start!", center)
	}
	r.DrawText(a.font, screenW/2, 200, "Use the arrows to move", center)
	r.DrawText(a.font, screenW/2, 212, "and collect the goodies!", center)
	r.DrawText(a.font, screenW/2, 226, "Press d to toggle debug", center)
	return nil
}

type point struct {
	x, y float64
}

// play moves the player with the arrow keys. Escape goes back to the menu.
type play struct {
	d      *Demo
	rng    *rand.Rand
	player point
	items  []point
}

func newPlay(d *Demo) *play {
	return &play{d: d}
}

func (p *play) OnEnter() {
	if p.rng != nil {
		return
	}
	// fixed seed keeps replays deterministic
	p.rng = rand.New(rand.NewSource(goodieSeed))
	p.player = point{x: screenW/2 - 8, y: screenH/2 - 8}
	p.items = make([]point, goodies)
	for i := range p.items {
		p.items[i] = p.spawn()
	}
}

func (p *play) OnExit() {}

func (p *play) spawn() point {
	return point{
		x: float64(p.rng.Intn(screenW - goodieCell.W)),
		y: float64(p.rng.Intn(screenH-40-goodieCell.H) + 24),
	}
}

func (p *play) Update(dt float64) error {
	keys := p.d.h.Keys()
	if keys.Pressed(input.KeyEscape) {
		keys.Consume(input.KeyEscape)
		p.d.scenes.Pop()
		return nil
	}

	step := playerSpeed * dt
	if keys.Pressed(input.KeyLeft) {
		p.player.x -= step
	}
	if keys.Pressed(input.KeyRight) {
		p.player.x += step
	}
	if keys.Pressed(input.KeyUp) {
		p.player.y -= step
	}
	if keys.Pressed(input.KeyDown) {
		p.player.y += step
	}
	p.player.x = clamp(p.player.x, 0, screenW-float64(playerCell.W))
	p.player.y = clamp(p.player.y, 0, screenH-float64(playerCell.H))

	for i, it := range p.items {
		if overlaps(p.player, playerCell, it, goodieCell) {
			p.d.score++
			p.d.playCoin()
			p.items[i] = p.spawn()
		}
	}
	return nil
}

func (p *play) Draw(r *render.Renderer) error {
	a := p.d.assets
	r.Draw(a.background)
	for _, it := range p.items {
		r.Draw(a.goodie, render.At(int(it.x), int(it.y)))
	}
	r.Draw(a.player, render.At(int(p.player.x), int(p.player.y)))

	r.DrawText(a.font, 4, 4, fmt.Sprintf("Score: %d", p.d.score))
	r.DrawText(a.font, screenW-4, 4, "ESC for menu", render.Align(graphics.AlignRight))
	return nil
}

func overlaps(a point, ar graphics.Rect, b point, br graphics.Rect) bool {
	return a.x < b.x+float64(br.W) && b.x < a.x+float64(ar.W) &&
		a.y < b.y+float64(br.H) && b.y < a.y+float64(ar.H)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
