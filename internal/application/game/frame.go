package game

import (
	"time"

	"github.com/younwookim/harness/internal/infrastructure/platform"
)

var _ platform.Frame = new(frame)

// frame is one loop iteration as driven by the window.
type frame struct {
	h *Harness
}

// Tick implements platform.Frame.
func (f *frame) Tick() (bool, time.Duration, error) {
	h := f.h
	if h.loop.QuitRequested() {
		return false, 0, platform.ErrTerminated
	}

	now := h.clock.Now()
	elapsed := now - h.last
	h.last = now

	if h.watcher != nil {
		if err := h.resources.ReloadPaths(h.watcher.Drain()); err != nil {
			h.logger.Warn("hot reload incomplete", "err", err)
		}
	}

	if h.input.Poll() {
		h.logger.Debug("quit event received")
		h.loop.RequestQuit()
	}

	if h.recorder != nil {
		raw := h.input.Raw()
		h.recorder.RecordFrame(elapsed, &raw, h.input.Buttons())
	}

	if _, err := h.loop.Advance(elapsed); err != nil {
		return false, 0, err
	}

	draw, wait := h.loop.DrawDue()
	return draw, wait, nil
}

// Render implements platform.Frame.
func (f *frame) Render(c platform.Canvas) error {
	h := f.h
	h.draw.Begin(c)
	defer h.draw.End()

	h.draw.Clear()
	return h.loop.Draw(h.draw)
}
