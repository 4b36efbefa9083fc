package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/harness/internal/domain/input"
	"github.com/younwookim/harness/internal/infrastructure/platform/headless"
)

var _ headless.Source = new(Replayer)

// Replayer feeds recorded frames to the headless platform
type Replayer struct {
	data    ReplayData
	keys    [][]input.KeyCode
	buttons []map[int][]input.Action
	frame   int
}

// NewReplayer creates a new replayer from replay data. Every key and action
// name is resolved up front so a corrupt recording fails before the session starts.
func NewReplayer(data ReplayData) (*Replayer, error) {
	keys := make([][]input.KeyCode, len(data.Frames))
	buttons := make([]map[int][]input.Action, len(data.Frames))
	for i, fi := range data.Frames {
		for _, name := range fi.K {
			k, err := input.ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", fi.F, err)
			}
			keys[i] = append(keys[i], k)
		}
		for id, names := range fi.B {
			if buttons[i] == nil {
				buttons[i] = make(map[int][]input.Action, len(fi.B))
			}
			for _, name := range names {
				a, err := input.ParseAction(name)
				if err != nil {
					return nil, fmt.Errorf("frame %d, gamepad %d: %w", fi.F, id, err)
				}
				buttons[i][id] = append(buttons[i][id], a)
			}
		}
	}
	return &Replayer{data: data, keys: keys, buttons: buttons}, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next implements headless.Source. It returns the next recorded frame as a step.
func (r *Replayer) Next() (headless.Step, bool) {
	if r.frame >= len(r.data.Frames) {
		return headless.Step{}, false
	}

	fi := r.data.Frames[r.frame]
	step := headless.Step{
		Elapsed: time.Duration(fi.E) * time.Microsecond,
		Keys:    r.keys[r.frame],
		Buttons: r.buttons[r.frame],
	}
	r.frame++
	return step, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Gamepads returns the ids of the devices the recording holds buttons for.
// The headless backend replaying it needs them connected.
func (r *Replayer) Gamepads() []int {
	return r.data.Gamepads()
}

// UpdateRate returns the update rate the session was recorded with
func (r *Replayer) UpdateRate() int {
	return r.data.UpdateRate
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing: frames iterations of
// elapsed each, with no key pressed
func CreateTestReplayData(frames int, elapsed time.Duration) ReplayData {
	data := ReplayData{
		Version:    Version,
		UpdateRate: 80,
		StartTime:  time.Now().Format(time.RFC3339),
		Frames:     make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F: i,
			E: elapsed.Microseconds(),
		}
	}

	return data
}
