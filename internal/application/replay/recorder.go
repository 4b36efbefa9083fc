package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/harness/internal/domain/input"
)

// ErrEmptyRecording is returned by Save before any frame was recorded.
var ErrEmptyRecording = errors.New("no frames to save")

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a loop running updateRate steps per second
func NewRecorder(updateRate int) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:    Version,
			UpdateRate: updateRate,
			StartTime:  time.Now().Format(time.RFC3339),
			Frames:     make([]FrameInput, 0, 3600), // ~1 minute at 60 iterations per second
		},
		recording: true,
	}
}

// RecordFrame records the elapsed time, the raw keyboard and the held
// controller buttons of one iteration
func (r *Recorder) RecordFrame(elapsed time.Duration, kb *input.Keyboard, buttons map[int][]input.Action) {
	if !r.recording {
		return
	}

	fi := FrameInput{
		F: r.frame,
		E: elapsed.Microseconds(),
	}
	for _, k := range kb.Pressed() {
		fi.K = append(fi.K, k.String())
	}
	for id, actions := range buttons {
		if len(actions) == 0 {
			continue
		}
		if fi.B == nil {
			fi.B = make(map[int][]string, len(buttons))
		}
		for _, a := range actions {
			fi.B[id] = append(fi.B[id], a.String())
		}
	}

	r.data.Frames = append(r.data.Frames, fi)
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrEmptyRecording
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
