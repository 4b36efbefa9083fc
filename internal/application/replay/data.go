// Package replay records the raw input of a session and plays it back
// through the headless platform.
package replay

import "sort"

// Version is written into every recording.
const Version = "2.0"

// FrameInput records input state for a single loop iteration
type FrameInput struct {
	F int      `json:"f"`           // Iteration number
	E int64    `json:"e"`           // Elapsed real time in microseconds
	K []string `json:"k,omitempty"` // Pressed keys, by name

	B map[int][]string `json:"b,omitempty"` // Held controller buttons per device id, by action name
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version    string       `json:"version"`
	UpdateRate int          `json:"updateRate"`
	StartTime  string       `json:"startTime"`
	Frames     []FrameInput `json:"frames"`
}

// Gamepads returns the sorted ids of the devices with a recorded button.
func (d ReplayData) Gamepads() []int {
	seen := map[int]bool{}
	var ids []int
	for _, fi := range d.Frames {
		for id := range fi.B {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return ids
}
