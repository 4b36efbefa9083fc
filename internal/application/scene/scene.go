// Package scene defines the Scene interface for game screens.
//
// Each screen (menu, play, etc.) implements Scene to handle its own update
// logic and rendering. A Stack holds the active screens; only the top one
// receives updates and draws.
package scene

import "github.com/younwookim/harness/internal/application/render"

// Scene represents a game screen (menu, play, etc.)
type Scene interface {
	// Update advances the scene by one fixed step of dt seconds.
	// Returns an error to terminate the game.
	Update(dt float64) error

	// Draw renders the scene.
	Draw(r *render.Renderer) error

	// OnEnter is called each time the scene becomes the top of the stack.
	OnEnter()

	// OnExit is called each time the scene stops being the top of the stack.
	OnExit()
}

// Stack is a stack of scenes. The zero value is empty and ready to use.
type Stack struct {
	scenes []Scene
}

// Push makes s the current scene.
func (st *Stack) Push(s Scene) {
	if cur := st.Current(); cur != nil {
		cur.OnExit()
	}
	st.scenes = append(st.scenes, s)
	s.OnEnter()
}

// Pop removes the current scene and returns it. The scene below becomes current.
func (st *Stack) Pop() Scene {
	n := len(st.scenes)
	if n == 0 {
		return nil
	}
	top := st.scenes[n-1]
	st.scenes[n-1] = nil
	st.scenes = st.scenes[:n-1]
	top.OnExit()
	if cur := st.Current(); cur != nil {
		cur.OnEnter()
	}
	return top
}

// Replace swaps the current scene for s.
func (st *Stack) Replace(s Scene) {
	n := len(st.scenes)
	if n == 0 {
		st.Push(s)
		return
	}
	st.scenes[n-1].OnExit()
	st.scenes[n-1] = s
	s.OnEnter()
}

// Current returns the top scene, or nil.
func (st *Stack) Current() Scene {
	if len(st.scenes) == 0 {
		return nil
	}
	return st.scenes[len(st.scenes)-1]
}

// Len returns the number of scenes.
func (st *Stack) Len() int {
	return len(st.scenes)
}

// Update updates the current scene. It is an update callback for the loop.
func (st *Stack) Update(dt float64) error {
	if cur := st.Current(); cur != nil {
		return cur.Update(dt)
	}
	return nil
}

// Draw draws the current scene. It is a draw callback for the loop.
func (st *Stack) Draw(r *render.Renderer) error {
	if cur := st.Current(); cur != nil {
		return cur.Draw(r)
	}
	return nil
}
