package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Action represents a logical game action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionInteract
	ActionEscape
	ActionPointerPrimary
	ActionPointerSecondary
	ActionModShift
	ActionToggleProfiling
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"move_forward", "move_backward", "move_left", "move_right",
	"interact", "escape", "pointer_primary", "pointer_secondary",
	"mod_shift", "toggle_profiling",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Key names a physical key or mouse button, e.g. "E", "Escape", "MouseLeft".
type Key string

// InputManager keeps keyboard and mouse state and maps physical keys/buttons to logical actions
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[Key][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Previous frame state (for edge detection)
	prevState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Cursor position in normalised device coordinates, [-1, 1] on both axes
	cursor mgl32.Vec2
	// Mouse look accumulated this frame, in degrees
	look mgl32.Vec2
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[Key][]Action),
	}

	im.BindKey("W", ActionMoveForward)
	im.BindKey("S", ActionMoveBackward)
	im.BindKey("A", ActionMoveLeft)
	im.BindKey("D", ActionMoveRight)
	im.BindKey("E", ActionInteract)
	im.BindKey("Escape", ActionEscape)
	im.BindKey("V", ActionToggleProfiling)
	im.BindKey("LeftShift", ActionModShift)
	im.BindKey("RightShift", ActionModShift)

	im.BindKey("MouseLeft", ActionPointerPrimary)
	im.BindKey("MouseRight", ActionPointerSecondary)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key or mouse button event and updates internal state
func (im *InputManager) HandleKeyEvent(key Key, pressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()

	for _, act := range im.keyToActions[key] {
		// Detect edges immediately when event arrives
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// SetCursor moves the cursor. Coordinates are clamped to [-1, 1].
func (im *InputManager) SetCursor(x, y float32) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.cursor = mgl32.Vec2{mgl32.Clamp(x, -1, 1), mgl32.Clamp(y, -1, 1)}
}

// Cursor returns the cursor position in normalised device coordinates.
func (im *InputManager) Cursor() mgl32.Vec2 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.cursor
}

// HandleLook accumulates a mouse look movement in degrees (yaw, pitch).
func (im *InputManager) HandleLook(yaw, pitch float32) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.look = im.look.Add(mgl32.Vec2{yaw, pitch})
}

// Look returns the mouse look accumulated this frame.
func (im *InputManager) Look() mgl32.Vec2 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.look
}

// PostUpdate must be called at the end of each frame to update edge detection states
// This should be called after all input checks are done
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	// Reset edge flags and update prev state
	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
		im.prevState[i] = im.currentState[i]
	}
	im.look = mgl32.Vec2{}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}
