package input

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Script is a recorded session: input events and UI commands keyed by frame.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step happens at the start of frame At.
type Step struct {
	At      int        `yaml:"at"`
	Press   []Key      `yaml:"press"`
	Release []Key      `yaml:"release"`
	Cursor  []float32  `yaml:"cursor"` // x, y
	Look    []float32  `yaml:"look"`   // yaw, pitch in degrees
	Click   *SlotClick `yaml:"click"`
	Counter bool       `yaml:"counter_click"`
	Split   int        `yaml:"split"` // confirm the split panel with this amount
	Recipe  string     `yaml:"select_recipe"`
}

// SlotClick clicks a slot of the open container panel.
type SlotClick struct {
	Slot   int    `yaml:"slot"`
	Button string `yaml:"button"` // left or right
	Double bool   `yaml:"double"`
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(raw)
}

// ParseScript decodes a YAML script and orders its steps by frame.
func ParseScript(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, st := range s.Steps {
		if st.At < 0 {
			return nil, fmt.Errorf("parsing script: step %d: negative frame %d", i, st.At)
		}
		if len(st.Cursor) != 0 && len(st.Cursor) != 2 {
			return nil, fmt.Errorf("parsing script: step %d: cursor needs 2 values", i)
		}
		if len(st.Look) != 0 && len(st.Look) != 2 {
			return nil, fmt.Errorf("parsing script: step %d: look needs 2 values", i)
		}
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return &s, nil
}

// StepsAt returns the steps of frame.
func (s *Script) StepsAt(frame int) []Step {
	var out []Step
	for _, st := range s.Steps {
		if st.At == frame {
			out = append(out, st)
		}
	}
	return out
}

// LastFrame returns the frame of the final step, or -1 for an empty script.
func (s *Script) LastFrame() int {
	if len(s.Steps) == 0 {
		return -1
	}
	return s.Steps[len(s.Steps)-1].At
}

// Apply feeds the input part of the step to im.
func (st Step) Apply(im *InputManager) {
	for _, k := range st.Press {
		im.HandleKeyEvent(k, true)
	}
	for _, k := range st.Release {
		im.HandleKeyEvent(k, false)
	}
	if len(st.Cursor) == 2 {
		im.SetCursor(st.Cursor[0], st.Cursor[1])
	}
	if len(st.Look) == 2 {
		im.HandleLook(st.Look[0], st.Look[1])
	}
}
