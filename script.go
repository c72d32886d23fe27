package sprig

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of a FrameScript. Node names are resolved with
// Node.Find from the scene root when the step runs.
type scriptStep struct {
	Action string   `yaml:"action"`
	Label  string   `yaml:"label,omitempty"`
	Node   string   `yaml:"node,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	Angle  float64  `yaml:"angle,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script actions. Node actions take a "node" name; move and position read x
// and y (missing means 0); scale requires both x and y; rotate and rotation
// read angle in degrees.
var scriptActions = map[string]bool{
	"wait":       true, // pause for "frames" updates
	"screenshot": true, // queue Scene.Screenshot with "label"
	"move":       true,
	"position":   true,
	"rotate":     true,
	"rotation":   true,
	"scale":      true,
	"show":       true,
	"hide":       true,
	"quit":       true, // Update returns ErrQuit
}

var nodeActions = map[string]bool{
	"move": true, "position": true, "rotate": true, "rotation": true,
	"scale": true, "show": true, "hide": true,
}

// FrameScript drives a scene through a fixed sequence of steps, one per
// Update. It is used for reproducible captures: position some nodes, wait a
// few frames, take a screenshot, quit.
type FrameScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadFrameScript parses a script document. JSON works too, since YAML
// accepts it.
//
//	steps:
//	  - {action: rotation, node: arm, angle: 45}
//	  - {action: wait, frames: 2}
//	  - {action: screenshot, label: arm-45}
//	  - {action: quit}
func LoadFrameScript(data []byte) (*FrameScript, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("frame script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("frame script: no steps")
	}
	var errs []error
	for i, st := range f.Steps {
		switch {
		case !scriptActions[st.Action]:
			errs = append(errs, fmt.Errorf("steps[%d]: unknown action %q", i, st.Action))
		case nodeActions[st.Action] && st.Node == "":
			errs = append(errs, fmt.Errorf("steps[%d]: %s needs a node", i, st.Action))
		case st.Action == "scale" && (st.X == nil || st.Y == nil):
			errs = append(errs, fmt.Errorf("steps[%d]: scale needs both x and y", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("frame script: %w", err)
	}
	return &FrameScript{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (r *FrameScript) Done() bool {
	return r.done
}

// SetFrameScript attaches a script that Update steps once per frame before
// tweens run. Pass nil to detach it.
func (s *Scene) SetFrameScript(r *FrameScript) {
	s.stateMu.Lock()
	s.script = r
	s.stateMu.Unlock()
}

// step runs at most one step. It returns ErrQuit for the quit action.
func (r *FrameScript) step(s *Scene) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "quit":
		r.done = true
		return ErrQuit
	default:
		r.applyNodeStep(s.root, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

func (r *FrameScript) applyNodeStep(root *Node, st scriptStep) {
	n := root.Find(st.Node)
	if n == nil {
		Logger().Warn("frame script: node not found", "step", r.cursor-1, "node", st.Node)
		return
	}
	switch st.Action {
	case "move":
		n.Move(orZero(st.X), orZero(st.Y))
	case "position":
		n.SetPosition(orZero(st.X), orZero(st.Y))
	case "rotate":
		n.Rotate(st.Angle)
	case "rotation":
		n.SetRotation(st.Angle)
	case "scale":
		n.SetScale(*st.X, *st.Y)
	case "show":
		n.Visible = true
	case "hide":
		n.Visible = false
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
