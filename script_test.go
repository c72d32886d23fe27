package sprig

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

func TestLoadFrameScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: screenshot, label: initial}
  - {action: position, node: arm, x: 100, y: 200}
  - {action: wait, frames: 3}
  - {action: rotation, node: arm, angle: 45}
`)
	r, err := LoadFrameScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(r.steps))
	}
	if st := r.steps[1]; st.Node != "arm" || st.X == nil || *st.X != 100 || st.Y == nil || *st.Y != 200 {
		t.Errorf("step 1 = %+v", r.steps[1])
	}
	if r.steps[2].Frames != 3 || r.steps[3].Angle != 45 {
		t.Errorf("steps 2-3 = %+v %+v", r.steps[2], r.steps[3])
	}
}

func TestLoadFrameScriptJSON(t *testing.T) {
	r, err := LoadFrameScript([]byte(`{"steps": [{"action": "quit"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 1 || r.steps[0].Action != "quit" {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestLoadFrameScriptErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"invalid", "steps: [", "frame script"},
		{"empty", "steps: []", "no steps"},
		{"unknown action", "steps: [{action: click}]", `unknown action "click"`},
		{"scale missing y", "steps: [{action: scale, node: arm, x: 2}]", "steps[0]: scale needs both x and y"},
		{"scale missing x", "steps: [{action: scale, node: arm, y: 2}]", "scale needs both x and y"},
		{"missing node", "steps: [{action: wait}, {action: move, x: 1}]", "steps[1]: move needs a node"},
	}
	for _, tt := range tests {
		_, err := LoadFrameScript([]byte(tt.data))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func mustScript(t *testing.T, data string) *FrameScript {
	t.Helper()
	r, err := LoadFrameScript([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestFrameScriptNodeSteps(t *testing.T) {
	s := NewScene()
	arm := NewContainer("arm")
	mustAdd(t, s.Root(), arm)
	s.SetFrameScript(mustScript(t, `
steps:
  - {action: position, node: arm, x: 10, y: 20}
  - {action: move, node: arm, x: 1, y: -1}
  - {action: rotation, node: arm, angle: 350}
  - {action: rotate, node: arm, angle: 20}
  - {action: scale, node: arm, x: 2, y: 3}
  - {action: hide, node: arm}
`))

	for range 6 {
		if err := s.Update(0); err != nil {
			t.Fatal(err)
		}
	}
	p := arm.Position()
	assertPoint(t, "position", p.X, p.Y, 11, 19)
	assertNear(t, "rotation", arm.Rotation(), 10)
	sc := arm.Scale()
	assertPoint(t, "scale", sc.X, sc.Y, 2, 3)
	if arm.Visible {
		t.Error("hide step should clear Visible")
	}
}

func TestFrameScriptPositionDefaultsMissingAxis(t *testing.T) {
	s := NewScene()
	arm := NewContainer("arm")
	arm.SetPosition(5, 5)
	mustAdd(t, s.Root(), arm)
	s.SetFrameScript(mustScript(t, `
steps:
  - {action: position, node: arm, x: 7}
  - {action: move, node: arm, y: 3}
  - {action: scale, node: arm, x: 2, y: 0.5}
`))
	for range 3 {
		if err := s.Update(0); err != nil {
			t.Fatal(err)
		}
	}
	p := arm.Position()
	assertPoint(t, "position", p.X, p.Y, 7, 3)
	sc := arm.Scale()
	assertPoint(t, "scale", sc.X, sc.Y, 2, 0.5)
}

func TestFrameScriptWaitAndScreenshot(t *testing.T) {
	s := NewScene()
	r := mustScript(t, `
steps:
  - {action: wait, frames: 3}
  - {action: screenshot, label: after-wait}
`)
	s.SetFrameScript(r)

	for frame := 1; frame <= 3; frame++ {
		if err := s.Update(0); err != nil {
			t.Fatal(err)
		}
		if n := s.PendingScreenshots(); n != 0 {
			t.Fatalf("frame %d: screenshot queued during wait", frame)
		}
	}
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if n := s.PendingScreenshots(); n != 1 {
		t.Errorf("pending = %d, want 1", n)
	}
	if !r.Done() {
		t.Error("script should be done after its last step")
	}
}

func TestFrameScriptTrailingWait(t *testing.T) {
	s := NewScene()
	r := mustScript(t, "steps: [{action: wait, frames: 2}]")
	s.SetFrameScript(r)
	for range 5 {
		if err := s.Update(0); err != nil {
			t.Fatal(err)
		}
	}
	if !r.Done() {
		t.Error("script should finish after a trailing wait")
	}
}

func TestFrameScriptMissingNodeLogged(t *testing.T) {
	buf := captureLogger(t)
	s := NewScene()
	s.SetFrameScript(mustScript(t, "steps: [{action: hide, node: ghost}]"))
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ghost") {
		t.Errorf("log = %q, want the missing node named", buf.String())
	}
}

func TestFrameScriptQuit(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	mustAdd(t, s.Root(), n)
	s.AddTween(TweenPosition(n, 10, 0, 0, ease.Linear))
	s.SetFrameScript(mustScript(t, "steps: [{action: quit}]"))

	err := s.Update(0)
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("err = %v, want ErrQuit", err)
	}
	// The frame still ran.
	assertNear(t, "x", n.Position().X, 10)

	if err := s.Update(0); err != nil {
		t.Errorf("after quit: err = %v, want nil", err)
	}
}

func TestFrameScriptQuitYieldsToUpdateFuncError(t *testing.T) {
	s := NewScene()
	boom := errors.New("boom")
	s.SetUpdateFunc(func(time.Duration) error { return boom })
	s.SetFrameScript(mustScript(t, "steps: [{action: quit}]"))
	if err := s.Update(0); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestGameUpdateTerminatesOnQuit(t *testing.T) {
	s := NewScene()
	s.SetFrameScript(mustScript(t, "steps: [{action: quit}]"))
	g := &game{scene: s, clock: FixedClock{}}
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}
}
