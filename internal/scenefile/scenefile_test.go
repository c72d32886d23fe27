package scenefile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/sprig"
)

const testScene = `
window:
  title: test
  width: 320
  height: 240
  clear: "#ff000080"
cameras:
  - viewport: [0, 0, 320, 240]
    center: [0, 0]
    zoom: 2
    follow: b
nodes:
  - name: a
    position: [10, 0]
    spin: 90
    children:
      - name: b
        position: [0, 5]
        shape:
          kind: rect
          size: [1, 1]
  - name: hidden
    visible: false
    scale: [2, 3]
    shape:
      kind: circle
      radius: 3
      sides: 4
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	if f.Window.Title != "test" || f.Window.Width != 320 {
		t.Errorf("Window = %+v", f.Window)
	}
	if len(f.Nodes) != 2 || len(f.Nodes[0].Children) != 1 {
		t.Fatalf("Nodes = %+v", f.Nodes)
	}
	if f.Nodes[0].Children[0].Shape.Kind != "rect" {
		t.Error("nested shape not decoded")
	}
	if f.Nodes[1].Scale == nil || *f.Nodes[1].Scale != [2]float64{2, 3} {
		t.Errorf("Scale = %v", f.Nodes[1].Scale)
	}
}

func TestBuildTreeDrawsAtGlobalPosition(t *testing.T) {
	f, err := Parse([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	root, err := f.BuildTree("root")
	if err != nil {
		t.Fatal(err)
	}

	var rec sprig.CommandRecorder
	root.Draw(&rec, sprig.Identity())
	if len(rec.Commands) != 1 {
		t.Fatalf("commands = %d, want 1 (hidden node skipped)", len(rec.Commands))
	}
	x, y := rec.Commands[0].Transform.TransformPoint(0, 0)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Errorf("b drawn at (%v, %v), want (10, 5)", x, y)
	}
}

func TestBuildScene(t *testing.T) {
	f, err := Parse([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	scene, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := sprig.RGBA(255, 0, 0, 128)
	if scene.ClearColor != want {
		t.Errorf("ClearColor = %v, want %v", scene.ClearColor, want)
	}

	cams := scene.Cameras()
	if len(cams) != 1 || cams[0].Zoom != 2 {
		t.Fatalf("cameras = %+v", cams)
	}

	a := scene.Root().Find("a")
	if err := scene.Update(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Rotation()-45) > 1e-9 {
		t.Errorf("spin: Rotation = %v, want 45", a.Rotation())
	}
	// The camera follows b, which orbits with a.
	bx, by := scene.Root().Find("b").LocalToWorld(0, 0)
	if math.Abs(cams[0].X-bx) > 1e-9 || math.Abs(cams[0].Y-by) > 1e-9 {
		t.Errorf("camera at (%v, %v), want (%v, %v)", cams[0].X, cams[0].Y, bx, by)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad color", "window: {clear: red}\n", "invalid color"},
		{"bad kind", "nodes: [{name: x, shape: {kind: star}}]\n", "unknown shape kind"},
		{"bad primitive", "nodes: [{name: x, shape: {kind: vertices, primitive: hexes}}]\n", "unknown primitive"},
		{"short convex", "nodes: [{name: x, shape: {kind: convex, points: [[0, 0], [1, 1]]}}]\n", "at least 3 points"},
		{"nested", "nodes: [{name: p, children: [{name: c, shape: {kind: rect, fill: nope}}]}]\n", "nodes[0](p).children[0](c)"},
		{"huge circle", "nodes: [{name: x, shape: {kind: circle, radius: 5, sides: 65535}}]\n", "sides must be between 0 and 10000"},
		{"negative sides", "nodes: [{name: x, shape: {kind: circle, sides: -3}}]\n", "sides must be between"},
		{"viewport", "cameras: [{viewport: [0, 0, 0, 10]}]\n", "positive size"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.yaml))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestBuildUnknownFollowTarget(t *testing.T) {
	f, err := Parse([]byte("cameras: [{viewport: [0, 0, 10, 10], follow: ghost}]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Build(); err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("err = %v, want follow target error", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want sprig.Color
		ok   bool
	}{
		{"#ffffff", sprig.ColorWhite, true},
		{"#000000ff", sprig.ColorBlack, true},
		{"White", sprig.ColorWhite, true},
		{"transparent", sprig.ColorTransparent, true},
		{"#12345", sprig.Color{}, false},
		{"#gggggg", sprig.Color{}, false},
		{"ffffff", sprig.Color{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(custom, []byte("window: {title: custom}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(custom, "")
	if err != nil || f.Window.Title != "custom" {
		t.Errorf("custom: %+v, %v", f.Window, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("missing custom path should fail")
	}

	t.Chdir(dir)
	if err := os.Mkdir("scenes", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("scenes", "level1.yaml"), []byte("window: {title: level1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = Load("", "level1")
	if err != nil || f.Window.Title != "level1" {
		t.Errorf("local: %+v, %v", f.Window, err)
	}

	f, err = Load("", "nope")
	if err != nil || f.Window.Title != "sprig" {
		t.Errorf("fallback: %+v, %v", f.Window, err)
	}
}

func TestDefaultSceneBuilds(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	scene, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if scene.Root().Find("moon") == nil {
		t.Error("default scene should contain the moon")
	}
	var rec sprig.CommandRecorder
	scene.Draw(&rec)
	if len(rec.Commands) == 0 {
		t.Error("default scene drew nothing")
	}
}

func TestBakeReplacesSubtree(t *testing.T) {
	f, err := Parse([]byte(`
nodes:
  - name: group
    position: [100, 100]
    bake: true
    shape: {kind: rect, size: [4, 4]}
    children:
      - name: inner
        position: [-2, 6]
        shape: {kind: rect, size: [3, 3]}
`))
	if err != nil {
		t.Fatal(err)
	}
	root, err := f.BuildTree("root")
	if err != nil {
		t.Fatal(err)
	}
	group := root.Find("group")
	if group.Drawable != nil || group.NumChildren() != 1 {
		t.Fatalf("group: drawable %v, %d children", group.Drawable, group.NumChildren())
	}
	baked := group.ChildAt(0)
	if _, ok := baked.Drawable.(*sprig.Sprite); !ok {
		t.Fatalf("baked drawable = %T, want *sprig.Sprite", baked.Drawable)
	}
	if p := baked.Position(); p != (sprig.Vec2{X: -2, Y: 0}) {
		t.Errorf("baked position = %v, want (-2, 0)", p)
	}
	want := sprig.Rect{X: 98, Y: 100, Width: 6, Height: 9}
	if got := baked.GlobalBounds(); got != want {
		t.Errorf("baked bounds = %+v, want %+v", got, want)
	}
	if root.Find("inner") != nil {
		t.Error("inner should be detached after baking")
	}
}

func TestBakeDropsDetachedSpins(t *testing.T) {
	f, err := Parse([]byte(`
nodes:
  - name: group
    spin: 10
    bake: true
    children:
      - name: wheel
        spin: 90
        shape: {kind: rect, size: [4, 4]}
        children:
          - name: hub
            spin: 45
            shape: {kind: rect, size: [1, 1]}
  - name: free
    spin: 30
`))
	if err != nil {
		t.Fatal(err)
	}
	var spins []spinner
	group, err := buildNode(&f.Nodes[0], &spins)
	if err != nil {
		t.Fatal(err)
	}
	if len(spins) != 1 || spins[0].node != group {
		t.Fatalf("spins = %+v, want only the baked group", spins)
	}

	if _, err := buildNode(&f.Nodes[1], &spins); err != nil {
		t.Fatal(err)
	}
	if len(spins) != 2 || spins[1].node.Name != "free" {
		t.Errorf("spins after free = %+v", spins)
	}
}
