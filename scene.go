package sprig

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, cameras and running
// tweens.
//
// Update, Draw and Do hold the same frame lock, so a frame's draw traversal
// never overlaps a mutation made through Do from another goroutine. Mutating
// nodes directly from other goroutines is not safe. The update func runs with
// the frame lock held and must not call Do.
type Scene struct {
	mu sync.Mutex // frame lock: tree traversal and mutation

	root *Node

	// stateMu guards everything below it except the exported fields. Camera
	// slices are replaced, never mutated in place, so a frame can iterate a
	// snapshot.
	stateMu     sync.Mutex
	cameras     []*Camera
	tweens      []*TweenGroup
	debug       bool
	updateFunc  func(dt time.Duration) error
	store       EntityStore
	script      *FrameScript
	screenshots []string

	// ClearColor fills the screen before drawing when used with Run.
	// The zero value leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir receives the PNGs queued with Screenshot.
	ScreenshotDir string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewContainer("root"), ScreenshotDir: DefaultScreenshotDir}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetUpdateFunc registers a callback run by every Update, after tweens and
// before cameras advance.
func (s *Scene) SetUpdateFunc(fn func(dt time.Duration) error) {
	s.stateMu.Lock()
	s.updateFunc = fn
	s.stateMu.Unlock()
}

// SetEntityStore sets the optional ECS bridge that receives SceneEvents.
// Pass nil to detach it.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.stateMu.Lock()
	s.store = store
	s.stateMu.Unlock()
}

// Do runs fn with the scene lock held. Use it to mutate the tree from a
// goroutine other than the one calling Update and Draw.
func (s *Scene) Do(fn func(root *Node)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.root)
}

// AddTween registers g to be advanced by Update. Finished tweens are dropped.
// Safe to call from the update func; tweens added there start next frame.
func (s *Scene) AddTween(g *TweenGroup) {
	s.stateMu.Lock()
	s.tweens = append(s.tweens, g)
	s.stateMu.Unlock()
}

// NumTweens returns the number of running tweens.
func (s *Scene) NumTweens() int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return len(s.tweens)
}

// Update steps the frame script, advances tweens by dt, calls the update func,
// then advances cameras. Negative durations are treated as zero. After a
// script's quit step the frame still completes and ErrQuit is returned unless
// the update func failed.
func (s *Scene) Update(dt time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt < 0 {
		dt = 0
	}

	s.stateMu.Lock()
	running := s.tweens
	cameras := s.cameras
	updateFunc := s.updateFunc
	store := s.store
	script := s.script
	s.stateMu.Unlock()

	var quit error
	if script != nil {
		quit = script.step(s)
	}

	var live []*TweenGroup
	for _, g := range running {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
			continue
		}
		if store != nil && g.target != nil && !g.target.IsDisposed() {
			store.EmitEvent(SceneEvent{Type: EventTweenFinished, Node: g.target})
		}
	}

	var err error
	if updateFunc != nil {
		err = updateFunc(dt)
	}

	// Cameras last, so follow targets reflect this frame's movement.
	for _, cam := range cameras {
		if cam.update(dt) && store != nil {
			store.EmitEvent(SceneEvent{Type: EventScrollFinished, Camera: cam})
		}
	}

	// Keep tweens added while this frame ran.
	s.stateMu.Lock()
	s.tweens = append(live, s.tweens[len(running):]...)
	s.stateMu.Unlock()
	if err == nil {
		err = quit
	}
	return err
}

// Draw renders the tree into target. Without cameras the root is drawn with
// the identity transform. Otherwise the tree is drawn once per camera with the
// camera's view transform, clipped to its viewport when target implements
// Clipper.
func (s *Scene) Draw(target RenderTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stateMu.Lock()
	cameras := s.cameras
	debug := s.debug
	s.stateMu.Unlock()

	var stats frameStats
	var t0 time.Time
	if debug {
		t0 = time.Now()
	}

	if len(cameras) == 0 {
		var dst RenderTarget = target
		if debug {
			dst = &countTarget{inner: target, stats: &stats}
		}
		s.root.Draw(dst, Identity())
		stats.passes = 1
	} else {
		for _, cam := range cameras {
			s.drawWithCamera(target, cam, &stats, debug)
			stats.passes++
		}
	}

	if debug {
		stats.traverseTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// DrawImage is Draw onto an ebiten image.
func (s *Scene) DrawImage(screen *ebiten.Image) {
	s.Draw(NewImageTarget(screen))
}

func (s *Scene) drawWithCamera(target RenderTarget, cam *Camera, stats *frameStats, debug bool) {
	dst := target
	if c, ok := target.(Clipper); ok {
		dst = c.Clip(cam.Viewport)
	}
	if cam.CullEnabled {
		dst = &cullTarget{inner: dst, viewport: cam.Viewport, stats: stats}
	} else if debug {
		dst = &countTarget{inner: dst, stats: stats}
	}
	s.root.Draw(dst, cam.ViewTransform())
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := NewCamera(viewport)
	s.stateMu.Lock()
	cams := make([]*Camera, len(s.cameras), len(s.cameras)+1)
	copy(cams, s.cameras)
	s.cameras = append(cams, cam)
	s.stateMu.Unlock()
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	cams := make([]*Camera, 0, len(s.cameras))
	for _, c := range s.cameras {
		if c != cam {
			cams = append(cams, c)
		}
	}
	s.cameras = cams
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.cameras
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings, non-finite transforms and per-frame stats are logged
// through Logger.
func (s *Scene) SetDebugMode(enabled bool) {
	s.stateMu.Lock()
	s.debug = enabled
	s.stateMu.Unlock()
	globalDebug.Store(enabled)
}
