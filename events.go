package sprig

// EventType identifies a SceneEvent.
type EventType uint8

const (
	// EventTweenFinished fires when a tween added with Scene.AddTween reaches
	// its end. Tweens stopped by disposal do not fire it.
	EventTweenFinished EventType = iota
	// EventScrollFinished fires when a Camera.ScrollTo animation completes.
	EventScrollFinished
)

func (e EventType) String() string {
	switch e {
	case EventTweenFinished:
		return "tween-finished"
	case EventScrollFinished:
		return "scroll-finished"
	default:
		return "unknown"
	}
}

// SceneEvent is emitted by Scene.Update. Node is set for tween events and
// Camera for scroll events.
type SceneEvent struct {
	Type   EventType
	Node   *Node
	Camera *Camera
}

// EntityStore is the interface for optional ECS integration. Scene.Update
// calls EmitEvent with the frame lock held, so implementations must not call
// back into Scene.Do.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}
