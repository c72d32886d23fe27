package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for sprig scene events.
var SceneEventType = events.NewEventType[sprig.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) sprig.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sprig.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
