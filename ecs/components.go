package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// NodeRef links an entity to the scene node it drives.
type NodeRef struct {
	Node *sprig.Node
}

// Transform2D is the decomposed transform of an entity's node.
type Transform2D struct {
	Position sprig.Vec2
	Rotation float64 // degrees, clockwise
	Scale    sprig.Vec2
	Origin   sprig.Vec2
}

var (
	// NodeComponent holds the entity's node.
	NodeComponent = donburi.NewComponentType[NodeRef]()
	// TransformComponent holds the entity's transform.
	TransformComponent = donburi.NewComponentType[Transform2D]()
)

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent, TransformComponent))

// Spawn creates an entity for node with its current transform.
func Spawn(world donburi.World, node *sprig.Node) donburi.Entity {
	e := world.Create(NodeComponent, TransformComponent)
	entry := world.Entry(e)
	NodeComponent.SetValue(entry, NodeRef{Node: node})
	TransformComponent.SetValue(entry, capture(node))
	return e
}

// SyncTransforms writes every entity's Transform2D into its node. Entities
// whose node is nil or disposed are removed from the world. It returns the
// number of nodes updated.
func SyncTransforms(world donburi.World) int {
	var stale []donburi.Entity
	n := 0
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		node := NodeComponent.Get(entry).Node
		if node == nil || node.IsDisposed() {
			stale = append(stale, entry.Entity())
			return
		}
		tr := TransformComponent.Get(entry)
		node.SetPosition(tr.Position.X, tr.Position.Y)
		node.SetRotation(tr.Rotation)
		node.SetScale(tr.Scale.X, tr.Scale.Y)
		node.SetOrigin(tr.Origin.X, tr.Origin.Y)
		// Store the normalized rotation back.
		tr.Rotation = node.Rotation()
		n++
	})
	for _, e := range stale {
		world.Remove(e)
	}
	return n
}

// CaptureTransforms copies each node's current transform into its entity's
// Transform2D.
func CaptureTransforms(world donburi.World) {
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		node := NodeComponent.Get(entry).Node
		if node == nil || node.IsDisposed() {
			return
		}
		TransformComponent.SetValue(entry, capture(node))
	})
}

func capture(node *sprig.Node) Transform2D {
	return Transform2D{
		Position: node.Position(),
		Rotation: node.Rotation(),
		Scale:    node.Scale(),
		Origin:   node.Origin(),
	}
}
