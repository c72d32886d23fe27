package scenefile

import (
	"fmt"
	"time"

	"github.com/phanxgames/sprig"
)

// spinner rotates a node at a constant rate.
type spinner struct {
	node *sprig.Node
	rate float64 // degrees per second
}

// Build creates a scene from f: the node tree under the scene root, the
// cameras, and an update func that applies every node's spin.
func (f File) Build() (*sprig.Scene, error) {
	scene := sprig.NewScene()
	if f.Window.Clear != "" {
		c, err := ParseColor(f.Window.Clear)
		if err != nil {
			return nil, fmt.Errorf("window.clear: %w", err)
		}
		scene.ClearColor = c
	}

	var spins []spinner
	for i := range f.Nodes {
		n, err := buildNode(&f.Nodes[i], &spins)
		if err != nil {
			return nil, err
		}
		if err := scene.Root().AddChild(n); err != nil {
			return nil, fmt.Errorf("attach %q: %w", n.Name, err)
		}
	}

	for i, c := range f.Cameras {
		cam := scene.NewCamera(sprig.Rect{X: c.Viewport[0], Y: c.Viewport[1], Width: c.Viewport[2], Height: c.Viewport[3]})
		if c.Center != nil {
			cam.X, cam.Y = c.Center[0], c.Center[1]
		}
		if c.Zoom != 0 {
			cam.Zoom = c.Zoom
		}
		cam.Rotation = c.Rotation
		if c.Cull != nil {
			cam.CullEnabled = *c.Cull
		}
		if c.Follow != "" {
			target := scene.Root().Find(c.Follow)
			if target == nil {
				return nil, fmt.Errorf("cameras[%d]: follow target %q not found", i, c.Follow)
			}
			lerp := c.Lerp
			if lerp == 0 {
				lerp = 1
			}
			cam.Follow(target, 0, 0, lerp)
		}
	}

	if len(spins) > 0 {
		scene.SetUpdateFunc(func(dt time.Duration) error {
			secs := dt.Seconds()
			for _, s := range spins {
				s.node.Rotate(s.rate * secs)
			}
			return nil
		})
	}
	return scene, nil
}

// BuildTree creates the node tree alone, under a fresh container named name.
// Spin rates are ignored.
func (f File) BuildTree(name string) (*sprig.Node, error) {
	root := sprig.NewContainer(name)
	for i := range f.Nodes {
		n, err := buildNode(&f.Nodes[i], nil)
		if err != nil {
			return nil, err
		}
		if err := root.AddChild(n); err != nil {
			return nil, fmt.Errorf("attach %q: %w", n.Name, err)
		}
	}
	return root, nil
}

func buildNode(desc *Node, spins *[]spinner) (*sprig.Node, error) {
	var d sprig.Drawable
	if desc.Shape != nil {
		var err error
		if d, err = desc.Shape.Drawable(); err != nil {
			return nil, fmt.Errorf("node %q: %w", desc.Name, err)
		}
	}

	n := sprig.NewNode(desc.Name, d)
	n.SetPosition(desc.Position[0], desc.Position[1])
	n.SetRotation(desc.Rotation)
	if desc.Scale != nil {
		n.SetScale(desc.Scale[0], desc.Scale[1])
	}
	n.SetOrigin(desc.Origin[0], desc.Origin[1])
	if desc.Visible != nil {
		n.Visible = *desc.Visible
	}
	if desc.Spin != 0 && spins != nil {
		*spins = append(*spins, spinner{node: n, rate: desc.Spin})
	}
	mark := 0
	if spins != nil {
		mark = len(*spins)
	}

	for i := range desc.Children {
		child, err := buildNode(&desc.Children[i], spins)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, fmt.Errorf("attach %q to %q: %w", child.Name, n.Name, err)
		}
	}
	if desc.Bake {
		baked, err := bake(n)
		if err != nil {
			return nil, err
		}
		// The descendants are detached, so their spins stop.
		if baked && spins != nil {
			*spins = (*spins)[:mark]
		}
	}
	return n, nil
}

// bake replaces n's content with a single sprite of its rendered subtree. It
// reports false when there was nothing to render.
func bake(n *sprig.Node) (bool, error) {
	rt, b := n.ToTexture()
	if rt == nil {
		return false, nil
	}
	n.RemoveChildren()
	n.Drawable = nil
	baked := sprig.NewNode(n.Name+".baked", rt.Sprite())
	baked.SetPosition(b.X, b.Y)
	if err := n.AddChild(baked); err != nil {
		return false, fmt.Errorf("bake %q: %w", n.Name, err)
	}
	return true, nil
}
