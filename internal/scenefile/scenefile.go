// Package scenefile loads YAML scene descriptions and builds sprig scenes
// from them.
package scenefile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/sprig"
)

//go:embed default.yaml
var defaultSceneYAML []byte

// File is the top-level YAML document.
type File struct {
	Window  Window   `yaml:"window"`
	Cameras []Camera `yaml:"cameras,omitempty"`
	Nodes   []Node   `yaml:"nodes"`
}

// Window holds the settings passed to sprig.Run.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps,omitempty"`
	Clear  string `yaml:"clear,omitempty"` // "#rrggbb" or "#rrggbbaa"
}

// Camera describes a scene camera.
type Camera struct {
	Viewport [4]float64  `yaml:"viewport"` // x, y, width, height
	Center   *[2]float64 `yaml:"center,omitempty"`
	Zoom     float64     `yaml:"zoom,omitempty"`
	Rotation float64     `yaml:"rotation,omitempty"`
	Cull     *bool       `yaml:"cull,omitempty"`
	Follow   string      `yaml:"follow,omitempty"` // node name
	Lerp     float64     `yaml:"lerp,omitempty"`
}

// Node describes one scene node and its subtree.
type Node struct {
	Name     string      `yaml:"name"`
	Position [2]float64  `yaml:"position,omitempty"`
	Rotation float64     `yaml:"rotation,omitempty"`
	Scale    *[2]float64 `yaml:"scale,omitempty"`
	Origin   [2]float64  `yaml:"origin,omitempty"`
	Visible  *bool       `yaml:"visible,omitempty"`
	Shape    *Shape      `yaml:"shape,omitempty"`
	Spin     float64     `yaml:"spin,omitempty"` // degrees per second
	Bake     bool        `yaml:"bake,omitempty"` // render the subtree once into a texture
	Children []Node      `yaml:"children,omitempty"`
}

// Shape describes a node's drawable.
type Shape struct {
	Kind      string       `yaml:"kind"` // rect, circle, convex, vertices
	Size      [2]float64   `yaml:"size,omitempty"`
	Radius    float64      `yaml:"radius,omitempty"`
	Sides     int          `yaml:"sides,omitempty"`
	Points    [][2]float64 `yaml:"points,omitempty"`
	Fill      string       `yaml:"fill,omitempty"`
	Outline   string       `yaml:"outline,omitempty"`
	Thickness float64      `yaml:"thickness,omitempty"`
	Primitive string       `yaml:"primitive,omitempty"` // vertices only
	Vertices  []Vertex     `yaml:"vertices,omitempty"`
}

// maxCircleSides bounds the polygon a scene file can ask for.
const maxCircleSides = 10000

// Vertex is one vertex of a vertices shape.
type Vertex struct {
	Pos   [2]float64 `yaml:"pos"`
	Color string     `yaml:"color,omitempty"`
}

// Load loads a scene description.
// Search order: customPath -> ./scenes/<name>.yaml -> embedded default
func Load(customPath, name string) (File, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return File{}, fmt.Errorf("failed to read scene %s: %w", customPath, err)
		}
		f, err := Parse(data)
		if err != nil {
			return File{}, fmt.Errorf("failed to parse scene %s: %w", customPath, err)
		}
		return f, nil
	}

	if name != "" {
		local := filepath.Join("scenes", name+".yaml")
		if data, err := os.ReadFile(local); err == nil {
			f, err := Parse(data)
			if err != nil {
				return File{}, fmt.Errorf("failed to parse scene %s: %w", local, err)
			}
			return f, nil
		}
	}

	return Default()
}

// Default returns the embedded default scene.
func Default() (File, error) {
	return Parse(defaultSceneYAML)
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks colors, shape kinds and primitive names without building
// anything.
func (f File) Validate() error {
	var errs []error
	if f.Window.Clear != "" {
		if _, err := ParseColor(f.Window.Clear); err != nil {
			errs = append(errs, fmt.Errorf("window.clear: %w", err))
		}
	}
	for i, c := range f.Cameras {
		if c.Viewport[2] <= 0 || c.Viewport[3] <= 0 {
			errs = append(errs, fmt.Errorf("cameras[%d]: viewport needs a positive size", i))
		}
	}
	for i := range f.Nodes {
		errs = append(errs, validateNode(&f.Nodes[i], fmt.Sprintf("nodes[%d]", i))...)
	}
	return errors.Join(errs...)
}

func validateNode(n *Node, path string) []error {
	var errs []error
	if n.Name != "" {
		path = path + "(" + n.Name + ")"
	}
	if n.Shape != nil {
		if _, err := n.Shape.Drawable(); err != nil {
			errs = append(errs, fmt.Errorf("%s.shape: %w", path, err))
		}
	}
	for i := range n.Children {
		errs = append(errs, validateNode(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i))...)
	}
	return errs
}

// RunConfig converts the window settings.
func (w Window) RunConfig() sprig.RunConfig {
	return sprig.RunConfig{Title: w.Title, Width: w.Width, Height: w.Height, TPS: w.TPS}
}

// Drawable builds the sprig primitive described by s.
func (s *Shape) Drawable() (sprig.Drawable, error) {
	style, err := s.style()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(s.Kind) {
	case "rect", "rectangle":
		r := sprig.NewRectangleShape(s.Size[0], s.Size[1])
		r.ShapeStyle = style
		return r, nil
	case "circle":
		if s.Sides < 0 || s.Sides > maxCircleSides {
			return nil, fmt.Errorf("circle sides must be between 0 and %d, got %d", maxCircleSides, s.Sides)
		}
		c := sprig.NewCircleShape(s.Radius)
		c.Sides = s.Sides
		c.ShapeStyle = style
		return c, nil
	case "convex", "polygon":
		if len(s.Points) < 3 {
			return nil, fmt.Errorf("convex shape needs at least 3 points, got %d", len(s.Points))
		}
		pts := make([]sprig.Vec2, len(s.Points))
		for i, p := range s.Points {
			pts[i] = sprig.Vec2{X: p[0], Y: p[1]}
		}
		c := sprig.NewConvexShape(pts...)
		c.ShapeStyle = style
		return c, nil
	case "vertices":
		typ, ok := sprig.ParsePrimitiveType(strings.ToLower(s.Primitive))
		if !ok {
			return nil, fmt.Errorf("unknown primitive %q", s.Primitive)
		}
		va := sprig.NewVertexArray(typ, 0)
		for i, v := range s.Vertices {
			c := sprig.ColorWhite
			if v.Color != "" {
				if c, err = ParseColor(v.Color); err != nil {
					return nil, fmt.Errorf("vertices[%d]: %w", i, err)
				}
			}
			va.Append(sprig.Vertex{Position: sprig.Vec2{X: v.Pos[0], Y: v.Pos[1]}, Color: c})
		}
		return va, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
}

func (s *Shape) style() (sprig.ShapeStyle, error) {
	style := sprig.ShapeStyle{Fill: sprig.ColorWhite, OutlineThickness: s.Thickness}
	var err error
	if s.Fill != "" {
		if style.Fill, err = ParseColor(s.Fill); err != nil {
			return style, fmt.Errorf("fill: %w", err)
		}
	}
	if s.Outline != "" {
		if style.Outline, err = ParseColor(s.Outline); err != nil {
			return style, fmt.Errorf("outline: %w", err)
		}
	} else if s.Thickness != 0 {
		style.Outline = sprig.ColorBlack
	}
	return style, nil
}

var namedColors = map[string]sprig.Color{
	"white":       sprig.ColorWhite,
	"black":       sprig.ColorBlack,
	"transparent": sprig.ColorTransparent,
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" or one of white, black,
// transparent.
func ParseColor(s string) (sprig.Color, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return sprig.Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return sprig.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return sprig.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
