package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
)

func newBoundsCmd(opts *options) *cobra.Command {
	var hit string
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the node tree with global bounds",
		Long: `Walks the scene tree and prints every node with its global bounds and
rotation. With --hit x,y only nodes whose global bounds contain the point are
listed (edges count as inside).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := loadScene(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if hit != "" {
				x, y, err := parsePoint(hit)
				if err != nil {
					return err
				}
				for _, n := range hitNodes(scene.Root(), x, y) {
					fmt.Fprintf(out, "%s  %s\n", n.Name, formatRect(n.GlobalBounds()))
				}
				return nil
			}

			scene.Root().Walk(func(n *sprig.Node, depth int) bool {
				indent := strings.Repeat("  ", depth)
				if n.Drawable == nil {
					fmt.Fprintf(out, "%s%s  (container)\n", indent, n.Name)
				} else {
					fmt.Fprintf(out, "%s%s  %s  rot=%.2f\n", indent, n.Name, formatRect(n.GlobalBounds()), n.Rotation())
				}
				return true
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&hit, "hit", "", "List nodes whose global bounds contain x,y")
	return cmd
}

// hitNodes returns the drawable nodes under root whose global bounds contain
// (x, y), in draw order.
func hitNodes(root *sprig.Node, x, y float64) []*sprig.Node {
	var hits []*sprig.Node
	root.Walk(func(n *sprig.Node, _ int) bool {
		if !n.Visible {
			return false
		}
		if n.Drawable != nil && n.GlobalBounds().Contains(x, y) {
			hits = append(hits, n)
		}
		return true
	})
	return hits
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}
