package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
)

func newDumpCmd(opts *options) *cobra.Command {
	var (
		frames int
		dt     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the draw commands of one frame",
		Long: `Builds the scene, optionally advances it, and records one frame with a
command recorder. Each line shows the draw order, the primitive type and its
screen-space bounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := loadScene(opts)
			if err != nil {
				return err
			}
			for i := 0; i < frames; i++ {
				if err := scene.Update(dt); err != nil {
					return fmt.Errorf("update frame %d: %w", i, err)
				}
			}

			var rec sprig.CommandRecorder
			scene.Draw(&rec)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-5s  %-16s  %s\n", "ORDER", "PRIMITIVE", "BOUNDS")
			for _, c := range rec.Commands {
				fmt.Fprintf(out, "%-5d  %-16s  %s\n", c.Order, primitiveName(c.Primitive), formatRect(c.Bounds()))
			}
			fmt.Fprintf(out, "%d commands\n", len(rec.Commands))
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 0, "Frames to advance before recording")
	cmd.Flags().DurationVar(&dt, "dt", time.Second/60, "Elapsed time per advanced frame")
	return cmd
}

func primitiveName(p sprig.Primitive) string {
	name := fmt.Sprintf("%T", p)
	return strings.TrimPrefix(name, "*sprig.")
}

func formatRect(r sprig.Rect) string {
	return fmt.Sprintf("(%.2f, %.2f) %.2fx%.2f", r.X, r.Y, r.Width, r.Height)
}
