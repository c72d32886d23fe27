package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
)

func newViewCmd(opts *options) *cobra.Command {
	var (
		wall    bool
		script  string
		shotDir string
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the scene in a window",
		Long: `Open the scene in a window.

With --script, a frame script drives the scene one step per frame. Scripts can
move nodes, wait, queue screenshots and quit, which makes captures repeatable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, f, err := loadScene(opts)
			if err != nil {
				return err
			}
			if script != "" {
				fs, err := loadFrameScript(script)
				if err != nil {
					return err
				}
				scene.SetFrameScript(fs)
			}
			if shotDir != "" {
				scene.ScreenshotDir = shotDir
			}
			cfg := f.Window.RunConfig()
			if wall {
				cfg.Clock = sprig.NewWallClock()
			}
			sprig.Logger().Info("opening window", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
			return sprig.Run(scene, cfg)
		},
	}
	cmd.Flags().BoolVar(&wall, "wall-clock", false, "Advance by measured wall time instead of a fixed step")
	cmd.Flags().StringVar(&script, "script", "", "Frame script (YAML or JSON) to run")
	cmd.Flags().StringVar(&shotDir, "screenshot-dir", "", "Directory for screenshots (default \""+sprig.DefaultScreenshotDir+"\")")
	return cmd
}

func loadFrameScript(path string) (*sprig.FrameScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	fs, err := sprig.LoadFrameScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}
