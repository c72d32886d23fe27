// sprig inspects and previews YAML scene files.
//
// Usage:
//
//	sprig dump             - Print the draw commands of one frame
//	sprig bounds           - Print the node tree with global bounds
//	sprig view             - Open the scene in a window
//
// Global flags:
//
//	--scene <path>  - Scene file (default: ./scenes/<name>.yaml, then the built-in scene)
//	--name <name>   - Scene name looked up under ./scenes
//	--debug         - Enable scene debug mode and debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/internal/scenefile"
)

// options holds the global flags.
type options struct {
	scene string
	name  string
	debug bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "sprig",
		Short: "Inspect and preview sprig scene files",
		Long: `sprig loads a YAML scene description and either prints what a frame
would draw, prints the node tree with global bounds, or opens it in a window.

Examples:
  sprig dump
  sprig dump --scene ./scenes/solar.yaml --frames 30
  sprig bounds --name level1 --hit 120,80
  sprig view --debug`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(opts.debug)
		},
	}

	root.PersistentFlags().StringVar(&opts.scene, "scene", "", "Path to a scene YAML file")
	root.PersistentFlags().StringVar(&opts.name, "name", "", "Scene name looked up as ./scenes/<name>.yaml")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug mode and debug logging")

	root.AddCommand(newDumpCmd(opts))
	root.AddCommand(newBoundsCmd(opts))
	root.AddCommand(newViewCmd(opts))
	return root
}

func setupLogger(debug bool) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sprig",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	sprig.SetLogger(logger)
}

// loadScene loads the scene file selected by the global flags and builds it.
func loadScene(opts *options) (*sprig.Scene, scenefile.File, error) {
	f, err := scenefile.Load(opts.scene, opts.name)
	if err != nil {
		return nil, scenefile.File{}, err
	}
	scene, err := f.Build()
	if err != nil {
		return nil, scenefile.File{}, fmt.Errorf("build scene: %w", err)
	}
	if opts.debug {
		scene.SetDebugMode(true)
	}
	return scene, f, nil
}
