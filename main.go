package main

import "C"
import (
	"fmt"
	"log"
	"os"
	"runtime"
	"shader_cube/harness"
	"shader_cube/sketch"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	// SDL and Vulkan calls must stay on the main thread
	runtime.LockOSThread()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

type flags struct {
	settings string
	seed     uint64
	out      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "shader_cube",
		Short:        "Open topped cubes with a gradient shader, placed at random",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&f.settings, "settings", "", "TOML settings file (defaults apply when empty)")
	root.PersistentFlags().Uint64Var(&f.seed, "seed", 0, "random seed, overrides the settings file (0 keeps it)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Open the sketch in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(f)
			if err != nil {
				return err
			}
			return harness.Run(harness.Options{
				SettingsPath: f.settings,
				Settings:     s,
				Setup:        sketch.NewShaderCube,
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Render the sketch headless at full size into a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(f)
			if err != nil {
				return err
			}
			// fix the seed so it can be part of the default file name
			rnd := sketch.NewRandom(s.Seed)
			s.Seed = rnd.Seed()
			out := f.out
			if out == "" {
				out = harness.ExportPath(s.ExportDir, s.Seed, time.Now())
			}
			return harness.Export(s, sketch.NewShaderCube, out)
		},
	}
	export.Flags().StringVarP(&f.out, "out", "o", "", "output file, defaults to a timestamped name in the export directory")

	root.AddCommand(run, export)
	return root
}

func loadSettings(f *flags) (sketch.Settings, error) {
	s, err := sketch.LoadSettings(f.settings)
	if err != nil {
		return sketch.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	if f.seed != 0 {
		s.Seed = f.seed
	}
	return s, nil
}
