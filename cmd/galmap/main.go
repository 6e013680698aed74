// cmd/galmap/main.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// galmap works with galactic map project documents from the command line:
// inspecting, validating, and exporting them for the game. The
// interactive editor's windowing shell lives elsewhere; everything here
// goes through the same pkg/galaxy document model it uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stellarcart/galmap/pkg/galaxy"
	"github.com/stellarcart/galmap/pkg/log"
	"github.com/stellarcart/galmap/pkg/util"
)

var lg *log.Logger

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:          "galmap",
		Short:        "galactic map project tool",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lg = log.New(logLevel, "")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "loglevel", "info", "logging level: debug, info, warn, error")

	root.AddCommand(infoCommand(), validateCommand(), exportCommand(), rescaleCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.galmap>",
		Short: "print summary statistics for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := galaxy.LoadProject(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s (version %s)\n", p.Metadata.Name, p.Metadata.Version)
			if len(p.Systems) > 0 {
				b := p.Bounds()
				fmt.Printf("  extent:  %.0f x %.0f HSU\n", b.Width(), b.Height())
			}
			fmt.Printf("  systems: %d\n", len(p.Systems))
			fmt.Printf("  routes:  %d\n", len(p.Routes))
			fmt.Printf("  groups:  %d\n", len(p.Groups))

			var total float32
			for _, id := range util.SortedMapKeys(p.Routes) {
				r := p.Routes[id]
				l := r.Length(p)
				total += l
				kind := util.Select(r.IsChain(), "chain", "simple")
				fmt.Printf("    %-30s %6s  class %d  %8.1f HSU\n", r.Name, kind, r.Class, l)
			}
			fmt.Printf("  total route length: %.1f HSU\n", total)
			return nil
		},
	}
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project.galmap>",
		Short: "check a project's route invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := galaxy.LoadProject(args[0])
			if err != nil {
				return err
			}

			var e util.ErrorLogger
			p.Validate(&e)
			if e.HaveErrors() {
				e.PrintErrors(lg)
				return fmt.Errorf("%s: project has validation errors", args[0])
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func rescaleCommand() *cobra.Command {
	var factor float32

	cmd := &cobra.Command{
		Use:   "rescale <project.galmap> <output.galmap>",
		Short: "scale all map coordinates by a factor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if factor <= 0 {
				return fmt.Errorf("%v: scale factor must be positive", factor)
			}
			p, err := galaxy.LoadProject(args[0])
			if err != nil {
				return err
			}
			p.Rescale(factor)
			if err := p.Save(args[1]); err != nil {
				return err
			}
			lg.Infof("rescaled %s by %v to %s", args[0], factor, args[1])
			return nil
		},
	}
	cmd.Flags().Float32Var(&factor, "factor", 1, "multiplier applied to all coordinates")
	return cmd
}

func exportCommand() *cobra.Command {
	var geojson bool
	var zst bool

	cmd := &cobra.Command{
		Use:   "export <project.galmap> <output>",
		Short: "export game-readable map data",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := galaxy.LoadProject(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			switch {
			case geojson:
				err = p.ExportGeoJSON(f)
			case zst:
				err = p.ExportGameZst(f)
			default:
				err = p.ExportGame(f)
			}
			if err == nil {
				lg.Infof("exported %s to %s", args[0], args[1])
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&geojson, "geojson", false, "export route paths as GeoJSON LineStrings")
	cmd.Flags().BoolVar(&zst, "zst", false, "zstd-compress the game export")
	return cmd
}
