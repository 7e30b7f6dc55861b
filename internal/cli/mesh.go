package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/floorgen/pkg/host"
	"github.com/chazu/floorgen/pkg/kernel"
	"github.com/chazu/floorgen/pkg/kernel/prism"
	"github.com/chazu/floorgen/pkg/kernel/sdfx"
)

const (
	kernelPrism = "prism" // exact extrusion
	kernelSdfx  = "sdfx"  // signed distance field, marching cubes
)

func newKernel(name string, cells int) (kernel.Kernel, error) {
	switch name {
	case kernelPrism:
		return prism.New(), nil
	case kernelSdfx:
		k := sdfx.New()
		k.MeshCells = cells
		return k, nil
	}
	return nil, fmt.Errorf("unknown kernel %q (want %s or %s)", name, kernelPrism, kernelSdfx)
}

func newMeshCmd() *cobra.Command {
	var (
		kernelName string
		cells      int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "mesh [file]",
		Short: "Build the floor's 3D slabs and report mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := newKernel(kernelName, cells)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			f, err := loadFloor(ctx, args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			res := host.New(k).Regenerate(f)
			for _, w := range res.Warnings {
				logger.Warn(w.Message, "field", w.Field)
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%s: %s", f.Name, res.Errors[0].Message)
			}
			prog.done(fmt.Sprintf("Built %d meshes with %s", len(res.Meshes), kernelName))

			var verts, tris int
			for _, m := range res.Meshes {
				verts += len(m.Vertices) / 3
				tris += len(m.Indices) / 3
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "meshes:    %d\n", len(res.Meshes))
			fmt.Fprintf(w, "vertices:  %d\n", verts)
			fmt.Fprintf(w, "triangles: %d\n", tris)

			if output == "" {
				return nil
			}
			file, err := createOutput(output)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := writeJSON(file, res.Meshes, false); err != nil {
				return err
			}
			logger.Info("Wrote meshes", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&kernelName, "kernel", kernelPrism, "geometry kernel: prism or sdfx")
	cmd.Flags().IntVar(&cells, "cells", 0, "sdfx marching cubes resolution, 0 for automatic")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write meshes as JSON")
	return cmd
}
