package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/floorgen/pkg/preview"
)

func newPreviewCmd() *cobra.Command {
	var output string
	opts := preview.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render a top-down PNG of the layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("preview: --output is required")
			}
			ctx := cmd.Context()
			f, err := loadFloor(ctx, args[0])
			if err != nil {
				return err
			}
			placements, err := generate(ctx, f)
			if err != nil {
				return err
			}

			file, err := createOutput(output)
			if err != nil {
				return err
			}
			defer file.Close()

			prog := newProgress(loggerFromContext(ctx))
			if err := preview.Render(file, f.Boundary, placements, opts); err != nil {
				return err
			}
			prog.done("Rendered " + output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	cmd.Flags().IntVar(&opts.Size, "size", opts.Size, "longer image side in pixels")
	cmd.Flags().IntVar(&opts.Margin, "margin", opts.Margin, "border around the floor in pixels")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "background colour as hex")
	cmd.Flags().Float64Var(&opts.LineWidth, "line-width", opts.LineWidth, "unit outline width in pixels, 0 for none")
	return cmd
}
