package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/chazu/floorgen/pkg/layout"
	"github.com/chazu/floorgen/pkg/takeoff"
)

// generateOutput is the JSON document printed by generate.
type generateOutput struct {
	Floor      layout.Floor       `json:"floor"`
	Summary    takeoff.Summary    `json:"summary"`
	Placements []layout.Placement `json:"placements"`
}

func newGenerateCmd() *cobra.Command {
	var (
		output  string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Lay out a floor and print its placements as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := loadFloor(ctx, args[0])
			if err != nil {
				return err
			}
			placements, err := generate(ctx, f)
			if err != nil {
				return err
			}

			out := generateOutput{
				Floor:      f,
				Summary:    takeoff.Summarize(f.Boundary, f.Spec, placements),
				Placements: placements,
			}

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := createOutput(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			if err := writeJSON(w, out, !compact); err != nil {
				return err
			}
			if output != "" {
				loggerFromContext(ctx).Info("Wrote placements", "path", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file instead of stdout")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON")
	return cmd
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
