package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/floorgen/pkg/takeoff"
)

func newTakeoffCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "takeoff [file]",
		Short: "Count units, cuts and waste and write an XLSX workbook",
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
			sum := takeoff.Summarize(f.Boundary, f.Spec, placements)

			w := cmd.OutOrStdout()
			for _, r := range sum.Roles {
				fmt.Fprintf(w, "%-12s %6d full %6d cut %10.3f m²\n", r.Role, r.Full, r.Cut, r.Area)
			}
			fmt.Fprintf(w, "%-12s %6d units, %.3f m² covered of %.3f m², %.1f%% waste\n",
				"total", sum.Units(), sum.CoveredArea, sum.BoundaryArea, sum.WastePercent())

			if output == "" {
				return nil
			}
			file, err := createOutput(output)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := takeoff.WriteWorkbook(file, f, sum); err != nil {
				return err
			}
			loggerFromContext(ctx).Info("Wrote takeoff", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "XLSX workbook to write")
	return cmd
}
