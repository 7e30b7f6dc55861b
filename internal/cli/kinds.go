package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chazu/floorgen/pkg/layout"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the pattern kinds and their default unit sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tMATERIAL\tWIDTH (m)\tLENGTH (m)\tGAP (m)")
			for _, k := range layout.Kinds() {
				s := layout.DefaultSpec(k)
				fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\n", k, k.Material(), s.UnitWidth, s.UnitLength, s.Gap)
			}
			return tw.Flush()
		},
	}
}
