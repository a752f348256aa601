package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newCoachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coach",
		Short: "Ask the coach for a short nudge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			msg, err := c.Coach(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel.Render(ui.IconSparkle+" "+msg))
			return nil
		},
	}
}
