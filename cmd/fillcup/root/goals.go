package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show weekly goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			goals, err := c.Goals(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGoal, "Weekly goals"))
			if len(goals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
				return nil
			}
			for _, g := range goals {
				fmt.Fprintf(out, "- %s %s %s\n",
					ui.Tint(g.Color).Render(g.Title),
					ui.Bar(g.Progress),
					ui.Muted.Render(fmt.Sprintf("(%d/%d)", g.Current, g.Target)),
				)
			}
			return nil
		},
	}
}
