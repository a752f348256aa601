package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show earned badges (most recent first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			res, err := c.Badges(ctx)
			if err != nil {
				return err
			}

			list := res.Recent
			if all {
				list = res.Badges
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBadge, "Badges"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet, complete a task to start)"))
				return nil
			}
			for _, b := range list {
				fmt.Fprintf(out, "- %s %s %s\n",
					ui.Tint(b.Color).Render(b.Name),
					b.Subtitle,
					ui.Muted.Render(string(b.EarnedOn)),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every badge instead of the most recent ones")
	return cmd
}
