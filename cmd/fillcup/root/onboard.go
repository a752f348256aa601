package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newOnboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard [name]",
		Short: "Finish onboarding and set your display name",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			res, err := c.CompleteOnboarding(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Changed {
				fmt.Fprintln(out, ui.Muted.Render("Already onboarded as "+res.Profile.DisplayName+"."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Welcome, "+res.Profile.DisplayName+"!"))
			return nil
		},
	}
}
