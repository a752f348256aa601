package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newMoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood <happy|neutral|sad|very_sad>",
		Short: "Log how you feel today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mood is required")
			}
			if _, err := domain.ParseMood(args[0]); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			res, err := c.SetMood(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Mood", ui.MoodText(res.CurrentMood)))
			return nil
		},
	}
}
