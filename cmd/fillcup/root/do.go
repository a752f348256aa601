package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <task-id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || args[0] == "" {
				return errors.New("task id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			before, err := c.State(ctx)
			if err != nil {
				return err
			}

			res, err := c.CompleteTask(ctx, domain.TaskID(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Changed {
				fmt.Fprintln(out, ui.Muted.Render("Nothing changed: unknown task or already done."))
				return nil
			}

			fmt.Fprintln(out, ui.Good.Render(ui.IconDrop+" Your cup is filling up!"))
			fmt.Fprintln(out, ui.LabelValue("Cup", ui.Bar(res.State.Progress)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconStreak, res.State.Streak.Count)))

			for _, b := range newBadges(before.Badges, res.State.Badges) {
				fmt.Fprintln(out, ui.Tint(b.Color).Render(fmt.Sprintf("%s New badge: %s (%s)", ui.IconBadge, b.Name, b.Subtitle)))
			}
			return nil
		},
	}
}

func newBadges(before, after []domain.Badge) []domain.Badge {
	seen := make(map[domain.BadgeID]bool, len(before))
	for _, b := range before {
		seen[b.ID] = true
	}
	var out []domain.Badge
	for _, b := range after {
		if !seen[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
