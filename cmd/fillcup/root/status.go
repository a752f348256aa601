package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's cup, tasks and mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := openClient(cmd)
			defer cancel()

			snap, err := c.State(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd, snap)
			return nil
		},
	}
}

func printStatus(cmd *cobra.Command, snap cup.Snapshot) {
	out := cmd.OutOrStdout()

	name := snap.Profile.DisplayName
	if name == "" {
		name = "there"
	}
	fmt.Fprintln(out, ui.Heading(ui.IconCup, "Hi "+name))
	fmt.Fprintln(out, ui.LabelValue("Cup", ui.Bar(snap.Progress)))
	fmt.Fprintln(out, ui.LabelValue("Done", fmt.Sprintf("%d of %d", snap.CompletedCount, snap.TotalCount)))
	fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconStreak, snap.Streak.Count)))
	fmt.Fprintln(out, ui.LabelValue("Mood", ui.MoodText(snap.CurrentMood)))
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, ui.H2.Render("Today"))
	for _, t := range snap.Tasks {
		fmt.Fprintln(out, "- "+ui.TaskLine(t))
	}

	if snap.Suggestion != nil {
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, ui.Panel.Render(ui.IconIdea+" "+*snap.Suggestion))
	}
}
