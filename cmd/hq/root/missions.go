package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List available missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			missions, err := svc.MissionRepo().ListAll(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Missions"))
			if len(missions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No missions yet. Create one: hq new \"run a 5k\" -d 14"))
				return nil
			}
			for _, m := range missions {
				fmt.Fprintf(out, "- %s %s %s %dd · %d quests · %d XP %d coins · %d hunters\n",
					ui.RankBadge(m.Rank), m.Title, ui.Muted.Render(m.ID[:8]),
					m.Duration, len(m.QuestIDs), m.Reward.XP, m.Reward.Coins, len(m.Participants))
			}
			return nil
		},
	}

	return cmd
}
