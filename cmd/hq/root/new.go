package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newNewCmd() *cobra.Command {
	var days int
	var join bool

	cmd := &cobra.Command{
		Use:   "new <goal description>",
		Short: "Generate a mission from a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("goal description is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := svc.CreateMission(ctx, args[0], days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconScroll+" Mission created"), m.Title, ui.Muted.Render(m.ID[:8]))
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Rank", ui.RankBadge(m.Rank)))
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Duration", fmt.Sprintf("%d days, %d quests/day", m.Duration, len(m.QuestIDs))))
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Reward", fmt.Sprintf("%d XP, %d coins", m.Reward.XP, m.Reward.Coins)))

			if join {
				u, err := svc.Hunter(ctx, cfg.Hunter)
				if err != nil {
					return err
				}
				t, err := svc.JoinMission(ctx, u.ID, m.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s tracker %s\n", ui.Good.Render(ui.IconDone+" Joined:"), ui.Muted.Render(t.ID[:8]))
			} else {
				fmt.Fprintf(out, "%s hq join %s\n", ui.Muted.Render("Join with:"), m.ID[:8])
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Mission duration in days")
	cmd.Flags().BoolVar(&join, "join", false, "Join the mission immediately")

	return cmd
}
