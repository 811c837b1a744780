package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <tracker> <quest>",
		Short: "Complete one of today's quests",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("tracker and quest are required")
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

			u, err := svc.Hunter(ctx, cfg.Hunter)
			if err != nil {
				return err
			}
			if _, err := svc.SyncTrackers(ctx, u.ID); err != nil {
				return err
			}
			trackerID, err := resolveTrackerID(ctx, svc, u.ID, args[0])
			if err != nil {
				return err
			}
			t, err := svc.TrackerRepo().Get(ctx, trackerID)
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("tracker %s not found", args[0])
			}
			questID, err := resolveQuestID(ctx, svc, t, args[1])
			if err != nil {
				return err
			}

			res, err := svc.CompleteQuest(ctx, u.ID, trackerID, questID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s +%d %s XP %s\n", ui.Good.Render(ui.IconDone+" Quest complete"),
				res.StatXPAwarded, res.Stat, ui.Muted.Render(fmt.Sprintf("(%s lvl %d)", res.Stat, res.StatLevel)))
			if res.DayCompleted {
				fmt.Fprintf(out, "%s +%d XP, +%d coins · streak %s\n",
					ui.Gold.Render(ui.IconFire+" Day cleared!"), res.RewardXP, res.RewardCoins, ui.StreakText(res.Streak))
			}
			if res.MissionCompleted {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Mission complete!"))
			}
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Hunter", fmt.Sprintf("lvl %d · %d XP · %s %d", res.Level, res.XP, ui.IconCoin, res.Coins)))
			return nil
		},
	}

	return cmd
}
