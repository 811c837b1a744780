package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade <tracker>",
		Short: "Upgrade a tracker's quests (requires a 5-day streak)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("tracker id is required")
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
			trackerID, err := resolveTrackerID(ctx, svc, u.ID, args[0])
			if err != nil {
				return err
			}
			res, err := svc.UpgradeTracker(ctx, u.ID, trackerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Upgraded {
				fmt.Fprintln(out, ui.Muted.Render("Streak too short to upgrade (need 5 fully completed days)."))
				return nil
			}
			fmt.Fprintf(out, "%s difficulty %.1f, quests retargeted to %d XP\n",
				ui.Good.Render(ui.IconUp+" Upgraded:"), res.NewDifficulty, res.TargetXP)
			if res.RankAdvanced {
				fmt.Fprintf(out, "%s tracker rank is now %s · reward %d XP / %d coins\n",
					ui.Gold.Render(ui.IconSparkle+" Escalated!"), ui.RankBadge(string(res.Rank)), res.RewardXP, res.RewardCoins)
			}
			fmt.Fprintln(out, ui.Muted.Render("Daycount reset; the mission restarts at the new difficulty."))
			return nil
		},
	}

	return cmd
}
