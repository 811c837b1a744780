package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/engine"
	"hunterquest/internal/ui"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Roll trackers to today, applying any skip/fail penalties",
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
			results, err := svc.SyncTrackers(ctx, u.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("All trackers are current."))
				return nil
			}
			for _, r := range results {
				switch r.Penalty {
				case engine.PenaltyMissionFail:
					fmt.Fprintf(out, "%s tracker %s abandoned after a week of inactivity\n",
						ui.Bad.Render(ui.IconSkull+" Mission failed:"), ui.Muted.Render(r.TrackerID[:8]))
				case engine.PenaltySkip:
					fmt.Fprintf(out, "%s tracker %s (missed days)\n",
						ui.Warn.Render(ui.IconWarn+" Skip penalty:"), ui.Muted.Render(r.TrackerID[:8]))
				default:
					fmt.Fprintf(out, "%s tracker %s\n",
						ui.Good.Render(ui.IconDone+" Fresh day:"), ui.Muted.Render(r.TrackerID[:8]))
				}
			}
			last := results[len(results)-1]
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Hunter", fmt.Sprintf("lvl %d · %d XP · %s %d", last.Level, last.XP, ui.IconCoin, last.Coins)))
			return nil
		},
	}

	return cmd
}
