package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newAscendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ascend",
		Short: "Evaluate your hunter score for rank ascension",
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
			r, err := svc.EvaluateAscension(ctx, u.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Ascension Evaluation"))
			fmt.Fprintf(out, "- XP score:      %8.1f\n", r.XPScore)
			fmt.Fprintf(out, "- Stat score:    %8.1f %s\n", r.StatScore, ui.Muted.Render(fmt.Sprintf("(%d stat levels)", r.TotalStatLevels)))
			fmt.Fprintf(out, "- Mission score: %8.1f %s\n", r.MissionScore, ui.Muted.Render(fmt.Sprintf("(%d joined)", r.TotalMissions)))
			fmt.Fprintf(out, "- Success score: %8.1f %s\n", r.SuccessScore, ui.Muted.Render(fmt.Sprintf("(%.0f%% completed)", r.SuccessRate*100)))
			fmt.Fprintf(out, "- Streak score:  %8.1f %s\n", r.StreakScore, ui.Muted.Render(fmt.Sprintf("(avg %.1f)", r.AvgStreak)))
			fmt.Fprintf(out, "%s %.1f\n", ui.Key.Render("Hunter score:"), r.HunterScore)
			fmt.Fprintln(out, "")

			if r.Ascended {
				fmt.Fprintf(out, "%s %s → %s\n", ui.BadgeAscend, ui.RankBadge(string(r.PreviousRank)), ui.RankBadge(string(r.Rank)))
				fmt.Fprintf(out, "%s\n", ui.LabelValue("Reward", fmt.Sprintf("+%d XP, +%d coins", r.RewardXP, r.RewardCoins)))
				if r.TitleGranted != "" {
					fmt.Fprintf(out, "%s\n", ui.LabelValue("Title", ui.Gold.Render(r.TitleGranted)))
				}
			} else {
				fmt.Fprintf(out, "%s %s\n", ui.LabelValue("Rank", ui.RankBadge(string(r.Rank))), ui.Muted.Render("(unchanged)"))
			}
			return nil
		},
	}

	return cmd
}
