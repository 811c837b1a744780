package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/engine"
	"hunterquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the hunter sheet",
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
			u, err = svc.Hunter(ctx, cfg.Hunter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSword, "Hunter Status"))
			fmt.Fprintln(out, ui.LabelValue("Hunter", u.Name))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankBadge(u.Rank)))
			next := "max"
			if need, ok := svc.Ledger().Hunter.Threshold(u.Level); ok {
				next = fmt.Sprintf("%d to next", need-u.XP)
			}
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (xp %d, %s)", u.Level, u.XP, next)))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, u.Coins)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			for _, stat := range engine.AllStats {
				sp := u.Stats[string(stat)]
				fmt.Fprintf(out, "- %-12s lvl %d (xp %d)\n", stat, sp.Level, sp.Value)
			}
			fmt.Fprintln(out, "")

			trackers, err := svc.TrackerRepo().ListActiveByUser(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Active trackers"))
			if len(trackers) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- none (hq join <mission>)"))
			}
			for _, t := range trackers {
				fmt.Fprintf(out, "- %s %s %s day %d/%d streak %s remaining %d\n",
					ui.RankBadge(t.Rank), t.Title, ui.Muted.Render(t.ID[:8]),
					t.Daycount, t.Duration, ui.StreakText(t.Streak), len(t.RemainingQuests))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.LabelValue("Missions", fmt.Sprintf("%d joined, %d completed", u.TotalMissions, len(u.CompletedTrackers))))
			if len(u.Titles) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Titles"))
				for _, t := range u.Titles {
					fmt.Fprintf(out, "- %s\n", ui.Gold.Render(t))
				}
			}
			return nil
		},
	}

	return cmd
}
