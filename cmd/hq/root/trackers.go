package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newTrackersCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "trackers",
		Short: "List your trackers and today's quests",
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

			trackers, err := svc.TrackerRepo().ListByUser(ctx, u.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Trackers"))
			shown := 0
			for _, t := range trackers {
				if !all && t.Status != "active" {
					continue
				}
				shown++
				fmt.Fprintf(out, "%s %s %s %s · day %d/%d · streak %s\n",
					ui.RankBadge(t.Rank), ui.Title.Render(t.Title), ui.Muted.Render(t.ID[:8]),
					ui.StatusText(t.Status), t.Daycount, t.Duration, ui.StreakText(t.Streak))
				if t.Status != "active" {
					continue
				}
				remaining := map[string]bool{}
				for _, id := range t.RemainingQuests {
					remaining[id] = true
				}
				quests, err := svc.QuestRepo().GetMany(ctx, t.CurrentQuests)
				if err != nil {
					return err
				}
				for _, q := range quests {
					mark := "[ ]"
					if !remaining[q.ID] {
						mark = ui.Good.Render("[x]")
					}
					fmt.Fprintf(out, "  %s %s %s %s\n", mark, q.Title,
						ui.Muted.Render(q.ID[:8]), ui.Muted.Render(fmt.Sprintf("(+%d %s)", q.XP, q.Stat)))
				}
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No trackers. Join a mission: hq join <mission>"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed trackers")

	return cmd
}
