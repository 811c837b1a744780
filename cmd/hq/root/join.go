package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <mission>",
		Short: "Join a mission and start its tracker",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission id is required")
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
			missionID, err := resolveMissionID(ctx, svc, args[0])
			if err != nil {
				return err
			}
			t, err := svc.JoinMission(ctx, u.ID, missionID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Joined"), t.Title, ui.Muted.Render(t.ID[:8]))
			fmt.Fprintf(out, "%s\n", ui.LabelValue("Today", fmt.Sprintf("%d quests to clear", len(t.RemainingQuests))))
			return nil
		},
	}

	return cmd
}
