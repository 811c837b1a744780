package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

func newAbandonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abandon <tracker>",
		Short: "Abandon an active tracker (no penalty)",
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
			if err := svc.AbandonTracker(ctx, u.ID, trackerID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconWarn+" Abandoned"), ui.Muted.Render(trackerID[:8]))
			return nil
		},
	}

	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <tracker>",
		Short: "Delete a tracker record (active or completed)",
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
			if err := svc.DeleteTracker(ctx, u.ID, trackerID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconWarn+" Deleted"), ui.Muted.Render(trackerID[:8]))
			return nil
		},
	}

	return cmd
}
