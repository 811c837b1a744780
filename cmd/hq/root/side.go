package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hunterquest/internal/engine"
	"hunterquest/internal/storage"
	"hunterquest/internal/ui"
)

func newSideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "side",
		Short: "Manage one-off sidequests",
	}

	cmd.AddCommand(newSideAddCmd(), newSideDoCmd(), newSideListCmd())
	return cmd
}

func newSideAddCmd() *cobra.Command {
	var diff string
	var stat string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a sidequest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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
			sq, err := svc.CreateSidequest(ctx, u.ID, engine.CreateSidequestInput{
				Title:      args[0],
				Difficulty: engine.SideDifficulty(diff),
				Stat:       engine.ParseStat(stat),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconQuest+" Added"), sq.Title, ui.Muted.Render(sq.ID[:8]),
				ui.Muted.Render(fmt.Sprintf("(+%d %s, +%d coins)", sq.XP, sq.Stat, sq.Coins)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", "easy", "Difficulty (trivial|easy|medium|hard)")
	cmd.Flags().StringVarP(&stat, "stat", "s", "endurance", "Stat (strength|intelligence|agility|endurance|charisma)")

	return cmd
}

func newSideDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <sidequest>",
		Short: "Complete a sidequest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("sidequest id is required")
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
			id, err := resolveSidequestID(ctx, svc, u.ID, args[0])
			if err != nil {
				return err
			}
			res, err := svc.CompleteSidequest(ctx, u.ID, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s +%d %s XP, +%d coins %s\n",
				ui.Good.Render(ui.IconDone+" Sidequest complete"), res.XPAwarded, res.Stat, res.CoinsAwarded,
				ui.Muted.Render(fmt.Sprintf("(%s lvl %d, %s %d)", res.Stat, res.StatLevel, ui.IconCoin, res.Coins)))
			return nil
		},
	}

	return cmd
}

func newSideListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sidequests",
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
			sidequests, err := svc.SidequestRepo().ListByUser(ctx, u.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Sidequests"))
			shown := 0
			for _, sq := range sidequests {
				if !all && sq.Status != storage.SidequestPending {
					continue
				}
				shown++
				fmt.Fprintf(out, "- %s %s %s %s · +%d %s, +%d coins\n",
					ui.StatusText(sq.Status), sq.Title, ui.Muted.Render(sq.ID[:8]),
					ui.Muted.Render(sq.Difficulty), sq.XP, sq.Stat, sq.Coins)
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sidequests. Add one: hq side add \"stretch 10 min\" -d easy -s agility"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed sidequests")

	return cmd
}
