package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hunterquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "hq",
	Short:         "HunterQuest, a gamified goal tracker with RPG progression",
	Long:          "HunterQuest is a local-first CLI/TUI goal tracker: complete daily quests, keep streaks, level your stats, and ascend the hunter ranks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newNewCmd(),
		newMissionsCmd(),
		newJoinCmd(),
		newTrackersCmd(),
		newDoCmd(),
		newSyncCmd(),
		newUpgradeCmd(),
		newAscendCmd(),
		newAbandonCmd(),
		newDeleteCmd(),
		newSideCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
