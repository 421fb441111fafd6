package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/capnchainsaw/WastelandSurvivor/internal/platform/tui"
	"github.com/capnchainsaw/WastelandSurvivor/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the deepest runs",
	Long: `Display the best recorded runs, deepest level first.

Examples:
  wasteland scores
  wasteland scores --player alice
  wasteland scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		player := flagScoresPlayer
		if player == "" {
			player = "local"
		}
		if _, err := tui.RunScoreboard(store, player, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	var runs []storage.Run
	if flagScoresPlayer != "" {
		runs, err = store.RunsFor(flagScoresPlayer, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Wasteland Survivors")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'wasteland play' and try not to starve.")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-5s  %-7s  %s\n", "Rank", "Player", "Level", "Turns", "When")
	fmt.Printf("  %-4s  %-12s  %-5s  %-7s  %s\n", "----", "------", "-----", "-----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-5d  %-7s  %s\n",
			i+1, r.Player, r.Level, humanize.Comma(int64(r.Turns)), humanize.Time(r.CreatedAt))
	}

	stats, err := store.Stats()
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("%s runs, deepest level %d, average level %.1f, %s turns survived in total\n",
			humanize.Comma(int64(stats.Runs)), stats.DeepestRun, stats.AvgLevel, humanize.Comma(stats.TotalTurns))
	}
}
