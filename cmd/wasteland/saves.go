package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/capnchainsaw/WastelandSurvivor/internal/storage"
)

var flagDeleteSlot string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List the save slots of SSH players",
	Long: `List the games saved by players of the SSH server.

Examples:
  wasteland saves
  wasteland saves --delete alice`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSlot, "delete", "", "Delete the save slot of this player")
}

func runSaves(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagDeleteSlot != "" {
		if err := store.DeleteSave(flagDeleteSlot); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Deleted save of %s.\n", flagDeleteSlot)
		return
	}

	saves, err := store.ListSaves()
	if err != nil {
		fail("listing saves: %v", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-5s  %-8s  %s\n", "Slot", "Level", "Turn", "Food", "Size", "Saved")
	fmt.Printf("  %-16s  %-5s  %-7s  %-5s  %-8s  %s\n", "----", "-----", "----", "----", "----", "-----")
	for _, s := range saves {
		fmt.Printf("  %-16s  %-5d  %-7d  %-5d  %-8s  %s\n",
			s.Slot, s.Level, s.Turn, s.Food, humanize.Bytes(uint64(s.Size)), humanize.Time(s.UpdatedAt))
	}
}
