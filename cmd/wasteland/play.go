package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/capnchainsaw/WastelandSurvivor/internal/core"
	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland"
	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/save"
	"github.com/capnchainsaw/WastelandSurvivor/internal/platform/tui"
	"github.com/capnchainsaw/WastelandSurvivor/internal/storage"
)

var flagSavePath string

const controlsHelp = `Controls:
  Arrows/WASD/HJKL - Move, attack or break walls
  Space/.          - Wait a turn
  Enter            - Select menu item
  Esc/P            - Pause menu
  R                - Restart
  Q/Ctrl+C         - Save and quit`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume the saved game or start a new one",
	Long: `Start Wasteland Survivor. A saved game is resumed from the start menu;
quitting an unfinished game saves it again.

` + controlsHelp + `

Examples:
  wasteland play
  wasteland play --save ./run.xml
  wasteland play --difficulty easy --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Discard the saved game and start a new one",
	Long: `Delete the saved game and start fresh.

` + controlsHelp,
	Args: cobra.NoArgs,
	Run:  runNew,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, newCmd} {
		cmd.Flags().StringVar(&flagSavePath, "save", "~/.wasteland/save.xml", "Path to the save file")
	}
}

func runNew(cmd *cobra.Command, args []string) {
	saves, err := save.NewFileStore(flagSavePath)
	if err != nil {
		fail("%v", err)
	}
	if err := saves.Remove(); err != nil {
		fail("%v", err)
	}
	runPlay(cmd, args)
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	saves, err := save.NewFileStore(flagSavePath)
	if err != nil {
		fail("%v", err)
	}

	// The TUI owns the terminal, so logs go to a file next to the save.
	logOut := io.Discard
	logPath := filepath.Join(filepath.Dir(saves.Path), "wasteland.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
		if f, openErr := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); openErr == nil {
			defer f.Close()
			logOut = f
		}
	}
	logger, err := newLogger(logOut, "wasteland")
	if err != nil {
		fail("%v", err)
	}

	game, err := wasteland.New(wasteland.Options{Config: cfg, Saves: saves, Logger: logger})
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - runs are not recorded
		store = nil
	}

	state, runErr := tui.Run(game, store, "local", rt, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}

	switch {
	case state.GameOver:
		fmt.Printf("You starved on level %d after %d turns.\n", state.Score, state.Turn)
	case saves.Exists():
		fmt.Printf("Game saved to %s (level %d, turn %d).\n", saves.Path, state.Score, state.Turn)
	}
}
