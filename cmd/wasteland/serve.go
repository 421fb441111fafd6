package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland"
	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/save"
	"github.com/capnchainsaw/WastelandSurvivor/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Wasteland Survivor SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user gets their own save slot in the database, so quitting and
reconnecting resumes the game. Finished runs go to a shared scoreboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.wasteland/host_key

Examples:
  wasteland serve                           # Listen on :23234 with auto-generated key
  wasteland serve --ssh :2222               # Listen on port 2222
  wasteland serve --host-key ./my_host_key  # Use specific host key
  wasteland serve --db ./wasteland.db       # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr, "wasteland-ssh")
	if err != nil {
		fail("%v", err)
	}

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger,
		NewGame: func(saves save.Store, l *log.Logger) (tui.Game, error) {
			game, err := wasteland.New(wasteland.Options{Config: cfg, Saves: saves, Logger: l})
			if err != nil {
				return nil, err
			}
			return game, nil
		},
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Wasteland Survivor SSH server on %s\n", srvCfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
