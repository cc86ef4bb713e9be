package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-life/internal/platform/server"
	"github.com/vovakirdan/tui-life/internal/shell"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the life SSH server",
	Long: `Start an SSH server where every connection gets its own shell and grid.

Sessions are recorded in the history database shared by all users.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.life/host_key

Examples:
  life serve                           # Listen on :23235 with auto-generated key
  life serve --ssh :2222               # Listen on port 2222
  life serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235               # interactive, with line editing
  ssh -T localhost -p 23235 < script   # run a command script`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting, e.g. 30m (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	a := setup()

	cfg := server.FromConfig(a.cfg)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	var recorder shell.Recorder
	store := a.openStore()
	if store != nil {
		defer store.Close()
		recorder = store
	}

	srv, err := server.New(cfg, a.catalog, recorder, a.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting life SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
