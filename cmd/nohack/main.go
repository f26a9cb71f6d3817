package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nolimiter/nOHACK/internal/cli"
	"github.com/Nolimiter/nOHACK/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "nohack",
		Short:   "nohack - multiplayer hacking game server",
		Version: version.String(),
		Long: `nohack runs the asynchronous hacking-operation engine: players
launch operations against each other, NPC systems, and raw addresses,
and the engine resolves them in the background while pushing progress
over WebSocket.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
