package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nolimiter/nOHACK/internal/config"
	"github.com/Nolimiter/nOHACK/internal/wire"
)

// ServeCmd returns the serve command that runs the game server.
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the nohack game server",
		Long: `Starts the HTTP and WebSocket server.

Configuration is read from .nohack/config.json in the current directory,
with NOHACK_* environment variables taking precedence. The JWT secret is
required.

Examples:
  nohack serve                  # Listen on the configured address
  nohack serve --addr :9090     # Override the listen address`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			application, err := wire.Build(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("listening on %s", cfg.Addr)
			if err := application.Server.ListenAndServe(ctx, cfg.Addr); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			log.Printf("draining in-flight operations")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
