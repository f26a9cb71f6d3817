package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nolimiter/nOHACK/internal/db"
)

// SeedCmd returns the seed command that loads NPC targets.
func SeedCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with NPC targets",
		Long: `Inserts the built-in NPC targets (megacorp-mainframe,
darknet-exchange, and friends) with their defense profiles. Safe to run
repeatedly; existing NPCs are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dbPath
			if path == "" {
				var err error
				path, err = db.DefaultPath()
				if err != nil {
					return err
				}
			}

			conn, err := db.Open(path)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Seed(conn); err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}

			fmt.Println("Seeded NPC targets.")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (defaults to ~/.nohack/nohack.db)")
	return cmd
}
