package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Nolimiter/nOHACK/internal/config"
	"github.com/Nolimiter/nOHACK/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the nohack environment",
		Long: `Environment health check.

Validates:
- Config file and JWT secret
- Database location and schema
- NPC seed data

Examples:
  nohack doctor           # Run full health check
  nohack doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(),
				checkDatabase(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				for _, r := range results {
					status := r.Status
					switch r.Status {
					case "✓":
						status = color.New(color.FgHiGreen).Sprint(r.Status)
					case "⚠":
						status = color.New(color.FgYellow).Sprint(r.Status)
					case "✗":
						status = color.New(color.FgRed).Sprint(r.Status)
					}
					fmt.Printf("%-14s %s\n", r.Name, status)
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("               %s\n", r.Details)
					}
				}
				fmt.Println()
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "exit code only")
	return cmd
}

func checkConfig() CheckResult {
	cwd, err := os.Getwd()
	if err != nil {
		return CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	if _, err := config.Load(cwd); err != nil {
		return CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "config", Status: "✓"}
}

func checkDatabase() CheckResult {
	path, err := db.DefaultPath()
	if err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: "database", Status: "⚠", Details: fmt.Sprintf("no database at %s yet (created on first serve)", path)}
	}

	conn, err := db.Open(path)
	if err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	defer conn.Close()

	var npcs int
	if err := conn.QueryRow("SELECT COUNT(*) FROM users WHERE is_npc = 1").Scan(&npcs); err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	if npcs == 0 {
		return CheckResult{Name: "database", Status: "⚠", Details: "no NPC targets; run `nohack seed`"}
	}
	return CheckResult{Name: "database", Status: "✓"}
}
