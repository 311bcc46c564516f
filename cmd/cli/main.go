package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"accounthub/app/config"
	"accounthub/app/database"
	"accounthub/app/platform/lifecycle"
)

func newSweeper() (*lifecycle.Sweeper, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	return lifecycle.NewSweeper(db, cfg), nil
}

var rootCmd = &cobra.Command{
	Use:   "accounthub",
	Short: "Accounthub CLI",
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run account lifecycle sweeps",
}

var sweepSuspendCmd = &cobra.Command{
	Use:   "suspend",
	Short: "Suspend stale unverified accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sweeper, err := newSweeper()
		if err != nil {
			return err
		}

		suspended, err := sweeper.SuspendExpired(time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Suspended %d accounts\n", suspended)
		return nil
	},
}

var sweepWarnCmd = &cobra.Command{
	Use:   "warn",
	Short: "Warn accounts nearing their verification deadline",
	RunE: func(cmd *cobra.Command, args []string) error {
		sweeper, err := newSweeper()
		if err != nil {
			return err
		}

		warned, err := sweeper.WarnExpiring(time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Sent %d warning notices\n", warned)
		return nil
	},
}

var sweepAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run both sweeps",
	RunE: func(cmd *cobra.Command, args []string) error {
		sweeper, err := newSweeper()
		if err != nil {
			return err
		}

		now := time.Now()
		warned, err := sweeper.WarnExpiring(now)
		if err != nil {
			return err
		}

		suspended, err := sweeper.SuspendExpired(now)
		if err != nil {
			return err
		}

		fmt.Printf("Sent %d warning notices, suspended %d accounts\n", warned, suspended)
		return nil
	},
}

func main() {
	sweepCmd.AddCommand(sweepSuspendCmd)
	sweepCmd.AddCommand(sweepWarnCmd)
	sweepCmd.AddCommand(sweepAllCmd)
	rootCmd.AddCommand(sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
