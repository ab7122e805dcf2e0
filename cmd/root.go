package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/tarih/internal/config"
	"github.com/user/tarih/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "tarih",
	Short: "Tarih Kâşifi - historical events explorer TUI",
	Long:  "A TUI app to search historical events on Wikipedia by keyword or date, save favorites, and hear summaries read aloud.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return tui.Run(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default: ~/.tarih)")
}
