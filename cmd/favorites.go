package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/tarih/internal/config"
	"github.com/user/tarih/internal/favorites"
)

var favoritesJSON bool

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List saved favorite events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		storage, err := favorites.NewSQLiteStorage(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer storage.Close()

		events := favorites.NewStore(storage).Load()

		if favoritesJSON {
			return outputJSON(events)
		}
		if len(events) == 0 {
			fmt.Println("Henüz favori yok.")
			return nil
		}
		return outputDefault(events)
	},
}

func init() {
	favoritesCmd.Flags().BoolVarP(&favoritesJSON, "json", "j", false, "Output as JSON")
	rootCmd.AddCommand(favoritesCmd)
}
