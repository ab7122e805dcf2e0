package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/tarih/internal/config"
	"github.com/user/tarih/internal/wiki"
)

var (
	todayJSON      bool
	todayPlaintext bool
)

var todayCmd = &cobra.Command{
	Use:   "today [GG.AA]",
	Short: "List events that happened on this day",
	Long:  "Fetch the Wikipedia 'on this day' feed for today, or for a given day and month (GG.AA).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month, day := int(time.Now().Month()), time.Now().Day()
		if len(args) == 1 {
			var err error
			month, day, err = parseDayMonthArg(args[0])
			if err != nil {
				return err
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client := wiki.NewClient(cfg.Wiki.Language)
		events, err := client.SearchByDate(context.Background(), month, day)
		if err != nil {
			return fmt.Errorf("feed request failed: %w", err)
		}

		if todayJSON {
			return outputJSON(events)
		}
		if todayPlaintext {
			return outputPlaintext(events)
		}
		return outputDefault(events)
	},
}

func parseDayMonthArg(s string) (month, day int, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid date %q, expected GG.AA", s)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q, expected GG.AA", s)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q, expected GG.AA", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid date %q, expected GG.AA", s)
	}
	return month, day, nil
}

func init() {
	todayCmd.Flags().BoolVarP(&todayJSON, "json", "j", false, "Output as JSON")
	todayCmd.Flags().BoolVarP(&todayPlaintext, "plaintext", "p", false, "Output as plaintext")
	rootCmd.AddCommand(todayCmd)
}
