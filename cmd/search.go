package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/tarih/internal/config"
	"github.com/user/tarih/internal/event"
	"github.com/user/tarih/internal/wiki"
)

var (
	jsonOutput      bool
	plaintextOutput bool
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search historical events by keyword",
	Long:  "Search Wikipedia for historical events or figures matching the given keyword.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client := wiki.NewClient(cfg.Wiki.Language)
		events, err := client.SearchByKeyword(context.Background(), term)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if jsonOutput {
			return outputJSON(events)
		}
		if plaintextOutput {
			return outputPlaintext(events)
		}
		return outputDefault(events)
	},
}

func outputJSON(events []event.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputPlaintext(events []event.Event) error {
	for _, e := range events {
		fmt.Printf("%s\t%s\t%s\t%s\n", e.Source, e.Year, e.Title, e.Link)
	}
	return nil
}

func outputDefault(events []event.Event) error {
	if len(events) == 0 {
		fmt.Println("Sonuç bulunamadı.")
		return nil
	}
	for i, e := range events {
		year := ""
		if e.Year != event.YearUnknown {
			year = e.Year + " - "
		}
		fmt.Printf("%d. %s%s\n   %s\n", i+1, year, e.Title, e.Link)
		if e.Summary != "" {
			fmt.Printf("   %s\n", truncate(e.Summary, 100))
		}
		fmt.Println()
	}
	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func init() {
	searchCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	searchCmd.Flags().BoolVarP(&plaintextOutput, "plaintext", "p", false, "Output as plaintext")
	rootCmd.AddCommand(searchCmd)
}
