package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/tarih/internal/audio"
	"github.com/user/tarih/internal/config"
	"github.com/user/tarih/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Read text aloud",
	Long:  "Synthesize the given text with the configured speech provider and play it on the system audio output.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		synth, err := speech.New(cfg)
		if err != nil {
			return err
		}

		b64, err := synth.Synthesize(context.Background(), text)
		if err != nil {
			return fmt.Errorf("synthesis failed: %w", err)
		}

		clip, err := audio.Decode(b64)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}

		pb, err := audio.NewOutputDevice().Play(clip)
		if err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
		<-pb.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(speakCmd)
}
