package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/tarih/internal/config"
)

// ErrNoAudio means the synthesis response carried no audio payload.
var ErrNoAudio = errors.New("ses verisi oluşturulamadı")

// Synthesizer converts text to speech. The returned string is base64-encoded
// raw PCM: 16-bit signed little-endian, single channel, 24 kHz. A single
// failed attempt is surfaced immediately; there is no retry.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// New picks the synthesis provider from config.
func New(cfg *config.Config) (Synthesizer, error) {
	if cfg.Speech.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for speech provider %s", cfg.Speech.Provider)
	}
	switch cfg.Speech.Provider {
	case "gemini":
		return NewGemini(GeminiConfig{
			APIKey:  cfg.Speech.APIKey,
			BaseURL: cfg.Speech.BaseURL,
			Model:   cfg.Speech.Model,
			Voice:   cfg.Speech.Voice,
		}), nil
	case "openai":
		return NewOpenAI(cfg.Speech.APIKey, cfg.Speech.Voice), nil
	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", cfg.Speech.Provider)
	}
}
