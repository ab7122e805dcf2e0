package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAI synthesizes speech through the OpenAI speech API. The PCM response
// format is 24 kHz 16-bit mono, the same contract Gemini honors, so the
// decoder downstream does not care which provider ran.
type OpenAI struct {
	client *openai.Client
	voice  string
}

func NewOpenAI(apiKey, voice string) *OpenAI {
	if voice == "" {
		voice = "alloy"
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		voice:  voice,
	}
}

func (o *OpenAI) Synthesize(ctx context.Context, text string) (string, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return "", fmt.Errorf("tts request: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return "", ErrNoAudio
	}

	return base64.StdEncoding.EncodeToString(audio), nil
}
