package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeminiSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash-preview-tts:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "merhaba" {
			t.Errorf("request text = %+v", req.Contents)
		}
		if len(req.GenerationConfig.ResponseModalities) != 1 || req.GenerationConfig.ResponseModalities[0] != "AUDIO" {
			t.Errorf("modalities = %v, want [AUDIO]", req.GenerationConfig.ResponseModalities)
		}
		if got := req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName; got != "Kore" {
			t.Errorf("voice = %q, want Kore", got)
		}

		w.Write([]byte(`{"candidates":[{"content":{"parts":[
			{"text":"ignored"},
			{"inlineData":{"mimeType":"audio/L16;rate=24000","data":"QUJDRA=="}},
			{"inlineData":{"data":"ikinci"}}
		]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})

	got, err := g.Synthesize(context.Background(), "merhaba")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	// First audio payload wins.
	if got != "QUJDRA==" {
		t.Errorf("audio = %q, want QUJDRA==", got)
	}
}

func TestGeminiSynthesizeNoAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sadece metin"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", BaseURL: srv.URL})

	_, err := g.Synthesize(context.Background(), "merhaba")
	if !errors.Is(err, ErrNoAudio) {
		t.Errorf("err = %v, want ErrNoAudio", err)
	}
}

func TestGeminiSynthesizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", BaseURL: srv.URL})

	if _, err := g.Synthesize(context.Background(), "merhaba"); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestGeminiDefaults(t *testing.T) {
	g := NewGemini(GeminiConfig{APIKey: "k"})

	if g.cfg.Model != "gemini-2.5-flash-preview-tts" {
		t.Errorf("model = %q", g.cfg.Model)
	}
	if g.cfg.Voice != "Kore" {
		t.Errorf("voice = %q", g.cfg.Voice)
	}
	if g.cfg.BaseURL == "" {
		t.Error("base url default missing")
	}
}
