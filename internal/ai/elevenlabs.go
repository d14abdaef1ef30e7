package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SpeechSynthesizer is the boundary contract for the text-to-speech provider.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

type ElevenLabsClient struct {
	apiKey     string
	modelID    string
	httpClient *http.Client
}

func NewElevenLabsClient(apiKey string, httpClient *http.Client) *ElevenLabsClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &ElevenLabsClient{
		apiKey:     apiKey,
		modelID:    "eleven_multilingual_v2",
		httpClient: httpClient,
	}
}

// Synthesize converts text to mp3 audio with the given ElevenLabs voice.
// voiceID may be a voice name from the registry; it is resolved to the
// provider id before the call.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if c == nil {
		return nil, errors.New("elevenlabs client is nil")
	}
	if c.apiKey == "" {
		return nil, errors.New("ELEVENLABS_API_KEY is not set")
	}
	if text == "" {
		return nil, errors.New("text is required")
	}

	body := map[string]interface{}{
		"text":     text,
		"model_id": c.modelID,
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.75,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	}
	payload, _ := json.Marshal(body)

	endpoint := fmt.Sprintf("https://api.elevenlabs.io/v1/text-to-speech/%s",
		url.PathEscape(ResolveVoice(voiceID)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		resBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, truncate(string(resBody), 500))
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("elevenlabs returned empty audio")
	}
	return audio, nil
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
