package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const elevenLabsAPIEndpoint = "https://api.elevenlabs.io/v1"

type elevenLabsRequest struct {
	Text          string       `json:"text"`
	ModelID       string       `json:"model_id"`
	VoiceSettings VoiceProfile `json:"voice_settings"`
}

// ElevenLabs streams speech over the ElevenLabs REST streaming endpoint.
type ElevenLabs struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewElevenLabs returns an HTTP streaming synthesizer.
func NewElevenLabs(apiKey string, timeout time.Duration) *ElevenLabs {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ElevenLabs{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: elevenLabsAPIEndpoint,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API endpoint.
func (e *ElevenLabs) WithBaseURL(base string) *ElevenLabs {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" {
		e.baseURL = base
	}
	return e
}

// Stream implements Synthesizer.
func (e *ElevenLabs) Stream(ctx context.Context, req SynthesisRequest) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if e.apiKey == "" {
			yield(nil, errors.New("elevenlabs api key is required"))
			return
		}

		payload, err := json.Marshal(elevenLabsRequest{
			Text:          req.Text,
			ModelID:       req.ModelID,
			VoiceSettings: req.Profile,
		})
		if err != nil {
			yield(nil, fmt.Errorf("marshal request: %w", err))
			return
		}

		endpoint := fmt.Sprintf("%s/text-to-speech/%s/stream", e.baseURL, url.PathEscape(req.VoiceID))
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			yield(nil, fmt.Errorf("create request: %w", err))
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "audio/mpeg")
		httpReq.Header.Set("xi-api-key", e.apiKey)

		resp, err := e.client.Do(httpReq)
		if err != nil {
			yield(nil, fmt.Errorf("request failed: %w", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			yield(nil, fmt.Errorf("elevenlabs api error %d: %s", resp.StatusCode, string(body)))
			return
		}

		buf := make([]byte, 32*1024)
		for {
			n, readErr := resp.Body.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				if !yield(chunk, nil) {
					return
				}
			}
			if errors.Is(readErr, io.EOF) {
				return
			}
			if readErr != nil {
				yield(nil, fmt.Errorf("read audio: %w", readErr))
				return
			}
		}
	}
}
