package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Emotions        []EmotionScore `json:"emotions"`
	DominantEmotion string         `json:"dominant_emotion"`
}

// HTTPScorer calls a remote text-classification service exposing POST /detect.
type HTTPScorer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPScorer returns a scorer for the service at baseURL.
func NewHTTPScorer(baseURL string, timeout time.Duration) *HTTPScorer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPScorer{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Available reports whether a service URL is configured.
func (s *HTTPScorer) Available() bool {
	return s != nil && s.baseURL != ""
}

// Score implements Scorer.
func (s *HTTPScorer) Score(ctx context.Context, text string) ([]EmotionScore, error) {
	if !s.Available() {
		return nil, ErrBackendUnavailable
	}

	body, err := json.Marshal(detectRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode emotion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build emotion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("emotion %s: %s", resp.Status, string(b))
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out.Emotions, nil
}
