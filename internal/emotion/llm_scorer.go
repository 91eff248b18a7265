package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/utils"
)

// emotionClasses mirrors the label set of the distilroberta emotion model so both
// backends feed the same mood table.
var emotionClasses = []string{"anger", "disgust", "fear", "joy", "neutral", "sadness", "surprise"}

const scorerInstruction = `You are an emotion classifier. For the user's text, assign a probability to every one of these labels: ` +
	`anger, disgust, fear, joy, neutral, sadness, surprise. Probabilities are between 0 and 1 and sum to 1. ` +
	`Reply with JSON only: {"emotions":[{"label":"joy","score":0.9}, ...]}.`

type llmScores struct {
	Emotions []EmotionScore `json:"emotions"`
}

// LLMScorer asks a language model for a probability per emotion class.
type LLMScorer struct {
	model  model.LLM
	schema *jsonschema.Resolved
}

// NewLLMScorer returns a scorer backed by m.
func NewLLMScorer(m model.LLM) (*LLMScorer, error) {
	schema, err := jsonschema.For[llmScores](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build emotion schema: %w", err)
	}
	schema.AdditionalProperties = nil
	if emotions := schema.Properties["emotions"]; emotions != nil && emotions.Items != nil {
		item := emotions.Items
		item.AdditionalProperties = nil
		if score := item.Properties["score"]; score != nil {
			lo, hi := 0.0, 1.0
			score.Minimum = &lo
			score.Maximum = &hi
		}
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve emotion schema: %w", err)
	}
	return &LLMScorer{model: m, schema: resolved}, nil
}

// Available reports whether a model is configured.
func (s *LLMScorer) Available() bool {
	return s != nil && s.model != nil
}

// Score implements Scorer.
func (s *LLMScorer) Score(ctx context.Context, text string) ([]EmotionScore, error) {
	if !s.Available() {
		return nil, ErrBackendUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	temperature := float32(0)
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(text, "user"),
		},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(scorerInstruction, "system"),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    scoresResponseSchema(),
			Temperature:       &temperature,
		},
	}

	var raw string
	for resp, err := range s.model.GenerateContent(ctx, req, false) {
		if err != nil {
			return nil, fmt.Errorf("emotion model call: %w", err)
		}
		if resp == nil || resp.Content == nil || resp.Partial {
			continue
		}
		raw = utils.ExtractContentText(resp.Content)
		break
	}
	return s.parse(raw)
}

func (s *LLMScorer) parse(raw string) ([]EmotionScore, error) {
	clean := utils.ExtractJSONObject(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty model output", ErrMalformedResponse)
	}

	var instance any
	if err := json.Unmarshal([]byte(clean), &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := s.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var out llmScores
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out.Emotions, nil
}

func scoresResponseSchema() *genai.Schema {
	labels := make([]string, len(emotionClasses))
	copy(labels, emotionClasses)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"emotions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label": {Type: genai.TypeString, Enum: labels},
						"score": {Type: genai.TypeNumber},
					},
					Required: []string{"label", "score"},
				},
			},
		},
		Required: []string{"emotions"},
	}
}
