// Package models adapts OpenAI-compatible chat endpoints to the adk model.LLM interface.
package models

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	grokBaseURL       = "https://api.x.ai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

type openaiModel struct {
	client    *openai.Client
	name      string
	userAgent string
}

func newCompatModel(provider, modelName, baseURL string, cfg *genai.ClientConfig) (model.LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiModel{
		name:      modelName,
		client:    &client,
		userAgent: fmt.Sprintf("%s-go/1.0.0 go/%s", provider, strings.TrimPrefix(runtime.Version(), "go")),
	}, nil
}

// NewOpenAIModel targets api.openai.com, or cfg.HTTPOptions.BaseURL when set.
func NewOpenAIModel(_ context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	base := ""
	if cfg != nil {
		base = cfg.HTTPOptions.BaseURL
	}
	return newCompatModel("openai", modelName, base, cfg)
}

// NewGrokModel targets the x.ai endpoint (e.g. "grok-3-mini").
func NewGrokModel(_ context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newCompatModel("grok", modelName, grokBaseURL, cfg)
}

// NewOpenRouterModel targets OpenRouter with a vendor-prefixed model name.
func NewOpenRouterModel(_ context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newCompatModel("openrouter", modelName, openRouterBaseURL, cfg)
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent implements model.LLM.
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	ensureUserTurn(req)
	params := buildParams(req, m.name)
	reqOpt := option.WithHeader("User-Agent", m.userAgent)

	if stream {
		return m.generateStream(ctx, params, reqOpt)
	}
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.client.Chat.Completions.New(ctx, params, reqOpt)
		if err != nil {
			slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
			yield(nil, fmt.Errorf("chat completion: %w", err))
			return
		}
		if len(resp.Choices) == 0 {
			yield(&model.LLMResponse{TurnComplete: true}, nil)
			return
		}
		yield(textResponse(resp.Choices[0].Message.Content, false, true), nil)
	}
}

func (m *openaiModel) generateStream(ctx context.Context, params openai.ChatCompletionNewParams, reqOpt option.RequestOption) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		stream := m.client.Chat.Completions.NewStreaming(ctx, params, reqOpt)
		defer func() {
			if err := stream.Close(); err != nil {
				slog.Error("failed to close stream", "error", err.Error())
			}
		}()

		var full strings.Builder
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			full.WriteString(delta)
			if !yield(textResponse(delta, true, false), nil) {
				return
			}
		}

		if err := stream.Err(); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				yield(nil, fmt.Errorf("context cancelled: %w", err))
				return
			}
			slog.Error("failed to stream call llm API", "model", m.name, "error", err.Error())
			yield(nil, fmt.Errorf("stream error: %w", err))
			return
		}
		yield(textResponse(strings.TrimSpace(full.String()), false, true), nil)
	}
}

func textResponse(text string, partial, complete bool) *model.LLMResponse {
	content := &genai.Content{Role: "model"}
	if text != "" {
		content.Parts = []*genai.Part{{Text: text}}
	}
	return &model.LLMResponse{
		Content:      content,
		Partial:      partial,
		TurnComplete: complete,
	}
}

// ensureUserTurn appends a user message when the conversation would otherwise
// end on the model's side, which chat endpoints reject or answer poorly.
func ensureUserTurn(req *model.LLMRequest) {
	if len(req.Contents) == 0 {
		req.Contents = append(req.Contents, genai.NewContentFromText("Handle the requests as specified in the System Instruction.", genai.RoleUser))
		return
	}
	if last := req.Contents[len(req.Contents)-1]; last != nil && last.Role != "user" {
		req.Contents = append(req.Contents, genai.NewContentFromText("Continue processing previous requests as instructed.", genai.RoleUser))
	}
}
