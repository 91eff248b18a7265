package agent

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/config"
	"github.com/easeaico/aura/internal/models"
)

// NewLLM returns the chat model for the configured provider.
func NewLLM(ctx context.Context, cfg config.Config) (model.LLM, error) {
	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for llm provider %q", cfg.LLMProvider)
	}
	clientCfg := &genai.ClientConfig{APIKey: apiKey}

	switch cfg.LLMProvider {
	case "grok":
		return models.NewGrokModel(ctx, cfg.LLMModel, clientCfg)
	case "openai":
		return models.NewOpenAIModel(ctx, cfg.LLMModel, clientCfg)
	case "openrouter":
		return models.NewOpenRouterModel(ctx, cfg.LLMModel, clientCfg)
	default:
		clientCfg.Backend = genai.BackendGeminiAPI
		llm, err := gemini.NewModel(ctx, cfg.LLMModel, clientCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return llm, nil
	}
}
