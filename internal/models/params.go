package models

import (
	"github.com/easeaico/aura/internal/utils"
	"github.com/openai/openai-go/v3"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func buildParams(req *model.LLMRequest, fallbackModel string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{Model: req.Model}
	if req.Model == "" {
		params.Model = fallbackModel
	}

	cfg := req.Config
	if cfg != nil && cfg.SystemInstruction != nil {
		if text := utils.ExtractContentText(cfg.SystemInstruction); text != "" {
			params.Messages = append(params.Messages, openai.SystemMessage(text))
		}
	}
	params.Messages = append(params.Messages, toMessages(req.Contents)...)

	if cfg == nil {
		return params
	}
	if cfg.Temperature != nil {
		params.Temperature = openai.Float(float64(*cfg.Temperature))
	}
	if cfg.TopP != nil {
		params.TopP = openai.Float(float64(*cfg.TopP))
	}
	if cfg.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(cfg.MaxOutputTokens))
	}
	if cfg.ResponseMIMEType == "application/json" {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}

func toMessages(contents []*genai.Content) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	for _, content := range contents {
		if content == nil {
			continue
		}
		text := utils.ExtractContentText(content)
		switch content.Role {
		case "model":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}
	return messages
}
